package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

const maxEmailLength = 254

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarbershopID == uuid.Nil {
		return fmt.Errorf("%w: barbershopID is required", ErrInvalidInput)
	}

	if req.BarberID != nil && *req.BarberID == uuid.Nil {
		return fmt.Errorf("%w: barberID must not be empty", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if err := validateCustomer(req); err != nil {
		return err
	}

	return validateServiceIDs(req.ServiceIDs)
}

func validateCustomer(req *Request) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is longer than %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	if req.CustomerEmail != nil {
		email := strings.TrimSpace(*req.CustomerEmail)
		if len(email) > maxEmailLength || !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
		}
	}
	return nil
}

// validateServiceIDs проверяет список услуг: не пустой, без дублей, не длиннее лимита
func validateServiceIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(ids) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return fmt.Errorf("%w: serviceID must not be empty", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate serviceID %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// orderServices возвращает услуги в порядке запроса; отсутствующая или неактивная услуга - ошибка
func orderServices(requested []uuid.UUID, found []domain.Service) ([]domain.Service, error) {
	byID := make(map[uuid.UUID]domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	ordered := make([]domain.Service, 0, len(requested))
	for _, id := range requested {
		s, ok := byID[id]
		if !ok || !s.IsActive {
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
