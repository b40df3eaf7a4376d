package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarbershopID == uuid.Nil {
		return fmt.Errorf("%w: barbershopID is required", ErrInvalidInput)
	}

	if req.BarberID != nil && *req.BarberID == uuid.Nil {
		return fmt.Errorf("%w: barberID must not be empty", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateServiceIDs(req.ServiceIDs)
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

// validateServices проверяет, что все запрошенные услуги найдены и активны
func validateServices(requested []uuid.UUID, found []domain.Service) error {
	byID := make(map[uuid.UUID]*domain.Service, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for _, id := range requested {
		s, ok := byID[id]
		if !ok || !s.IsActive {
			return fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
	}
	return nil
}
