package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	days            DayLoader
	granularity     GranularityProvider
	txManager       TransactionManager
	recommender     *scheduling.Recommender
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	days DayLoader,
	granularity GranularityProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		days:            days,
		granularity:     granularity,
		txManager:       txManager,
		recommender:     scheduling.NewRecommender(),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Доступность интервала перепроверяется в сериализуемой транзакции, записи дня блокируются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: barbershop=%s, barber=%v, startsAt=%s, services=%d",
		req.BarbershopID, req.BarberID, req.StartsAt.Format(time.RFC3339), len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись в прошлое запрещена
	now := uc.timeProvider.Now()
	if req.StartsAt.Before(now) {
		uc.logger.Warn("CreateAppointment: startsAt=%s is in the past", req.StartsAt.Format(time.RFC3339))
		return nil, ErrSlotInPast
	}

	// 3. Шаг сетки разрешается вне транзакции
	granularity := uc.granularity.GetGranularityMinutes(ctx, req.BarbershopID)

	var (
		created      *domain.Appointment
		services     []domain.Service
		autoAssigned bool
	)

	// 4. Проверка и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Услуги
		found, err := uc.serviceRepo.GetByIDs(txCtx, req.BarbershopID, req.ServiceIDs)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get services: %v", err)
			return fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
		}
		services, err = orderServices(req.ServiceIDs, found)
		if err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}
		duration := scheduling.TotalDurationMinutes(services)

		// 4.2. Расписание дня записи с блокировкой записей
		loc, err := uc.days.Location(txCtx, req.BarbershopID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		day, err := uc.days.LoadDay(txCtx, availability.DayQuery{
			BarbershopID: req.BarbershopID,
			Date:         req.StartsAt.In(loc),
			Location:     loc,
			ForUpdate:    true,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 4.3. Выбор барбера
		var barberID uuid.UUID
		if req.BarberID != nil {
			barberID, err = uc.checkBarber(day, *req.BarberID, req.ServiceIDs, req.StartsAt, duration, granularity)
		} else {
			barberID, err = uc.pickBarber(day, req.ServiceIDs, req.StartsAt, duration, granularity)
			autoAssigned = err == nil
		}
		if err != nil {
			return err
		}

		// 4.4. Создание записи вместе со строками услуг и историей статуса
		appt := &domain.Appointment{
			BarbershopID:  req.BarbershopID,
			BarberID:      &barberID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			CustomerEmail: req.CustomerEmail,
			StartsAt:      req.StartsAt,
			EndsAt:        req.StartsAt.Add(time.Duration(duration) * time.Minute),
			Status:        domain.StatusConfirmed,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt, serviceLines(services))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// Конкурентная транзакция заняла интервал, и повторы исчерпаны
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict for barbershop=%s at %s",
				req.BarbershopID, req.StartsAt.Format(time.RFC3339))
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s, barber=%s, autoAssigned=%t",
		created.ID, *created.BarberID, autoAssigned)

	return toResponse(created, services, autoAssigned), nil
}

func (uc *UseCase) checkBarber(
	day *availability.Day,
	barberID uuid.UUID,
	serviceIDs []uuid.UUID,
	startsAt time.Time,
	duration, granularity int,
) (uuid.UUID, error) {
	barber, ok := day.Barber(barberID)
	if !ok || !barber.IsActive {
		uc.logger.Warn("CreateAppointment: barber=%s not found in barbershop=%s", barberID, day.BarbershopID)
		return uuid.Nil, ErrBarberNotFound
	}
	if !barber.CanPerform(serviceIDs) {
		uc.logger.Warn("CreateAppointment: barber=%s cannot perform requested services", barberID)
		return uuid.Nil, ErrBarberCannotPerform
	}
	if !scheduling.IsSlotAvailable(day.Windows(barberID), startsAt, duration, granularity, day.Location) {
		uc.logger.Warn("CreateAppointment: slot %s is not available for barber=%s", startsAt.Format(time.RFC3339), barberID)
		return uuid.Nil, ErrSlotNotAvailable
	}
	return barberID, nil
}

// pickBarber берет первого по рангу подходящего барбера, свободного в этот интервал
func (uc *UseCase) pickBarber(
	day *availability.Day,
	serviceIDs []uuid.UUID,
	startsAt time.Time,
	duration, granularity int,
) (uuid.UUID, error) {
	rec, err := uc.recommender.Recommend(scheduling.RecommendationInput{
		BarbershopID:    day.BarbershopID,
		ServiceIDs:      serviceIDs,
		Roster:          day.Roster,
		ConfirmedCounts: day.ConfirmedCounts(),
		Available: func(barberID uuid.UUID) bool {
			return scheduling.IsSlotAvailable(day.Windows(barberID), startsAt, duration, granularity, day.Location)
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrNoEligibleBarber):
			uc.logger.Warn("CreateAppointment: %v", err)
			return uuid.Nil, fmt.Errorf("%w: %w", ErrNoEligibleBarber, err)
		case errors.Is(err, scheduling.ErrNoAvailableBarber):
			uc.logger.Warn("CreateAppointment: no eligible barber is free at %s", startsAt.Format(time.RFC3339))
			return uuid.Nil, ErrSlotNotAvailable
		}
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return rec.BarberID, nil
}

func serviceLines(services []domain.Service) []domain.AppointmentService {
	lines := make([]domain.AppointmentService, len(services))
	for i, s := range services {
		lines[i] = domain.AppointmentService{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			DurationMinutes: s.DurationMinutes,
			BufferMinutes:   s.BufferMinutes,
			PriceCents:      s.PriceCents,
		}
	}
	return lines
}

func toResponse(appt *domain.Appointment, services []domain.Service, autoAssigned bool) *Response {
	resp := &Response{
		ID:              appt.ID,
		BarbershopID:    appt.BarbershopID,
		BarberID:        *appt.BarberID,
		AutoAssigned:    autoAssigned,
		StartsAt:        appt.StartsAt,
		EndsAt:          appt.EndsAt,
		DurationMinutes: appt.DurationMinutes(),
		Status:          string(appt.Status),
		CustomerName:    appt.CustomerName,
		CustomerPhone:   appt.CustomerPhone,
		CustomerEmail:   appt.CustomerEmail,
		Services:        make([]Service, len(services)),
		CreatedAt:       appt.CreatedAt,
	}

	for i, s := range services {
		resp.Services[i] = Service{
			ServiceID:       s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			BufferMinutes:   s.BufferMinutes,
			PriceCents:      s.PriceCents,
		}
		resp.TotalPriceCents += s.PriceCents
	}
	return resp
}
