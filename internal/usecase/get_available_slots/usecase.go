package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	serviceRepo  ServiceRepository
	days         DayLoader
	granularity  GranularityProvider
	txManager    TransactionManager
	recommender  *scheduling.Recommender
	slotsMetric  SlotsObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// slotsMetric может быть nil
func NewUseCase(
	serviceRepo ServiceRepository,
	days DayLoader,
	granularity GranularityProvider,
	txManager TransactionManager,
	slotsMetric SlotsObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		days:         days,
		granularity:  granularity,
		txManager:    txManager,
		recommender:  scheduling.NewRecommender(),
		slotsMetric:  slotsMetric,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
//
// Без barberID слот доступен, если свободен хотя бы один барбер, выполняющий все услуги;
// для каждого слота возвращаются свободные барберы в порядке рекомендации.
// Пустой список слотов - нормальный результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barbershop=%s, barber=%v, date=%s, services=%d",
		req.BarbershopID, req.BarberID, req.Date.Format(domain.DateFormat), len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и шаг сетки
	now := uc.timeProvider.Now()
	granularity := uc.granularity.GetGranularityMinutes(ctx, req.BarbershopID)

	var resp *Response

	// 3. Все чтения в одном снимке
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 3.1. Услуги и длительность записи
		services, err := uc.serviceRepo.GetByIDs(txCtx, req.BarbershopID, req.ServiceIDs)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
			return fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
		}
		if err := validateServices(req.ServiceIDs, services); err != nil {
			uc.logger.Warn("GetAvailableSlots: %v", err)
			return err
		}
		duration := scheduling.TotalDurationMinutes(services)

		// 3.2. Расписание дня
		loc, err := uc.days.Location(txCtx, req.BarbershopID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		day, err := uc.days.LoadDay(txCtx, availability.DayQuery{
			BarbershopID: req.BarbershopID,
			BarberID:     req.BarberID,
			Date:         req.Date,
			Location:     loc,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 3.3. Слоты конкретного барбера или объединение по всем подходящим
		var slots []domain.CandidateSlot
		if req.BarberID != nil {
			slots, err = uc.barberSlots(day, *req.BarberID, req.ServiceIDs, duration, granularity)
		} else {
			slots, err = uc.anyBarberSlots(day, req.ServiceIDs, duration, granularity)
		}
		if err != nil {
			return err
		}

		resp = &Response{
			BarbershopID:       req.BarbershopID,
			Date:               req.Date,
			Timezone:           loc.String(),
			DurationMinutes:    duration,
			GranularityMinutes: granularity,
			Slots:              toSlots(dropPast(slots, now)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.slotsMetric != nil {
		uc.slotsMetric.Observe(float64(len(resp.Slots)))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for barbershop=%s, date=%s (duration=%d, granularity=%d)",
		len(resp.Slots), req.BarbershopID, req.Date.Format(domain.DateFormat), resp.DurationMinutes, granularity)
	return resp, nil
}

func (uc *UseCase) barberSlots(
	day *availability.Day,
	barberID uuid.UUID,
	serviceIDs []uuid.UUID,
	duration, granularity int,
) ([]domain.CandidateSlot, error) {
	barber, ok := day.Barber(barberID)
	if !ok || !barber.IsActive {
		uc.logger.Warn("GetAvailableSlots: barber=%s not found in barbershop=%s", barberID, day.BarbershopID)
		return nil, ErrBarberNotFound
	}
	if !barber.CanPerform(serviceIDs) {
		uc.logger.Warn("GetAvailableSlots: barber=%s cannot perform requested services", barberID)
		return nil, ErrBarberCannotPerform
	}

	starts, err := scheduling.GridStarts(day.Windows(barberID), duration, granularity, day.Location)
	if err != nil {
		return nil, mapSchedulingError(err)
	}
	return scheduling.BuildSlots(starts, duration, barberID), nil
}

func (uc *UseCase) anyBarberSlots(
	day *availability.Day,
	serviceIDs []uuid.UUID,
	duration, granularity int,
) ([]domain.CandidateSlot, error) {
	eligible, err := uc.recommender.Eligible(day.BarbershopID, day.Roster, serviceIDs)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, mapSchedulingError(err)
	}

	slots, err := uc.recommender.AssignSlots(
		day.Availability(eligible),
		duration,
		granularity,
		day.Location,
		day.ConfirmedCounts(),
	)
	if err != nil {
		return nil, mapSchedulingError(err)
	}
	return slots, nil
}

func mapSchedulingError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrNoEligibleBarber):
		return fmt.Errorf("%w: %w", ErrNoEligibleBarber, err)
	case errors.Is(err, scheduling.ErrInvalidGranularity):
		return fmt.Errorf("%w: %w", ErrInvalidGranularity, err)
	case errors.Is(err, scheduling.ErrInvalidDuration):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

// dropPast убирает слоты, начинающиеся раньше текущего момента
func dropPast(slots []domain.CandidateSlot, now time.Time) []domain.CandidateSlot {
	result := make([]domain.CandidateSlot, 0, len(slots))
	for _, s := range slots {
		if !s.Start.Before(now) {
			result = append(result, s)
		}
	}
	return result
}

func toSlots(candidates []domain.CandidateSlot) []Slot {
	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{
			StartsAt:            c.Start,
			EndsAt:              c.End,
			BarberIDs:           c.EligibleBarberIDs,
			RecommendedBarberID: c.RecommendedBarberID,
		}
	}
	return slots
}
