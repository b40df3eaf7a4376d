package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
)

// Service собирает данные одного дня барбершопа для расчёта слотов и загрузки
type Service struct {
	settingsRepo    SettingsRepository
	barberRepo      BarberRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	defaultLocation *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса
// defaultLocation используется для барбершопов без настроенного часового пояса
func NewService(
	settingsRepo SettingsRepository,
	barberRepo BarberRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	defaultLocation *time.Location,
	logger Logger,
) *Service {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Service{
		settingsRepo:    settingsRepo,
		barberRepo:      barberRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Location возвращает часовой пояс барбершопа
// Неизвестное имя зоны логируется и заменяется зоной по умолчанию
func (s *Service) Location(ctx context.Context, barbershopID uuid.UUID) (*time.Location, error) {
	settings, err := s.settingsRepo.GetByBarbershopID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return s.defaultLocation, nil
		}
		s.logger.Error("Location: repository error for barbershop=%s: %v", barbershopID, err)
		return nil, fmt.Errorf("%w: Location - repository error: %w", ErrInternal, err)
	}

	if settings.Timezone == "" {
		return s.defaultLocation, nil
	}

	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		s.logger.Warn("Location: barbershop=%s has unknown timezone %q, using %s",
			barbershopID, settings.Timezone, s.defaultLocation)
		return s.defaultLocation, nil
	}
	return loc, nil
}

// LoadDay загружает состав, рабочие периоды, блокировки и записи на локальный день.
// Вызывать внутри транзакции, чтобы все чтения видели один снимок.
func (s *Service) LoadDay(ctx context.Context, q DayQuery) (*Day, error) {
	loc := q.Location
	if loc == nil {
		loc = s.defaultLocation
	}
	start, end := scheduling.DayBounds(q.Date, loc)

	day := &Day{
		BarbershopID: q.BarbershopID,
		Date:         q.Date,
		Location:     loc,
		Start:        start,
		End:          end,
	}

	roster, err := s.barberRepo.ListByBarbershop(ctx, q.BarbershopID)
	if err != nil {
		s.logger.Error("LoadDay: failed to get barbers for barbershop=%s: %v", q.BarbershopID, err)
		return nil, fmt.Errorf("%w: failed to get barbers: %w", ErrInternal, err)
	}
	day.Roster = roster

	weekday := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, loc).Weekday()
	periods, err := s.scheduleRepo.ListWorkingPeriods(ctx, q.BarbershopID, q.BarberID, weekday)
	if err != nil {
		s.logger.Error("LoadDay: failed to get working periods for barbershop=%s: %v", q.BarbershopID, err)
		return nil, fmt.Errorf("%w: failed to get working periods: %w", ErrInternal, err)
	}
	day.WorkingPeriods = periods

	blocks, err := s.scheduleRepo.ListBlockedIntervals(ctx, domain.BlockedIntervalFilter{
		BarbershopID: q.BarbershopID,
		BarberID:     q.BarberID,
		From:         start,
		To:           end,
	})
	if err != nil {
		s.logger.Error("LoadDay: failed to get blocked intervals for barbershop=%s: %v", q.BarbershopID, err)
		return nil, fmt.Errorf("%w: failed to get blocked intervals: %w", ErrInternal, err)
	}
	day.Blocks = blocks

	// Записи всех барберов нужны для подсчёта загрузки при рекомендации
	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		BarbershopID: q.BarbershopID,
		From:         start,
		To:           end,
		ForUpdate:    q.ForUpdate,
	})
	if err != nil {
		s.logger.Error("LoadDay: failed to get appointments for barbershop=%s: %v", q.BarbershopID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	day.Appointments = appointments

	s.logger.Info("LoadDay: barbershop=%s, date=%s, barbers=%d, periods=%d, blocks=%d, appointments=%d",
		q.BarbershopID, q.Date.Format(domain.DateFormat), len(roster), len(periods), len(blocks), len(appointments))

	return day, nil
}
