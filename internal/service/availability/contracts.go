package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек (нужен часовой пояс барбершопа)
type SettingsRepository interface {
	GetByBarbershopID(ctx context.Context, barbershopID uuid.UUID) (*domain.BarbershopSettings, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	ListByBarbershop(ctx context.Context, barbershopID uuid.UUID) ([]domain.Barber, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWorkingPeriods(ctx context.Context, barbershopID uuid.UUID, barberID *uuid.UUID, weekday time.Weekday) ([]domain.WorkingPeriod, error)
	ListBlockedIntervals(ctx context.Context, filter domain.BlockedIntervalFilter) ([]domain.BlockedInterval, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
