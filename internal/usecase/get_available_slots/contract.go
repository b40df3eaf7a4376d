package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, barbershopID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error)
}

// DayLoader загружает снимок расписания барбершопа на день
type DayLoader interface {
	Location(ctx context.Context, barbershopID uuid.UUID) (*time.Location, error)
	LoadDay(ctx context.Context, q availability.DayQuery) (*availability.Day, error)
}

// GranularityProvider возвращает шаг сетки барбершопа
type GranularityProvider interface {
	GetGranularityMinutes(ctx context.Context, barbershopID uuid.UUID) int
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsObserver принимает число сгенерированных слотов (метрика)
type SlotsObserver interface {
	Observe(float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
