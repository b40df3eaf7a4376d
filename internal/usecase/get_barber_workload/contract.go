package get_barber_workload

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// DayLoader загружает снимок расписания барбершопа на день
type DayLoader interface {
	Location(ctx context.Context, barbershopID uuid.UUID) (*time.Location, error)
	LoadDay(ctx context.Context, q availability.DayQuery) (*availability.Day, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
