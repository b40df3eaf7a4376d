package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, barbershopID, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	ListServices(ctx context.Context, appointmentID uuid.UUID) ([]domain.AppointmentService, error)
	UpdateStatus(ctx context.Context, change domain.AppointmentStatusChange, barbershopID uuid.UUID) error
}

// LocationProvider возвращает часовой пояс барбершопа
type LocationProvider interface {
	Location(ctx context.Context, barbershopID uuid.UUID) (*time.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
