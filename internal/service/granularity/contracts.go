package granularity

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек барбершопа
type SettingsRepository interface {
	GetByBarbershopID(ctx context.Context, barbershopID uuid.UUID) (*domain.BarbershopSettings, error)
	UpsertGranularity(ctx context.Context, barbershopID uuid.UUID, minutes *int) (*domain.BarbershopSettings, error)
}

// Cache интерфейс кэша гранулярности (memory или redis)
type Cache interface {
	Get(ctx context.Context, barbershopID uuid.UUID) (int, bool)
	Set(ctx context.Context, barbershopID uuid.UUID, minutes int) error
	Delete(ctx context.Context, barbershopID uuid.UUID) error
	Clear(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
