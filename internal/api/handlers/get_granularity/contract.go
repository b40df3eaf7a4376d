package get_granularity

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity/models"
)

type GranularityService interface {
	GetGranularity(ctx context.Context, barbershopID uuid.UUID) (*models.GranularityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
