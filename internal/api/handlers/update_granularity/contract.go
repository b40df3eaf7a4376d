package update_granularity

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity/models"
)

type GranularityService interface {
	SetGranularityMinutes(ctx context.Context, barbershopID uuid.UUID, minutes *int) (*models.GranularityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
