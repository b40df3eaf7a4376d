package cancel_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, barbershopID, id uuid.UUID, req *models.CancelRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
