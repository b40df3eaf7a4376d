package get_barber_workload

import (
	"context"

	getBarberWorkload "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_barber_workload"
)

type GetBarberWorkloadUseCase interface {
	Execute(ctx context.Context, req *getBarberWorkload.Request) (*getBarberWorkload.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
