package get_barber_workload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// UseCase use case для расчета загрузки барбера за день
type UseCase struct {
	days      DayLoader
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(days DayLoader, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		days:      days,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute возвращает число записей, занятые минуты, емкость и заполненность барбера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBarberWorkload: barbershop=%s, barber=%s, date=%s",
		req.BarbershopID, req.BarberID, req.Date.Format(domain.DateFormat))

	if req.BarbershopID == uuid.Nil || req.BarberID == uuid.Nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: barbershopID, barberID and date are required", ErrInvalidInput)
	}

	var resp *Response
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		loc, err := uc.days.Location(txCtx, req.BarbershopID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		day, err := uc.days.LoadDay(txCtx, availability.DayQuery{
			BarbershopID: req.BarbershopID,
			BarberID:     &req.BarberID,
			Date:         req.Date,
			Location:     loc,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		barber, ok := day.Barber(req.BarberID)
		if !ok {
			uc.logger.Warn("GetBarberWorkload: barber=%s not found in barbershop=%s", req.BarberID, req.BarbershopID)
			return ErrBarberNotFound
		}

		w := day.Workload(*barber)
		resp = &Response{
			BarbershopID:     req.BarbershopID,
			BarberID:         w.BarberID,
			Date:             req.Date,
			Timezone:         loc.String(),
			AppointmentCount: w.AppointmentCount,
			BookedMinutes:    w.BookedMinutes,
			CapacityMinutes:  w.CapacityMinutes,
			OccupancyRate:    w.OccupancyRate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetBarberWorkload: barber=%s has %d appointments, occupancy=%.2f",
		resp.BarberID, resp.AppointmentCount, resp.OccupancyRate)
	return resp, nil
}
