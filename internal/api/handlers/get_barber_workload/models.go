package get_barber_workload

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	getBarberWorkload "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_barber_workload"
)

// WorkloadResponse HTTP response model
type WorkloadResponse struct {
	BarbershopID     uuid.UUID `json:"barbershopId"`
	BarberID         uuid.UUID `json:"barberId"`
	Date             string    `json:"date"`
	Timezone         string    `json:"timezone"`
	AppointmentCount int       `json:"appointmentCount"`
	BookedMinutes    int       `json:"bookedMinutes"`
	CapacityMinutes  int       `json:"capacityMinutes"`
	OccupancyRate    float64   `json:"occupancyRate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBarberWorkload.Response) *WorkloadResponse {
	return &WorkloadResponse{
		BarbershopID:     resp.BarbershopID,
		BarberID:         resp.BarberID,
		Date:             resp.Date.Format(domain.DateFormat),
		Timezone:         resp.Timezone,
		AppointmentCount: resp.AppointmentCount,
		BookedMinutes:    resp.BookedMinutes,
		CapacityMinutes:  resp.CapacityMinutes,
		OccupancyRate:    resp.OccupancyRate,
	}
}
