package get_barber_workload

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса загрузки барбера
type Request struct {
	BarbershopID uuid.UUID
	BarberID     uuid.UUID
	Date         time.Time
}

// Response загрузка барбера за день
type Response struct {
	BarbershopID     uuid.UUID
	BarberID         uuid.UUID
	Date             time.Time
	Timezone         string
	AppointmentCount int
	BookedMinutes    int
	CapacityMinutes  int
	OccupancyRate    float64
}
