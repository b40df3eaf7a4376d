package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// WorkloadInput данные барбера на один день
type WorkloadInput struct {
	Barber         domain.Barber
	WorkingPeriods []domain.WorkingPeriod
	Blocks         []domain.BlockedInterval
	Appointments   []domain.Appointment
	Date           time.Time
	Location       *time.Location
}

// Workload считает загрузку барбера за день: число подтверждённых записей,
// занятые минуты и ёмкость (рабочие минуты за вычетом блокировок).
// Коэффициент занятости ограничен диапазоном [0, 1].
func Workload(in WorkloadInput) domain.BarberWorkload {
	dayStart, dayEnd := DayBounds(in.Date, in.Location)

	count, booked := 0, 0
	for i := range in.Appointments {
		a := &in.Appointments[i]
		if !countsTowardsDay(a, in.Barber.BarbershopID, dayStart, dayEnd) || !a.BelongsTo(in.Barber.ID) {
			continue
		}
		count++
		booked += a.DurationMinutes()
	}

	// Ёмкость - это свободные окна без учёта записей
	barberID := in.Barber.ID
	capacityWindows := FreeWindows(FreeWindowInput{
		WorkingPeriods: in.WorkingPeriods,
		Blocks:         in.Blocks,
		Date:           in.Date,
		Location:       in.Location,
		BarbershopID:   in.Barber.BarbershopID,
		BarberID:       &barberID,
	})

	capacity := 0
	for _, w := range capacityWindows {
		capacity += int(w.Duration() / time.Minute)
	}

	occupancy := 0.0
	if capacity > 0 {
		occupancy = float64(booked) / float64(capacity)
	}
	if occupancy > 1 {
		occupancy = 1
	}

	return domain.BarberWorkload{
		BarberID:         in.Barber.ID,
		AppointmentCount: count,
		BookedMinutes:    booked,
		CapacityMinutes:  capacity,
		OccupancyRate:    occupancy,
		CreatedAt:        in.Barber.CreatedAt,
	}
}

// CountConfirmedByBarber считает подтверждённые записи каждого барбера,
// целиком лежащие внутри [dayStart, dayEnd]
func CountConfirmedByBarber(appointments []domain.Appointment, barbershopID uuid.UUID, dayStart, dayEnd time.Time) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for i := range appointments {
		a := &appointments[i]
		if a.BarberID == nil || !countsTowardsDay(a, barbershopID, dayStart, dayEnd) {
			continue
		}
		counts[*a.BarberID]++
	}
	return counts
}

func countsTowardsDay(a *domain.Appointment, barbershopID uuid.UUID, dayStart, dayEnd time.Time) bool {
	return a.IsConfirmed() &&
		a.BarbershopID == barbershopID &&
		!a.StartsAt.Before(dayStart) &&
		!a.EndsAt.After(dayEnd)
}
