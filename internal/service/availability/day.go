package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
)

// DayQuery параметры загрузки дня
type DayQuery struct {
	BarbershopID uuid.UUID
	BarberID     *uuid.UUID // nil - все барберы
	Date         time.Time  // используются только год, месяц и день
	Location     *time.Location
	ForUpdate    bool // блокировать записи дня (только в read-write транзакции)
}

// Day снимок расписания барбершопа на один локальный день
type Day struct {
	BarbershopID   uuid.UUID
	Date           time.Time
	Location       *time.Location
	Start          time.Time // локальная полночь
	End            time.Time // следующая локальная полночь
	Roster         []domain.Barber
	WorkingPeriods []domain.WorkingPeriod
	Blocks         []domain.BlockedInterval
	Appointments   []domain.Appointment
}

// Barber ищет барбера в составе
func (d *Day) Barber(barberID uuid.UUID) (*domain.Barber, bool) {
	for i := range d.Roster {
		if d.Roster[i].ID == barberID {
			return &d.Roster[i], true
		}
	}
	return nil, false
}

// Windows свободные окна барбера
func (d *Day) Windows(barberID uuid.UUID) []domain.FreeWindow {
	return scheduling.FreeWindows(scheduling.FreeWindowInput{
		WorkingPeriods: d.WorkingPeriods,
		Blocks:         d.Blocks,
		Appointments:   d.Appointments,
		Date:           d.Date,
		Location:       d.Location,
		BarbershopID:   d.BarbershopID,
		BarberID:       &barberID,
	})
}

// Availability свободные окна каждого из переданных барберов
func (d *Day) Availability(barbers []domain.Barber) []scheduling.BarberAvailability {
	result := make([]scheduling.BarberAvailability, 0, len(barbers))
	for i := range barbers {
		result = append(result, scheduling.BarberAvailability{
			Barber:  barbers[i],
			Windows: d.Windows(barbers[i].ID),
		})
	}
	return result
}

// ConfirmedCounts число подтверждённых записей каждого барбера за день
func (d *Day) ConfirmedCounts() map[uuid.UUID]int {
	return scheduling.CountConfirmedByBarber(d.Appointments, d.BarbershopID, d.Start, d.End)
}

// Workload загрузка барбера за день
func (d *Day) Workload(barber domain.Barber) domain.BarberWorkload {
	return scheduling.Workload(scheduling.WorkloadInput{
		Barber:         barber,
		WorkingPeriods: d.WorkingPeriods,
		Blocks:         d.Blocks,
		Appointments:   d.Appointments,
		Date:           d.Date,
		Location:       d.Location,
	})
}
