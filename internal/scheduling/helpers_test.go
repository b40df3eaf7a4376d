package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

var (
	shopID    = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	otherShop = uuid.MustParse("0c7e4a52-2b0f-4a3c-8f55-6a1d9e0b7c31")
	barberA   = uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	barberB   = uuid.MustParse("b2b2b2b2-0000-4000-8000-000000000002")
	barberC   = uuid.MustParse("c3c3c3c3-0000-4000-8000-000000000003")
	service1  = uuid.MustParse("00000000-0000-4000-8000-000000000011")
	service2  = uuid.MustParse("00000000-0000-4000-8000-000000000012")
)

// monday 2024-01-22
var monday = time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(monday, time.UTC)
}

func period(barberID uuid.UUID, weekday time.Weekday, start, end string) domain.WorkingPeriod {
	return domain.WorkingPeriod{
		ID:           uuid.New(),
		BarberID:     barberID,
		BarbershopID: shopID,
		Weekday:      weekday,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		IsActive:     true,
	}
}

func block(barberID uuid.UUID, start, end string) domain.BlockedInterval {
	return domain.BlockedInterval{
		ID:           uuid.New(),
		BarberID:     barberID,
		BarbershopID: shopID,
		StartsAt:     at(start),
		EndsAt:       at(end),
		Reason:       "lunch",
		IsActive:     true,
	}
}

func appointment(barberID uuid.UUID, start, end string, status domain.AppointmentStatus) domain.Appointment {
	id := barberID
	return domain.Appointment{
		ID:           uuid.New(),
		BarbershopID: shopID,
		BarberID:     &id,
		StartsAt:     at(start),
		EndsAt:       at(end),
		Status:       status,
	}
}

func window(start, end string) domain.FreeWindow {
	return domain.FreeWindow{Start: at(start), End: at(end)}
}

func clock(ts []time.Time) []string {
	result := make([]string, len(ts))
	for i, t := range ts {
		result[i] = t.UTC().Format(domain.TimeFormat)
	}
	return result
}

func spans(ws []domain.FreeWindow) []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		result[i] = w.Start.UTC().Format(domain.TimeFormat) + "-" + w.End.UTC().Format(domain.TimeFormat)
	}
	return result
}
