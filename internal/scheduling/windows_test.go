package scheduling

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

func barberInput(periods []domain.WorkingPeriod, blocks []domain.BlockedInterval, appts []domain.Appointment) FreeWindowInput {
	id := barberA
	return FreeWindowInput{
		WorkingPeriods: periods,
		Blocks:         blocks,
		Appointments:   appts,
		Date:           monday,
		BarbershopID:   shopID,
		BarberID:       &id,
	}
}

func TestFreeWindows(t *testing.T) {
	tests := []struct {
		name    string
		periods []domain.WorkingPeriod
		blocks  []domain.BlockedInterval
		appts   []domain.Appointment
		want    []string
	}{
		{
			name:    "whole period free",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "18:00")},
			want:    []string{"09:00-18:00"},
		},
		{
			name:    "block and appointment split the period",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "18:00")},
			blocks:  []domain.BlockedInterval{block(barberA, "12:00", "13:00")},
			appts:   []domain.Appointment{appointment(barberA, "10:00", "10:30", domain.StatusConfirmed)},
			want:    []string{"09:00-10:00", "10:30-12:00", "13:00-18:00"},
		},
		{
			name:    "overlapping blocks advance cursor to the furthest end",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "18:00")},
			blocks: []domain.BlockedInterval{
				block(barberA, "10:00", "11:00"),
				block(barberA, "10:30", "11:30"),
				block(barberA, "10:45", "11:15"),
			},
			want: []string{"09:00-10:00", "11:30-18:00"},
		},
		{
			name:    "block covering the whole period",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "12:00")},
			blocks:  []domain.BlockedInterval{block(barberA, "08:00", "13:00")},
			want:    []string{},
		},
		{
			name:    "block starting before the period",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "12:00")},
			blocks:  []domain.BlockedInterval{block(barberA, "08:00", "09:30")},
			want:    []string{"09:30-12:00"},
		},
		{
			name: "morning and afternoon shifts stay separate",
			periods: []domain.WorkingPeriod{
				period(barberA, time.Monday, "14:00", "18:00"),
				period(barberA, time.Monday, "09:00", "12:00"),
			},
			want: []string{"09:00-12:00", "14:00-18:00"},
		},
		{
			name: "adjacent periods are not merged",
			periods: []domain.WorkingPeriod{
				period(barberA, time.Monday, "09:00", "12:00"),
				period(barberA, time.Monday, "12:00", "15:00"),
			},
			want: []string{"09:00-12:00", "12:00-15:00"},
		},
		{
			name: "overlapping periods produce non-overlapping windows",
			periods: []domain.WorkingPeriod{
				period(barberA, time.Monday, "09:00", "13:00"),
				period(barberA, time.Monday, "11:00", "15:00"),
			},
			want: []string{"09:00-15:00"},
		},
		{
			name:    "canceled appointments do not occupy time",
			periods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "12:00")},
			appts: []domain.Appointment{
				appointment(barberA, "10:00", "11:00", domain.StatusCanceled),
				appointment(barberA, "11:00", "11:30", domain.StatusCompleted),
			},
			want: []string{"09:00-11:00", "11:30-12:00"},
		},
		{
			name: "other barbers do not affect a specific barber",
			periods: []domain.WorkingPeriod{
				period(barberA, time.Monday, "09:00", "12:00"),
				period(barberB, time.Monday, "07:00", "20:00"),
			},
			blocks: []domain.BlockedInterval{block(barberB, "09:00", "12:00")},
			appts:  []domain.Appointment{appointment(barberB, "10:00", "11:00", domain.StatusConfirmed)},
			want:   []string{"09:00-12:00"},
		},
		{
			name:    "no period on the weekday",
			periods: []domain.WorkingPeriod{period(barberA, time.Tuesday, "09:00", "18:00")},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeWindows(barberInput(tt.periods, tt.blocks, tt.appts))
			assert.Equal(t, tt.want, spans(got))
			assertWindowInvariants(t, got)
		})
	}
}

func TestFreeWindows_SkipsMalformedAndInactiveRecords(t *testing.T) {
	inactive := period(barberA, time.Monday, "06:00", "08:00")
	inactive.IsActive = false
	reversed := period(barberA, time.Monday, "20:00", "19:00")

	inactiveBlock := block(barberA, "09:30", "10:00")
	inactiveBlock.IsActive = false
	reversedBlock := block(barberA, "11:00", "10:00")
	foreignBlock := block(barberA, "10:00", "10:30")
	foreignBlock.BarbershopID = otherShop

	got := FreeWindows(barberInput(
		[]domain.WorkingPeriod{inactive, reversed, period(barberA, time.Monday, "09:00", "12:00")},
		[]domain.BlockedInterval{inactiveBlock, reversedBlock, foreignBlock},
		nil,
	))

	assert.Equal(t, []string{"09:00-12:00"}, spans(got))
}

func TestFreeWindows_AnyBarberMode(t *testing.T) {
	in := FreeWindowInput{
		WorkingPeriods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "12:00")},
		Appointments: []domain.Appointment{
			appointment(barberB, "10:00", "10:30", domain.StatusConfirmed),
			{BarbershopID: shopID, StartsAt: at("11:00"), EndsAt: at("11:15"), Status: domain.StatusConfirmed},
		},
		Date:         monday,
		BarbershopID: shopID,
	}

	got := FreeWindows(in)

	assert.Equal(t, []string{"09:00-10:00", "10:30-11:00", "11:15-12:00"}, spans(got))
}

func TestFreeWindows_AnchorsPeriodsInBarbershopTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	id := barberA
	got := FreeWindows(FreeWindowInput{
		WorkingPeriods: []domain.WorkingPeriod{period(barberA, time.Monday, "09:00", "12:00")},
		Date:           monday,
		Location:       loc,
		BarbershopID:   shopID,
		BarberID:       &id,
	})

	// UTC-3: 09:00 local is 12:00 UTC
	assert.Equal(t, []string{"12:00-15:00"}, spans(got))
}

func TestFreeWindows_EmptyInput(t *testing.T) {
	got := FreeWindows(FreeWindowInput{Date: monday, BarbershopID: shopID})
	assert.Empty(t, got)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at("10:00"), at("11:00"), at("10:30"), at("11:30")))
	assert.False(t, Overlaps(at("10:00"), at("11:00"), at("11:00"), at("12:00")), "touching intervals")
	assert.False(t, Overlaps(at("10:00"), at("11:00"), at("08:00"), at("10:00")), "touching intervals")
	assert.True(t, Overlaps(at("10:00"), at("11:00"), at("09:00"), at("12:00")), "containment")
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	start, end := DayBounds(time.Date(2024, 1, 22, 15, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2024, 1, 22, 3, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2024, 1, 23, 3, 0, 0, 0, time.UTC), end.UTC())
}

func assertWindowInvariants(t *testing.T, windows []domain.FreeWindow) {
	t.Helper()
	for i, w := range windows {
		assert.True(t, w.End.After(w.Start), "window %d must have positive duration", i)
		if i > 0 {
			assert.False(t, w.Start.Before(windows[i-1].End), "window %d overlaps the previous one", i)
		}
	}
}
