package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/scheduling"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

var (
	shopID   = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	barberA  = uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	barberB  = uuid.MustParse("b2b2b2b2-0000-4000-8000-000000000002")
	haircut  = uuid.MustParse("c0c0c0c0-0000-4000-8000-000000000001")
	shave    = uuid.MustParse("c0c0c0c0-0000-4000-8000-000000000002")
	mondayUT = time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)
)

type fakeServices struct {
	services []domain.Service
	err      error
}

func (f *fakeServices) GetByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]domain.Service, 0, len(ids))
	for _, s := range f.services {
		for _, id := range ids {
			if s.ID == id {
				result = append(result, s)
			}
		}
	}
	return result, nil
}

type fakeDays struct {
	day      *availability.Day
	err      error
	gotQuery availability.DayQuery
}

func (f *fakeDays) Location(context.Context, uuid.UUID) (*time.Location, error) {
	return f.day.Location, nil
}

func (f *fakeDays) LoadDay(_ context.Context, q availability.DayQuery) (*availability.Day, error) {
	f.gotQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

type fixedGranularity int

func (g fixedGranularity) GetGranularityMinutes(context.Context, uuid.UUID) int {
	return int(g)
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeObserver struct {
	values []float64
}

func (f *fakeObserver) Observe(v float64) {
	f.values = append(f.values, v)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func period(barberID uuid.UUID, start, end string) domain.WorkingPeriod {
	return domain.WorkingPeriod{
		ID:           uuid.New(),
		BarberID:     barberID,
		BarbershopID: shopID,
		Weekday:      time.Monday,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		IsActive:     true,
	}
}

// newDay: A работает 09-11 и уже занят 09:00-09:30, B работает 10-12, B стрижет и бреет
func newDay(t *testing.T) *availability.Day {
	loc := saoPaulo(t)
	start, end := scheduling.DayBounds(mondayUT, loc)
	nine := time.Date(2024, 1, 22, 9, 0, 0, 0, loc)

	return &availability.Day{
		BarbershopID: shopID,
		Date:         mondayUT,
		Location:     loc,
		Start:        start,
		End:          end,
		Roster: []domain.Barber{
			{ID: barberA, BarbershopID: shopID, ServiceIDs: []uuid.UUID{haircut}, IsActive: true, CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: barberB, BarbershopID: shopID, ServiceIDs: []uuid.UUID{haircut, shave}, IsActive: true, CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		WorkingPeriods: []domain.WorkingPeriod{
			period(barberA, "09:00", "11:00"),
			period(barberB, "10:00", "12:00"),
		},
		Appointments: []domain.Appointment{{
			ID:           uuid.New(),
			BarbershopID: shopID,
			BarberID:     &barberA,
			StartsAt:     nine,
			EndsAt:       nine.Add(30 * time.Minute),
			Status:       domain.StatusConfirmed,
		}},
	}
}

func newServices() *fakeServices {
	return &fakeServices{services: []domain.Service{
		{ID: haircut, BarbershopID: shopID, Name: "Haircut", DurationMinutes: 25, BufferMinutes: 5, IsActive: true},
		{ID: shave, BarbershopID: shopID, Name: "Shave", DurationMinutes: 20, BufferMinutes: 10, IsActive: true},
	}}
}

func newUseCase(t *testing.T, days *fakeDays, services *fakeServices, g int, now time.Time, obs *fakeObserver) *UseCase {
	t.Helper()
	return NewUseCase(services, days, fixedGranularity(g), &fakeTx{}, obs, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func slotStarts(slots []Slot, loc *time.Location) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.StartsAt.In(loc).Format(domain.TimeFormat)
	}
	return result
}

func TestExecute_AnyBarber(t *testing.T) {
	day := newDay(t)
	obs := &fakeObserver{}
	uc := newUseCase(t, &fakeDays{day: day}, newServices(), 30, time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), obs)

	resp, err := uc.Execute(context.Background(), &Request{
		BarbershopID: shopID,
		Date:         mondayUT,
		ServiceIDs:   []uuid.UUID{haircut},
	})

	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", resp.Timezone)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 30, resp.GranularityMinutes)
	assert.Equal(t, []string{"09:30", "10:00", "10:30", "11:00", "11:30"}, slotStarts(resp.Slots, day.Location))

	// A уже занят одной записью, поэтому B рекомендуется везде, где свободны оба
	assert.Equal(t, []uuid.UUID{barberA}, resp.Slots[0].BarberIDs)
	assert.Equal(t, barberA, resp.Slots[0].RecommendedBarberID)
	assert.Equal(t, []uuid.UUID{barberB, barberA}, resp.Slots[1].BarberIDs)
	assert.Equal(t, barberB, resp.Slots[1].RecommendedBarberID)
	assert.Equal(t, []uuid.UUID{barberB}, resp.Slots[4].BarberIDs)
	assert.True(t, resp.Slots[0].EndsAt.Equal(resp.Slots[0].StartsAt.Add(30*time.Minute)))

	assert.Equal(t, []float64{5}, obs.values)
}

func TestExecute_SpecificBarber(t *testing.T) {
	day := newDay(t)
	days := &fakeDays{day: day}
	uc := newUseCase(t, days, newServices(), 30, time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), &fakeObserver{})

	resp, err := uc.Execute(context.Background(), &Request{
		BarbershopID: shopID,
		BarberID:     &barberA,
		Date:         mondayUT,
		ServiceIDs:   []uuid.UUID{haircut},
	})

	require.NoError(t, err)
	assert.Equal(t, &barberA, days.gotQuery.BarberID)
	assert.False(t, days.gotQuery.ForUpdate)
	assert.Equal(t, []string{"09:30", "10:00", "10:30"}, slotStarts(resp.Slots, day.Location))
	for _, s := range resp.Slots {
		assert.Equal(t, []uuid.UUID{barberA}, s.BarberIDs)
		assert.Equal(t, barberA, s.RecommendedBarberID)
	}
}

func TestExecute_MultipleServicesUseTotalDuration(t *testing.T) {
	day := newDay(t)
	uc := newUseCase(t, &fakeDays{day: day}, newServices(), 30, time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), &fakeObserver{})

	resp, err := uc.Execute(context.Background(), &Request{
		BarbershopID: shopID,
		Date:         mondayUT,
		ServiceIDs:   []uuid.UUID{haircut, shave},
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	// только B выполняет обе услуги
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, slotStarts(resp.Slots, day.Location))
	for _, s := range resp.Slots {
		assert.Equal(t, barberB, s.RecommendedBarberID)
	}
}

func TestExecute_DropsPastStarts(t *testing.T) {
	day := newDay(t)
	now := time.Date(2024, 1, 22, 10, 15, 0, 0, day.Location)
	uc := newUseCase(t, &fakeDays{day: day}, newServices(), 30, now, &fakeObserver{})

	resp, err := uc.Execute(context.Background(), &Request{
		BarbershopID: shopID,
		Date:         mondayUT,
		ServiceIDs:   []uuid.UUID{haircut},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, slotStarts(resp.Slots, day.Location))
}

func TestExecute_EmptyDayIsNotAnError(t *testing.T) {
	day := newDay(t)
	day.WorkingPeriods = nil
	uc := newUseCase(t, &fakeDays{day: day}, newServices(), 15, time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), &fakeObserver{})

	resp, err := uc.Execute(context.Background(), &Request{
		BarbershopID: shopID,
		Date:         mondayUT,
		ServiceIDs:   []uuid.UUID{haircut},
	})

	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	unknown := uuid.New()
	inactive := uuid.New()

	tests := []struct {
		name     string
		req      Request
		mutate   func(day *availability.Day, services *fakeServices, days *fakeDays)
		g        int
		wantErr  error
		wantText string
	}{
		{
			name:    "missing barbershop",
			req:     Request{Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     Request{BarbershopID: shopID, ServiceIDs: []uuid.UUID{haircut}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no services",
			req:     Request{BarbershopID: shopID, Date: mondayUT},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate services",
			req:     Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut, haircut}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "too many services",
			req: Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{
				uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
				uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown service",
			req:     Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{unknown}},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "inactive service",
			req:  Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{inactive}},
			mutate: func(_ *availability.Day, services *fakeServices, _ *fakeDays) {
				services.services = append(services.services, domain.Service{ID: inactive, DurationMinutes: 30})
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "unknown barber",
			req:     Request{BarbershopID: shopID, BarberID: &unknown, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			wantErr: ErrBarberNotFound,
		},
		{
			name: "inactive barber",
			req:  Request{BarbershopID: shopID, BarberID: &barberA, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			mutate: func(day *availability.Day, _ *fakeServices, _ *fakeDays) {
				day.Roster[0].IsActive = false
			},
			wantErr: ErrBarberNotFound,
		},
		{
			name:    "barber cannot perform",
			req:     Request{BarbershopID: shopID, BarberID: &barberA, Date: mondayUT, ServiceIDs: []uuid.UUID{shave}},
			wantErr: ErrBarberCannotPerform,
		},
		{
			name: "empty roster",
			req:  Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			mutate: func(day *availability.Day, _ *fakeServices, _ *fakeDays) {
				day.Roster = nil
			},
			wantErr:  ErrNoEligibleBarber,
			wantText: "barbershop has no active barbers",
		},
		{
			name: "nobody performs all services",
			req:  Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut, shave}},
			mutate: func(day *availability.Day, _ *fakeServices, _ *fakeDays) {
				day.Roster = day.Roster[:1]
			},
			wantErr:  ErrNoEligibleBarber,
			wantText: "no barber performs all requested services",
		},
		{
			name:    "invalid granularity",
			req:     Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			g:       25,
			wantErr: ErrInvalidGranularity,
		},
		{
			name: "service repository failure",
			req:  Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			mutate: func(_ *availability.Day, services *fakeServices, _ *fakeDays) {
				services.err = errors.New("connection refused")
			},
			wantErr: ErrInternal,
		},
		{
			name: "day loading failure",
			req:  Request{BarbershopID: shopID, Date: mondayUT, ServiceIDs: []uuid.UUID{haircut}},
			mutate: func(_ *availability.Day, _ *fakeServices, days *fakeDays) {
				days.err = errors.New("connection refused")
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := newDay(t)
			services := newServices()
			days := &fakeDays{day: day}
			if tt.mutate != nil {
				tt.mutate(day, services, days)
			}
			g := tt.g
			if g == 0 {
				g = 30
			}
			obs := &fakeObserver{}
			uc := newUseCase(t, days, services, g, time.Date(2024, 1, 21, 12, 0, 0, 0, time.UTC), obs)

			resp, err := uc.Execute(context.Background(), &tt.req)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantText != "" {
				assert.Contains(t, err.Error(), tt.wantText)
			}
			assert.Empty(t, obs.values)
		})
	}
}
