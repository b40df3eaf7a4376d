package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

var (
	shopID    = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	barberID  = uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001")
	serviceID = uuid.MustParse("c0c0c0c0-0000-4000-8000-000000000001")
)

type fakeUseCase struct {
	resp   *getAvailableSlots.Response
	err    error
	gotReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/barbershops/{barbershopId}/slots", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	start := time.Date(2024, 1, 22, 9, 30, 0, 0, loc).UTC()

	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		BarbershopID:       shopID,
		Date:               time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
		Timezone:           "America/Sao_Paulo",
		DurationMinutes:    30,
		GranularityMinutes: 15,
		Slots: []getAvailableSlots.Slot{{
			StartsAt:            start,
			EndsAt:              start.Add(30 * time.Minute),
			BarberIDs:           []uuid.UUID{barberID},
			RecommendedBarberID: barberID,
		}},
	}}

	rec := serve(uc, fmt.Sprintf("/api/v1/barbershops/%s/slots?date=2024-01-22&serviceIds=%s&barberId=%s", shopID, serviceID, barberID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq.BarberID)
	assert.Equal(t, barberID, *uc.gotReq.BarberID)
	assert.Equal(t, []uuid.UUID{serviceID}, uc.gotReq.ServiceIDs)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-22", body.Date)
	assert.Equal(t, 15, body.GranularityMinutes)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2024-01-22T09:30:00-03:00", body.Slots[0].StartsAt)
	assert.Equal(t, "2024-01-22T10:00:00-03:00", body.Slots[0].EndsAt)
	assert.Equal(t, barberID, body.Slots[0].RecommendedBarberID)
}

func TestHandle_EmptySlotsIsJSONArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		BarbershopID: shopID,
		Date:         time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
		Timezone:     "UTC",
		Slots:        []getAvailableSlots.Slot{},
	}}

	rec := serve(uc, fmt.Sprintf("/api/v1/barbershops/%s/slots?date=2024-01-22&serviceIds=%s", shopID, serviceID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
	assert.Nil(t, uc.gotReq.BarberID)
}

func TestHandle_Errors(t *testing.T) {
	valid := fmt.Sprintf("/api/v1/barbershops/%s/slots?date=2024-01-22&serviceIds=%s", shopID, serviceID)

	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{name: "invalid barbershop", target: "/api/v1/barbershops/nope/slots?date=2024-01-22&serviceIds=" + serviceID.String(), wantStatus: http.StatusBadRequest},
		{name: "missing services", target: fmt.Sprintf("/api/v1/barbershops/%s/slots?date=2024-01-22", shopID), wantStatus: http.StatusBadRequest},
		{name: "invalid services", target: fmt.Sprintf("/api/v1/barbershops/%s/slots?date=2024-01-22&serviceIds=x", shopID), wantStatus: http.StatusBadRequest},
		{name: "missing date", target: fmt.Sprintf("/api/v1/barbershops/%s/slots?serviceIds=%s", shopID, serviceID), wantStatus: http.StatusBadRequest},
		{name: "invalid date", target: fmt.Sprintf("/api/v1/barbershops/%s/slots?date=22.01.2024&serviceIds=%s", shopID, serviceID), wantStatus: http.StatusBadRequest},
		{name: "invalid barber", target: valid + "&barberId=42", wantStatus: http.StatusBadRequest},
		{name: "invalid input", target: valid, ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "service not found", target: valid, ucErr: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "barber not found", target: valid, ucErr: getAvailableSlots.ErrBarberNotFound, wantStatus: http.StatusNotFound},
		{name: "barber cannot perform", target: valid, ucErr: getAvailableSlots.ErrBarberCannotPerform, wantStatus: http.StatusUnprocessableEntity},
		{name: "no eligible barber", target: valid, ucErr: fmt.Errorf("%w: barbershop has no active barbers", getAvailableSlots.ErrNoEligibleBarber), wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid granularity", target: valid, ucErr: getAvailableSlots.ErrInvalidGranularity, wantStatus: http.StatusInternalServerError},
		{name: "internal", target: valid, ucErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr}

			rec := serve(uc, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
