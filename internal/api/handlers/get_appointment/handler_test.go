package get_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

var (
	shopID = uuid.MustParse("5b1f6c1e-8d7a-4f0e-9c1a-1f2e3d4c5b6a")
	apptID = uuid.MustParse("99999999-0000-4000-8000-000000000001")
)

type fakeService struct{ err error }

func (f *fakeService) GetByID(_ context.Context, barbershopID, id uuid.UUID) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, BarbershopID: barbershopID, Status: "CONFIRMED"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/barbershops/{barbershopId}/appointments/{appointmentId}", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := serve(&fakeService{}, fmt.Sprintf("/api/v1/barbershops/%s/appointments/%s", shopID, apptID))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apptID, body.ID)
	assert.Equal(t, "CONFIRMED", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	valid := fmt.Sprintf("/api/v1/barbershops/%s/appointments/%s", shopID, apptID)

	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"bad barbershop id", fmt.Sprintf("/api/v1/barbershops/nope/appointments/%s", apptID), nil, http.StatusBadRequest},
		{"bad appointment id", fmt.Sprintf("/api/v1/barbershops/%s/appointments/nope", shopID), nil, http.StatusBadRequest},
		{"not found", valid, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", valid, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
