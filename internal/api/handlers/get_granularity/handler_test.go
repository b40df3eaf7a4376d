package get_granularity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetGranularity(_ context.Context, barbershopID uuid.UUID) (*models.GranularityResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.GranularityResponse{BarbershopID: barbershopID, GranularityMinutes: 15, Source: models.SourceDefault}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, shop string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/barbershops/{barbershopId}/settings/granularity", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/barbershops/"+shop+"/settings/granularity", nil))
	return rec
}

func TestHandle(t *testing.T) {
	shopID := uuid.New()

	rec := serve(&fakeService{}, shopID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"granularityMinutes":15`)
	assert.NotContains(t, rec.Body.String(), "overrideMinutes")

	rec = serve(&fakeService{}, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{err: errors.New("boom")}, shopID.String())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
