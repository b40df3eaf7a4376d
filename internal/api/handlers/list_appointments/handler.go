package list_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
)

const (
	msgInvalidBarbershopID = "некорректный ID барбершопа"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbershops/{barbershopId}/appointments
// Query params: date (обязательно), barberId, status, includeCanceled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbershopID, err := handlers.ParseUUID(mux.Vars(r)["barbershopId"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/appointments - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(barbershopID, q.Get("barberId"), q.Get("date"), q.Get("status"), q.Get("includeCanceled"))
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /barbershops/{id}/appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /barbershops/{id}/appointments - Failed to list appointments: barbershop_id=%s, error=%v",
			barbershopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbershops/{id}/appointments - Appointments retrieved successfully: barbershop_id=%s, count=%d",
		barbershopID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
