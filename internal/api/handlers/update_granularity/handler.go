package update_granularity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity"
)

const (
	msgInvalidBarbershopID = "некорректный ID барбершопа"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidGranularity  = "шаг сетки должен быть делителем 60 от 5 до 60 минут"
)

type Handler struct {
	service GranularityService
	logger  Logger
}

func NewHandler(service GranularityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbershops/{barbershopId}/settings/granularity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbershopID, err := handlers.ParseUUID(mux.Vars(r)["barbershopId"])
	if err != nil {
		h.logger.Warn("PUT /barbershops/{id}/settings/granularity - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	var req UpdateGranularityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbershops/{id}/settings/granularity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetGranularityMinutes(r.Context(), barbershopID, req.GranularityMinutes)
	if err != nil {
		if errors.Is(err, granularity.ErrInvalidGranularity) {
			h.logger.Warn("PUT /barbershops/{id}/settings/granularity - Invalid granularity: barbershop_id=%s, %v",
				barbershopID, err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}

		h.logger.Error("PUT /barbershops/{id}/settings/granularity - Failed to update granularity: barbershop_id=%s, error=%v",
			barbershopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /barbershops/{id}/settings/granularity - Granularity updated: barbershop_id=%s, minutes=%d, source=%s",
		barbershopID, result.GranularityMinutes, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
