package get_granularity

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
)

const msgInvalidBarbershopID = "некорректный ID барбершопа"

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

// Handle GET /api/v1/barbershops/{barbershopId}/settings/granularity
// Без переопределения возвращается глобальное значение с source=default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbershopID, err := handlers.ParseUUID(mux.Vars(r)["barbershopId"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/settings/granularity - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	result, err := h.service.GetGranularity(r.Context(), barbershopID)
	if err != nil {
		h.logger.Error("GET /barbershops/{id}/settings/granularity - Failed to get granularity: barbershop_id=%s, error=%v",
			barbershopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbershops/{id}/settings/granularity - Granularity retrieved: barbershop_id=%s, minutes=%d, source=%s",
		barbershopID, result.GranularityMinutes, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
