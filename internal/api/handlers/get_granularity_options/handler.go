package get_granularity_options

import (
	"net/http"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
)

type Handler struct {
	service GranularityService
}

func NewHandler(service GranularityService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/granularity/options
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Options())
}
