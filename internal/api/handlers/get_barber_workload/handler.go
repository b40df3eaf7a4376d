package get_barber_workload

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	getBarberWorkload "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_barber_workload"
)

const (
	msgInvalidBarbershopID = "некорректный ID барбершопа"
	msgInvalidBarberID     = "некорректный ID барбера"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBarberNotFound      = "барбер не найден"
)

type Handler struct {
	useCase GetBarberWorkloadUseCase
	logger  Logger
}

func NewHandler(useCase GetBarberWorkloadUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbershops/{barbershopId}/barbers/{barberId}/workload?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barbershopID, err := handlers.ParseUUID(vars["barbershopId"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/barbers/{id}/workload - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	barberID, err := handlers.ParseUUID(vars["barberId"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/barbers/{id}/workload - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbershops/{id}/barbers/{id}/workload - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/barbers/{id}/workload - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBarberWorkload.Request{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		Date:         date,
	})
	if err != nil {
		if errors.Is(err, getBarberWorkload.ErrBarberNotFound) {
			h.logger.Warn("GET /barbershops/{id}/barbers/{id}/workload - Barber not found: barbershop_id=%s, barber_id=%s",
				barbershopID, barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
			return
		}

		h.logger.Error("GET /barbershops/{id}/barbers/{id}/workload - Failed to get workload: barber_id=%s, error=%v",
			barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbershops/{id}/barbers/{id}/workload - Workload retrieved: barber_id=%s, date=%s, count=%d",
		barberID, dateStr, result.AppointmentCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
