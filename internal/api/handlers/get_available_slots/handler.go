package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

const (
	msgInvalidBarbershopID = "некорректный ID барбершопа"
	msgInvalidBarberID     = "некорректный ID барбера"
	msgInvalidServiceIDs   = "некорректный список услуг"
	msgMissingServiceIDs   = "необходимо указать хотя бы одну услугу"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные параметры запроса"
	msgServiceNotFound     = "услуга не найдена"
	msgBarberNotFound      = "барбер не найден"
	msgBarberCannotPerform = "барбер не выполняет выбранные услуги"
	msgNoEligibleBarber    = "нет барбера, выполняющего выбранные услуги"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbershops/{barbershopId}/slots
// Query params: date (required, YYYY-MM-DD), serviceIds (required, через запятую), barberId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbershopID, err := handlers.ParseUUID(mux.Vars(r)["barbershopId"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/slots - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	query := r.URL.Query()

	serviceIDs, err := handlers.ParseUUIDList(query["serviceIds"])
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/slots - Invalid service IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}
	if len(serviceIDs) == 0 {
		h.logger.Warn("GET /barbershops/{id}/slots - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	var barberID *uuid.UUID
	if raw := query.Get("barberId"); raw != "" {
		id, err := handlers.ParseUUID(raw)
		if err != nil {
			h.logger.Warn("GET /barbershops/{id}/slots - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		barberID = &id
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbershops/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barbershopID, barberID, dateStr, serviceIDs)
	if err != nil {
		h.logger.Warn("GET /barbershops/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /barbershops/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /barbershops/{id}/slots - Service not found: barbershop_id=%s", barbershopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /barbershops/{id}/slots - Barber not found: barbershop_id=%s, barber_id=%v", barbershopID, barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberCannotPerform):
			h.logger.Warn("GET /barbershops/{id}/slots - Barber cannot perform services: barber_id=%v", barberID)
			handlers.RespondUnprocessable(w, msgBarberCannotPerform)

		case errors.Is(err, getAvailableSlots.ErrNoEligibleBarber):
			h.logger.Warn("GET /barbershops/{id}/slots - No eligible barber: barbershop_id=%s, %v", barbershopID, err)
			handlers.RespondUnprocessable(w, msgNoEligibleBarber)

		case errors.Is(err, getAvailableSlots.ErrInvalidGranularity):
			h.logger.Error("GET /barbershops/{id}/slots - Invalid granularity: barbershop_id=%s, %v", barbershopID, err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("GET /barbershops/{id}/slots - Failed to get slots: barbershop_id=%s, error=%v", barbershopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /barbershops/{id}/slots - Slots retrieved successfully: barbershop_id=%s, date=%s, slots_count=%d",
		barbershopID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
