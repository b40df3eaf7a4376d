package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
)

const (
	msgInvalidBarbershopID = "некорректный ID барбершопа"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartsAt     = "некорректное время начала, ожидается RFC3339"
	msgInvalidInput        = "некорректные данные записи"
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgSlotInPast          = "нельзя записаться на прошедшее время"
	msgServiceNotFound     = "услуга не найдена"
	msgBarberNotFound      = "барбер не найден"
	msgBarberCannotPerform = "барбер не выполняет выбранные услуги"
	msgNoEligibleBarber    = "нет барбера, выполняющего выбранные услуги"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/barbershops/{barbershopId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barbershopID, err := handlers.ParseUUID(mux.Vars(r)["barbershopId"])
	if err != nil {
		h.logger.Warn("POST /barbershops/{id}/appointments - Invalid barbershop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarbershopID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbershops/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(barbershopID)
	if err != nil {
		h.logger.Warn("POST /barbershops/{id}/appointments - Invalid startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /barbershops/{id}/appointments - Slot not available: barbershop_id=%s, starts_at=%s",
				barbershopID, req.StartsAt)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /barbershops/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /barbershops/{id}/appointments - Slot in the past: starts_at=%s", req.StartsAt)
			handlers.RespondUnprocessable(w, msgSlotInPast)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /barbershops/{id}/appointments - Service not found: barbershop_id=%s", barbershopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /barbershops/{id}/appointments - Barber not found: barber_id=%v", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrBarberCannotPerform):
			h.logger.Warn("POST /barbershops/{id}/appointments - Barber cannot perform services: barber_id=%v", req.BarberID)
			handlers.RespondUnprocessable(w, msgBarberCannotPerform)

		case errors.Is(err, createAppointment.ErrNoEligibleBarber):
			h.logger.Warn("POST /barbershops/{id}/appointments - No eligible barber: %v", err)
			handlers.RespondUnprocessable(w, msgNoEligibleBarber)

		default:
			h.logger.Error("POST /barbershops/{id}/appointments - Failed to create appointment: barbershop_id=%s, error=%v",
				barbershopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, useCaseReq.StartsAt.Location())

	h.logger.Info("POST /barbershops/{id}/appointments - Appointment created successfully: appointment_id=%s, barber_id=%s",
		result.ID, result.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
