package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BarbershopID       uuid.UUID       `json:"barbershopId"`
	Date               string          `json:"date"`
	Timezone           string          `json:"timezone"`
	DurationMinutes    int             `json:"durationMinutes"`
	GranularityMinutes int             `json:"granularityMinutes"`
	Slots              []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота; время в RFC3339 со смещением барбершопа
type AvailableSlot struct {
	StartsAt            string      `json:"startsAt"`
	EndsAt              string      `json:"endsAt"`
	BarberIDs           []uuid.UUID `json:"barberIds"`
	RecommendedBarberID uuid.UUID   `json:"recommendedBarberId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		loc = time.UTC
	}

	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartsAt:            slot.StartsAt.In(loc).Format(time.RFC3339),
			EndsAt:              slot.EndsAt.In(loc).Format(time.RFC3339),
			BarberIDs:           slot.BarberIDs,
			RecommendedBarberID: slot.RecommendedBarberID,
		}
	}

	return &AvailableSlotsResponse{
		BarbershopID:       resp.BarbershopID,
		Date:               resp.Date.Format(domain.DateFormat),
		Timezone:           resp.Timezone,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(barbershopID uuid.UUID, barberID *uuid.UUID, dateStr string, serviceIDs []uuid.UUID) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		Date:         date,
		ServiceIDs:   serviceIDs,
	}, nil
}
