package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BarberID      *uuid.UUID  `json:"barberId,omitempty"` // не указан - барбер подбирается автоматически
	ServiceIDs    []uuid.UUID `json:"serviceIds"`
	StartsAt      string      `json:"startsAt"` // RFC3339, "2024-01-22T09:30:00-03:00"
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	CustomerEmail *string     `json:"customerEmail,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID         `json:"id"`
	BarbershopID    uuid.UUID         `json:"barbershopId"`
	BarberID        uuid.UUID         `json:"barberId"`
	AutoAssigned    bool              `json:"autoAssigned"`
	StartsAt        string            `json:"startsAt"`
	EndsAt          string            `json:"endsAt"`
	DurationMinutes int               `json:"durationMinutes"`
	Status          string            `json:"status"`
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerEmail   *string           `json:"customerEmail,omitempty"`
	Services        []AppointmentLine `json:"services"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	CreatedAt       string            `json:"createdAt"`
}

// AppointmentLine строка услуги
type AppointmentLine struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	BufferMinutes   int       `json:"bufferMinutes"`
	PriceCents      int64     `json:"priceCents"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(barbershopID uuid.UUID) (*createAppointment.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BarbershopID:  barbershopID,
		BarberID:      r.BarberID,
		ServiceIDs:    r.ServiceIDs,
		StartsAt:      startsAt,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Время отдается в том же смещении, в котором пришел запрос
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	lines := make([]AppointmentLine, len(resp.Services))
	for i, s := range resp.Services {
		lines[i] = AppointmentLine{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			BufferMinutes:   s.BufferMinutes,
			PriceCents:      s.PriceCents,
		}
	}

	return &AppointmentResponse{
		ID:              resp.ID,
		BarbershopID:    resp.BarbershopID,
		BarberID:        resp.BarberID,
		AutoAssigned:    resp.AutoAssigned,
		StartsAt:        resp.StartsAt.In(loc).Format(time.RFC3339),
		EndsAt:          resp.EndsAt.In(loc).Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		CustomerEmail:   resp.CustomerEmail,
		Services:        lines,
		TotalPriceCents: resp.TotalPriceCents,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
