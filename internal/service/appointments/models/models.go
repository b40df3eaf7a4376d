package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason string `json:"reason"`
}

// ListRequest запрос на получение записей барбершопа за день
type ListRequest struct {
	BarbershopID    uuid.UUID  `json:"barbershopId"`
	BarberID        *uuid.UUID `json:"barberId,omitempty"`
	Date            time.Time  `json:"date"`
	Status          *string    `json:"status,omitempty"`
	IncludeCanceled bool       `json:"includeCanceled,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	BarbershopID    uuid.UUID  `json:"barbershopId"`
	BarberID        *uuid.UUID `json:"barberId,omitempty"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          time.Time  `json:"endsAt"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	Services        []ServiceLine `json:"services"`
	TotalPriceCents int64         `json:"totalPriceCents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceLine услуга в составе записи
type ServiceLine struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	BufferMinutes   int       `json:"bufferMinutes"`
	PriceCents      int64     `json:"priceCents"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Timezone     string                `json:"timezone"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Время переводится в часовой пояс барбершопа.
func FromDomainAppointment(a *domain.Appointment, lines []domain.AppointmentService, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		BarbershopID:    a.BarbershopID,
		BarberID:        a.BarberID,
		StartsAt:        a.StartsAt.In(loc),
		EndsAt:          a.EndsAt.In(loc),
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		CustomerName:    a.CustomerName,
		CustomerPhone:   a.CustomerPhone,
		CustomerEmail:   a.CustomerEmail,
		Services:        make([]ServiceLine, 0, len(lines)),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	for _, l := range lines {
		resp.Services = append(resp.Services, ServiceLine{
			ServiceID:       l.ServiceID,
			Name:            l.ServiceName,
			DurationMinutes: l.DurationMinutes,
			BufferMinutes:   l.BufferMinutes,
			PriceCents:      l.PriceCents,
		})
		resp.TotalPriceCents += l.PriceCents
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	switch s {
	case domain.StatusConfirmed, domain.StatusCanceled, domain.StatusCompleted:
		return s, nil
	}

	return "", ErrInvalidStatus
}
