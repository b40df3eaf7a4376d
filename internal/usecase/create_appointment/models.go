package create_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	BarbershopID  uuid.UUID
	BarberID      *uuid.UUID // nil - барбер подбирается автоматически
	ServiceIDs    []uuid.UUID
	StartsAt      time.Time
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	BarbershopID    uuid.UUID
	BarberID        uuid.UUID
	AutoAssigned    bool // барбер выбран рекомендацией
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Status          string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	Services        []Service
	TotalPriceCents int64
	CreatedAt       time.Time
}

// Service строка услуги в записи
type Service struct {
	ServiceID       uuid.UUID
	Name            string
	DurationMinutes int
	BufferMinutes   int
	PriceCents      int64
}
