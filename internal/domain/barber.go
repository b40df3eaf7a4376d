package domain

import (
	"time"

	"github.com/google/uuid"
)

// Barber is a roster entry together with the services the barber performs
type Barber struct {
	ID           uuid.UUID
	BarbershopID uuid.UUID
	Name         string
	ServiceIDs   []uuid.UUID
	IsActive     bool
	CreatedAt    time.Time
}

// CanPerform returns true if the barber performs every requested service
func (b *Barber) CanPerform(serviceIDs []uuid.UUID) bool {
	if len(serviceIDs) == 0 {
		return true
	}

	capable := make(map[uuid.UUID]struct{}, len(b.ServiceIDs))
	for _, id := range b.ServiceIDs {
		capable[id] = struct{}{}
	}

	for _, id := range serviceIDs {
		if _, ok := capable[id]; !ok {
			return false
		}
	}
	return true
}

// Service is a bookable barbershop service
type Service struct {
	ID              uuid.UUID
	BarbershopID    uuid.UUID
	Name            string
	DurationMinutes int
	BufferMinutes   int
	PriceCents      int64
	IsActive        bool
}

// TotalMinutes returns the time the service occupies including the buffer
func (s *Service) TotalMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
