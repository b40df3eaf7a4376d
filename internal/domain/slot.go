package domain

import (
	"time"

	"github.com/google/uuid"
)

// FreeWindow is a half-open interval [Start, End) during which a barber is available
type FreeWindow struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length
func (w FreeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Fits returns true if [start, end) lies inside the window (end may touch the window end)
func (w FreeWindow) Fits(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// CandidateSlot is one grid-aligned booking opportunity
type CandidateSlot struct {
	Start               time.Time
	End                 time.Time
	EligibleBarberIDs   []uuid.UUID // ordered by recommendation rank
	RecommendedBarberID uuid.UUID
}

// BarberWorkload is a snapshot of a barber's load for one day
type BarberWorkload struct {
	BarberID         uuid.UUID
	AppointmentCount int
	BookedMinutes    int
	CapacityMinutes  int
	OccupancyRate    float64 // 0..1
	CreatedAt        time.Time
}

// HasCapacity returns true if some working time is left
func (w *BarberWorkload) HasCapacity() bool {
	return w.BookedMinutes < w.CapacityMinutes
}
