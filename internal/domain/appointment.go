package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCanceled  AppointmentStatus = "CANCELED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a booked appointment as consumed by the slot engine
type Appointment struct {
	ID            uuid.UUID
	BarbershopID  uuid.UUID
	BarberID      *uuid.UUID // nil until a no-preference booking is assigned
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	StartsAt      time.Time
	EndsAt        time.Time
	Status        AppointmentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OccupiesTime returns true if the appointment blocks the barber's calendar
func (a *Appointment) OccupiesTime() bool {
	return a.Status != StatusCanceled
}

// IsConfirmed returns true if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// CanBeCanceled returns true if the appointment can still be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusConfirmed
}

// BelongsTo returns true if the appointment is assigned to the barber
func (a *Appointment) BelongsTo(barberID uuid.UUID) bool {
	return a.BarberID != nil && *a.BarberID == barberID
}

// DurationMinutes returns the booked length in whole minutes
func (a *Appointment) DurationMinutes() int {
	return int(a.EndsAt.Sub(a.StartsAt) / time.Minute)
}

// AppointmentService is a denormalized service line of an appointment
type AppointmentService struct {
	AppointmentID   uuid.UUID
	ServiceID       uuid.UUID
	ServiceName     string
	DurationMinutes int
	BufferMinutes   int
	PriceCents      int64
}

// AppointmentStatusChange is a row of the appointment status history
type AppointmentStatusChange struct {
	AppointmentID uuid.UUID
	FromStatus    *AppointmentStatus
	ToStatus      AppointmentStatus
	Reason        string
	CreatedAt     time.Time
}

// AppointmentFilter selects appointments intersecting [From, To)
type AppointmentFilter struct {
	BarbershopID    uuid.UUID  // required
	BarberID        *uuid.UUID // optional, nil - all barbers
	From            time.Time
	To              time.Time
	IncludeCanceled bool
	ForUpdate       bool // lock selected rows, only inside a read-write transaction
}
