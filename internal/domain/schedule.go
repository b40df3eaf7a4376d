package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// WorkingPeriod is a recurring weekly interval during which a barber is available.
// Several periods per weekday are allowed (morning and afternoon shifts).
type WorkingPeriod struct {
	ID           uuid.UUID
	BarberID     uuid.UUID
	BarbershopID uuid.UUID
	Weekday      time.Weekday // 0 = Sunday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsActive     bool
}

// IsValid returns true if the period has a positive length
func (p *WorkingPeriod) IsValid() bool {
	return p.StartTime.IsBefore(p.EndTime)
}

// DurationMinutes returns the nominal length of the period
func (p *WorkingPeriod) DurationMinutes() int {
	if !p.IsValid() {
		return 0
	}
	return p.EndTime.Minutes() - p.StartTime.Minutes()
}

// BlockedInterval removes availability for an absolute time range (vacation, lunch, manual hold)
type BlockedInterval struct {
	ID           uuid.UUID
	BarberID     uuid.UUID
	BarbershopID uuid.UUID
	StartsAt     time.Time
	EndsAt       time.Time
	Reason       string
	IsActive     bool
}

// IsValid returns true if the block has a positive length
func (b *BlockedInterval) IsValid() bool {
	return b.StartsAt.Before(b.EndsAt)
}

// BlockedIntervalFilter selects blocks intersecting [From, To)
type BlockedIntervalFilter struct {
	BarbershopID uuid.UUID
	BarberID     *uuid.UUID
	From         time.Time
	To           time.Time
}
