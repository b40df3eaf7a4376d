package domain

import (
	"time"

	"github.com/google/uuid"
)

// BarbershopSettings holds per-tenant scheduling settings
type BarbershopSettings struct {
	BarbershopID           uuid.UUID
	SlotGranularityMinutes *int   // nil = use the global default
	Timezone               string // IANA name, empty = service default
	UpdatedAt              time.Time
}

// HasGranularityOverride returns true if the barbershop overrides the global granularity
func (s *BarbershopSettings) HasGranularityOverride() bool {
	return s.SlotGranularityMinutes != nil
}
