package domain

import "time"

// Slot granularity constraints: a divisor of 60 within [5, 60]
const (
	MinGranularityMinutes     = 5
	MaxGranularityMinutes     = 60
	DefaultGranularityMinutes = 15
)

// GranularityCacheTTL is how long a resolved granularity stays cached
const GranularityCacheTTL = 5 * time.Minute

// DefaultTimezone is used when a barbershop has no timezone configured
const DefaultTimezone = "America/Sao_Paulo"

// Business validation constants
const (
	MaxServicesPerAppointment = 10
	MaxCustomerNameLength     = 120
	MaxCustomerPhoneLength    = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
