package models

import "github.com/google/uuid"

// Source откуда взято действующее значение гранулярности
type Source string

const (
	SourceBarbershop Source = "barbershop" // переопределение барбершопа
	SourceDefault    Source = "default"    // глобальное значение из конфигурации
)

// GranularityResponse действующая гранулярность барбершопа
type GranularityResponse struct {
	BarbershopID       uuid.UUID `json:"barbershopId"`
	GranularityMinutes int       `json:"granularityMinutes"`
	OverrideMinutes    *int      `json:"overrideMinutes,omitempty"`
	Source             Source    `json:"source"`
}

// OptionsResponse допустимые значения гранулярности
type OptionsResponse struct {
	Options        []int `json:"options"`
	DefaultMinutes int   `json:"defaultMinutes"`
}
