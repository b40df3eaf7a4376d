package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BarbershopID uuid.UUID
	BarberID     *uuid.UUID  // nil - любой барбер
	Date         time.Time   // Дата в часовом поясе барбершопа (используются только год, месяц, день)
	ServiceIDs   []uuid.UUID // Услуги записи, длительность = сумма длительностей и буферов
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BarbershopID       uuid.UUID
	Date               time.Time
	Timezone           string
	DurationMinutes    int
	GranularityMinutes int
	Slots              []Slot
}

// Slot модель кандидата на запись
type Slot struct {
	StartsAt            time.Time
	EndsAt              time.Time
	BarberIDs           []uuid.UUID // Свободные барберы, первый - рекомендованный
	RecommendedBarberID uuid.UUID
}
