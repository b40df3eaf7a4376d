package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// GridStarts перечисляет допустимые начала записи длительностью durationMinutes,
// выровненные по сетке с шагом granularityMinutes.
//
// Сетка отсчитывается от локальной полуночи дня окна (а не от начала окна), поэтому
// окна, разрезанные блокировкой, используют одну и ту же сетку. Для каждого окна начало
// округляется вверх до линии сетки, последнее допустимое начало (end - duration)
// округляется вниз. Запись, заканчивающаяся ровно в конце окна, допустима.
//
// Результат отсортирован и не содержит дублей. Пустой результат - не ошибка.
func GridStarts(windows []domain.FreeWindow, durationMinutes, granularityMinutes int, loc *time.Location) ([]time.Time, error) {
	if err := ValidateGranularity(granularityMinutes); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	loc = locationOrUTC(loc)
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	seen := make(map[int64]struct{})
	starts := make([]time.Time, 0)

	for _, w := range windows {
		if w.Duration() < duration {
			continue
		}

		ref := gridReference(w.Start, loc)
		first := ref.Add(roundUp(w.Start.Sub(ref), step))
		last := ref.Add(roundDown(w.End.Add(-duration).Sub(ref), step))

		for start := first; !start.After(last); start = start.Add(step) {
			if !w.Fits(start, start.Add(duration)) {
				continue
			}
			key := start.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			starts = append(starts, start)
		}
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})
	return starts, nil
}

// BuildSlots превращает начала в слоты конкретного барбера
func BuildSlots(starts []time.Time, durationMinutes int, barberID uuid.UUID) []domain.CandidateSlot {
	duration := time.Duration(durationMinutes) * time.Minute
	slots := make([]domain.CandidateSlot, len(starts))
	for i, start := range starts {
		slots[i] = domain.CandidateSlot{
			Start:               start,
			End:                 start.Add(duration),
			EligibleBarberIDs:   []uuid.UUID{barberID},
			RecommendedBarberID: barberID,
		}
	}
	return slots
}

// TotalDurationMinutes суммирует длительность услуг вместе с буферами
func TotalDurationMinutes(services []domain.Service) int {
	total := 0
	for i := range services {
		total += services[i].TotalMinutes()
	}
	return total
}

// IsOnGrid проверяет, что момент лежит на линии сетки своего локального дня
func IsOnGrid(t time.Time, granularityMinutes int, loc *time.Location) bool {
	if granularityMinutes <= 0 {
		return false
	}
	step := time.Duration(granularityMinutes) * time.Minute
	return t.Sub(gridReference(t, locationOrUTC(loc)))%step == 0
}

func gridReference(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func roundUp(d, step time.Duration) time.Duration {
	if rem := d % step; rem != 0 {
		return d - rem + step
	}
	return d
}

func roundDown(d, step time.Duration) time.Duration {
	return d - d%step
}
