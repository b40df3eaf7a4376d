package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// BarberAvailability свободные окна одного барбера на день
type BarberAvailability struct {
	Barber  domain.Barber
	Windows []domain.FreeWindow
}

// AssignSlots строит слоты для записи без предпочтения: объединяет сетки всех
// переданных барберов, для каждого начала собирает свободных барберов и
// ранжирует их тем же Rank, что и Recommend.
func (r *Recommender) AssignSlots(
	availability []BarberAvailability,
	durationMinutes int,
	granularityMinutes int,
	loc *time.Location,
	confirmedCounts map[uuid.UUID]int,
) ([]domain.CandidateSlot, error) {
	byStart := make(map[int64][]domain.Barber)
	starts := make([]time.Time, 0)

	for _, av := range availability {
		barberStarts, err := GridStarts(av.Windows, durationMinutes, granularityMinutes, loc)
		if err != nil {
			return nil, err
		}
		for _, start := range barberStarts {
			key := start.UnixNano()
			if _, ok := byStart[key]; !ok {
				starts = append(starts, start)
			}
			byStart[key] = append(byStart[key], av.Barber)
		}
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})

	duration := time.Duration(durationMinutes) * time.Minute
	slots := make([]domain.CandidateSlot, 0, len(starts))
	for _, start := range starts {
		ranked := r.Rank(byStart[start.UnixNano()], confirmedCounts)

		eligible := make([]uuid.UUID, len(ranked))
		for i := range ranked {
			eligible[i] = ranked[i].ID
		}

		slots = append(slots, domain.CandidateSlot{
			Start:               start,
			End:                 start.Add(duration),
			EligibleBarberIDs:   eligible,
			RecommendedBarberID: eligible[0],
		})
	}
	return slots, nil
}

// IsSlotAvailable повторно проверяет конкретный интервал: начало на сетке и
// [start, start+duration) целиком внутри одного из свободных окон
func IsSlotAvailable(windows []domain.FreeWindow, start time.Time, durationMinutes, granularityMinutes int, loc *time.Location) bool {
	if durationMinutes <= 0 || !IsOnGrid(start, granularityMinutes, loc) {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, w := range windows {
		if w.Fits(start, end) {
			return true
		}
	}
	return false
}
