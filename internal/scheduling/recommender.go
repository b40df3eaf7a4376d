package scheduling

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// RecommendationInput состав барбершопа и загрузка на день
type RecommendationInput struct {
	BarbershopID uuid.UUID
	ServiceIDs   []uuid.UUID
	Roster       []domain.Barber
	// ConfirmedCounts количество подтверждённых записей каждого барбера в целевой день
	ConfirmedCounts map[uuid.UUID]int
	// Available оставляет только свободных барберов, nil - без фильтра
	Available func(barberID uuid.UUID) bool
}

// Recommendation результат подбора барбера
type Recommendation struct {
	BarberID uuid.UUID
	// Eligible подходящие и свободные барберы в порядке приоритета, первый - рекомендованный
	Eligible []domain.Barber
}

// Recommender выбирает барбера для записи без предпочтения.
// Единственная реализация, которую используют и список слотов, и создание записи.
// Не хранит состояние: загрузка пересчитывается на каждый запрос.
type Recommender struct{}

// NewRecommender создает рекомендатель
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend возвращает барбера с наименьшим числом подтверждённых записей за день.
// При равенстве выигрывает барбер, созданный раньше.
func (r *Recommender) Recommend(in RecommendationInput) (*Recommendation, error) {
	eligible, err := r.Eligible(in.BarbershopID, in.Roster, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	if in.Available != nil {
		free := eligible[:0:0]
		for i := range eligible {
			if in.Available(eligible[i].ID) {
				free = append(free, eligible[i])
			}
		}
		if len(free) == 0 {
			return nil, ErrNoAvailableBarber
		}
		eligible = free
	}

	ranked := r.Rank(eligible, in.ConfirmedCounts)
	return &Recommendation{
		BarberID: ranked[0].ID,
		Eligible: ranked,
	}, nil
}

// Eligible отбирает активных барберов барбершопа, выполняющих все запрошенные услуги.
// Пустой состав и отсутствие барбера, покрывающего все услуги, различаются текстом ошибки.
func (r *Recommender) Eligible(barbershopID uuid.UUID, roster []domain.Barber, serviceIDs []uuid.UUID) ([]domain.Barber, error) {
	active := make([]domain.Barber, 0, len(roster))
	for i := range roster {
		if roster[i].IsActive && roster[i].BarbershopID == barbershopID {
			active = append(active, roster[i])
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: barbershop has no active barbers", ErrNoEligibleBarber)
	}

	eligible := make([]domain.Barber, 0, len(active))
	for i := range active {
		if active[i].CanPerform(serviceIDs) {
			eligible = append(eligible, active[i])
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no barber performs all requested services", ErrNoEligibleBarber)
	}

	return eligible, nil
}

// Rank сортирует барберов: меньше записей, затем раньше создан, затем по ID.
// Исходный срез не изменяется.
func (r *Recommender) Rank(barbers []domain.Barber, confirmedCounts map[uuid.UUID]int) []domain.Barber {
	ranked := make([]domain.Barber, len(barbers))
	copy(ranked, barbers)

	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := confirmedCounts[ranked[i].ID], confirmedCounts[ranked[j].ID]
		if ci != cj {
			return ci < cj
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
	return ranked
}
