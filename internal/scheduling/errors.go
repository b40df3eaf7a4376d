package scheduling

import "errors"

var (
	// ErrInvalidGranularity возвращается, если шаг сетки не делитель 60 в диапазоне [5, 60]
	ErrInvalidGranularity = errors.New("scheduling: invalid slot granularity")

	// ErrInvalidDuration возвращается при неположительной длительности записи
	ErrInvalidDuration = errors.New("scheduling: invalid appointment duration")

	// ErrNoEligibleBarber возвращается, когда ни один барбер не может выполнить запрошенные услуги
	ErrNoEligibleBarber = errors.New("scheduling: no eligible barber")

	// ErrNoAvailableBarber возвращается, когда подходящие барберы есть, но ни один не свободен
	ErrNoAvailableBarber = errors.New("scheduling: no eligible barber is available")
)
