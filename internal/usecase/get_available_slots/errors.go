package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = errors.New("get_available_slots: barber not found")

	// ErrBarberCannotPerform возвращается, когда выбранный барбер не выполняет одну из услуг
	ErrBarberCannotPerform = errors.New("get_available_slots: barber does not perform all requested services")

	// ErrNoEligibleBarber возвращается, когда ни один барбер не выполняет все услуги
	ErrNoEligibleBarber = errors.New("get_available_slots: no eligible barber")

	// ErrInvalidGranularity возвращается, если шаг сетки недопустим
	ErrInvalidGranularity = errors.New("get_available_slots: invalid slot granularity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
