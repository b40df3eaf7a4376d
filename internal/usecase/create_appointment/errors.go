package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrBarberNotFound возвращается, когда барбер не найден или неактивен
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrBarberCannotPerform возвращается, когда выбранный барбер не выполняет одну из услуг
	ErrBarberCannotPerform = errors.New("create_appointment: barber does not perform all requested services")

	// ErrNoEligibleBarber возвращается, когда ни один барбер не выполняет все услуги
	ErrNoEligibleBarber = errors.New("create_appointment: no eligible barber")

	// ErrSlotNotAvailable возвращается, когда интервал уже занят или не лежит на сетке
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrSlotInPast возвращается при попытке записаться на прошедшее время
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
