package granularity

import "errors"

var (
	// ErrInvalidGranularity возвращается при попытке сохранить недопустимый шаг сетки
	ErrInvalidGranularity = errors.New("granularity: invalid slot granularity")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("granularity: internal error")
)
