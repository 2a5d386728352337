package apply_booking_transition

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном событии
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
