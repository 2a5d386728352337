package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSchedule возвращается, когда в хранилище лежит запись с некорректными часами
	ErrInvalidSchedule = errors.New("invalid schedule record")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
