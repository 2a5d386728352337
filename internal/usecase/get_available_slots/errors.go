package get_available_slots

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена или принадлежит другому тенанту
	ErrLocationNotFound = errors.New("location not found")

	// ErrTimezoneMismatch возвращается, когда часовой пояс запроса не совпадает с часовым поясом локации
	ErrTimezoneMismatch = errors.New("timezone does not match location timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
