package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах генерации
	ErrInvalidInput = errors.New("slots: invalid input data")
)
