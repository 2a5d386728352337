package bookingstatus

import "errors"

var (
	// ErrInvalidMessage возвращается, когда сообщение нельзя разобрать
	ErrInvalidMessage = errors.New("bookingstatus: invalid message")
)
