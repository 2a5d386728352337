package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const msgInternal = "внутренняя ошибка сервера"

var (
	errInvalidDuration = errors.New("invalid duration")
	errInvalidBuffer   = errors.New("invalid buffer")
	errInvalidInterval = errors.New("invalid interval")
)

// ParseSlotParams читает duration (обязательный), buffer и interval (по умолчанию) и tz
func ParseSlotParams(r *http.Request) (SlotParams, error) {
	duration, err := handlers.QueryInt(r, "duration", 0)
	if err != nil || duration <= 0 {
		return SlotParams{}, errInvalidDuration
	}

	buffer, err := handlers.QueryInt(r, "buffer", domain.DefaultBufferMinutes)
	if err != nil {
		return SlotParams{}, errInvalidBuffer
	}

	interval, err := handlers.QueryInt(r, "interval", 0)
	if err != nil {
		return SlotParams{}, errInvalidInterval
	}

	return SlotParams{
		DurationMinutes: duration,
		BufferMinutes:   buffer,
		IntervalMinutes: interval,
		Timezone:        r.URL.Query().Get("tz"),
	}, nil
}

// ParamsErrorMessage текст ошибки разбора параметров
func ParamsErrorMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidDuration):
		return msgInvalidDuration
	case errors.Is(err, errInvalidBuffer):
		return msgInvalidBuffer
	default:
		return msgInvalidInterval
	}
}

// ErrorMessage текст ошибки use case для ответа по ключу в групповых запросах
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		return msgInvalidParams
	case errors.Is(err, getAvailableSlots.ErrTimezoneMismatch):
		return msgTimezoneMismatch
	case errors.Is(err, getAvailableSlots.ErrLocationNotFound):
		return msgLocationNotFound
	default:
		return msgInternal
	}
}
