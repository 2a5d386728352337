package get_resources_slots

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// DaySlotsQuery интерфейс запроса слотов одного ресурса на один день
type DaySlotsQuery interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
