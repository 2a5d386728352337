package check_slot_availability

import (
	"context"

	checkSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

type CheckSlotUseCase interface {
	Execute(ctx context.Context, req *checkSlot.Request) (*checkSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
