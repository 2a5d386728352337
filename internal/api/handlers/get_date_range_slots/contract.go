package get_date_range_slots

import (
	"context"

	getDateRangeSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_date_range_slots"
)

type GetDateRangeSlotsUseCase interface {
	Execute(ctx context.Context, req *getDateRangeSlots.Request) (*getDateRangeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
