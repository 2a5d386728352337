package get_resources_slots

import (
	"context"

	getResourcesSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_resources_slots"
)

type GetResourcesSlotsUseCase interface {
	Execute(ctx context.Context, req *getResourcesSlots.Request) (*getResourcesSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
