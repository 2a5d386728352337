package schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetOverride(ctx context.Context, resourceID, locationID int64, date string) (*domain.Schedule, error)
	GetRecurring(ctx context.Context, resourceID, locationID int64, weekday int) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
