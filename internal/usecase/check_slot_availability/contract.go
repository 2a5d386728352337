package check_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// ScheduleResolver интерфейс определения рабочих часов на дату
type ScheduleResolver interface {
	Resolve(ctx context.Context, resourceID, locationID int64, date string) (domain.Resolution, error)
}

// ConflictIndex интерфейс получения занятых интервалов
type ConflictIndex interface {
	BlockedRanges(ctx context.Context, resourceID, locationID int64, date string, loc *time.Location) ([]domain.BlockedRange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
