package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// QuotaGuard интерфейс проверки квоты тенанта
type QuotaGuard interface {
	CheckQuota(ctx context.Context, tenantID int64) (*quota.Status, error)
}

// ScheduleResolver интерфейс определения рабочих часов на дату
type ScheduleResolver interface {
	Resolve(ctx context.Context, resourceID, locationID int64, date string) (domain.Resolution, error)
}

// ConflictIndex интерфейс получения занятых интервалов
type ConflictIndex interface {
	BlockedRanges(ctx context.Context, resourceID, locationID int64, date string, loc *time.Location) ([]domain.BlockedRange, error)
}

// Metrics интерфейс метрик use case
type Metrics interface {
	ObserveSlotsGenerated(count int)
	IncQuotaRejected(planID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
