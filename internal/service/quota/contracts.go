package quota

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UsageRepository интерфейс репозитория счётчиков использования
type UsageRepository interface {
	Get(ctx context.Context, tenantID int64) (*domain.UsageCycle, error)
	ResetIfExpired(ctx context.Context, tenantID int64, now, cutoff time.Time) (*domain.UsageCycle, error)
	Add(ctx context.Context, tenantID int64, planID string, delta int, now, cutoff time.Time) (*domain.UsageCycle, error)
	Recalculate(ctx context.Context, tenantID int64, planID string, now, cutoff time.Time) (*domain.UsageCycle, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
