package apply_booking_transition

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

// InboxRepository журнал обработанных событий
type InboxRepository interface {
	Record(ctx context.Context, eventID string, eventType string, now time.Time) (bool, error)
}

// QuotaCounter интерфейс изменения счётчика использования
type QuotaCounter interface {
	Increment(ctx context.Context, tenantID int64, n int) (*quota.Status, error)
	Decrement(ctx context.Context, tenantID int64, n int) (*quota.Status, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
