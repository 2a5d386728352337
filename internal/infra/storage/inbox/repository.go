package inbox

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository журнал обработанных событий для идемпотентной обработки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record отмечает событие обработанным. false - событие уже было обработано.
// ON CONFLICT DO NOTHING вместо ловли unique violation: ошибка прервала бы объемлющую транзакцию.
func (r *Repository) Record(ctx context.Context, eventID string, eventType string, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("processed_events").
		Columns("event_id", "event_type", "processed_at").
		Values(eventID, eventType, now).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Record - rows affected: %v", ErrExecQuery, err)
	}

	return affected == 1, nil
}
