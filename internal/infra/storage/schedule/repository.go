package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий расписаний ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var scheduleColumns = []string{
	"id",
	"resource_id",
	"location_id",
	"day_of_week",
	"to_char(specific_date, 'YYYY-MM-DD')",
	"to_char(start_time, 'HH24:MI')",
	"to_char(end_time, 'HH24:MI')",
	"is_available",
}

// GetOverride получает запись-исключение на конкретную дату (YYYY-MM-DD), доступную или нет.
// Уникальность (resource_id, location_id, specific_date) обеспечивает индекс;
// если дубликаты всё же есть, берётся запись с наименьшим id.
func (r *Repository) GetOverride(ctx context.Context, resourceID, locationID int64, date string) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"resource_id":   resourceID,
			"location_id":   locationID,
			"specific_date": date,
		}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetOverride", query, args)
}

// GetRecurring получает доступную еженедельную запись на день недели (0=Вс..6=Сб)
func (r *Repository) GetRecurring(ctx context.Context, resourceID, locationID int64, weekday int) (*domain.Schedule, error) {
	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{
			"resource_id":   resourceID,
			"location_id":   locationID,
			"day_of_week":   weekday,
			"specific_date": nil,
			"is_available":  true,
		}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurring - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetRecurring", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, query string, args []interface{}) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		s            domain.Schedule
		dayOfWeek    sql.NullInt64
		specificDate sql.NullString
		startTime    string
		endTime      string
	)

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ResourceID,
		&s.LocationID,
		&dayOfWeek,
		&specificDate,
		&startTime,
		&endTime,
		&s.IsAvailable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}

	if dayOfWeek.Valid {
		d := int(dayOfWeek.Int64)
		s.DayOfWeek = &d
	}
	if specificDate.Valid {
		date := specificDate.String
		s.SpecificDate = &date
	}
	s.StartTime = types.TimeString(startTime)
	s.EndTime = types.TimeString(endTime)

	return &s, nil
}
