package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований (только чтение, записи делает checkout)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveOverlapping возвращает активные бронирования ресурса на локации,
// у которых [start_at, end_at) пересекается с [from, to).
// Покрывает бронирования, начинающиеся внутри, заканчивающиеся внутри и накрывающие весь интервал.
// Буфер берётся из услуги бронирования, без услуги - 0.
func (r *Repository) GetActiveOverlapping(ctx context.Context, resourceID, locationID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.resource_id",
		"b.location_id",
		"b.service_id",
		"b.start_at",
		"b.end_at",
		"b.status",
		"COALESCE(s.buffer_minutes, 0)",
		"b.created_at",
	).
		From("bookings b").
		LeftJoin("services s ON s.id = b.service_id").
		Where(squirrel.Eq{
			"b.resource_id": resourceID,
			"b.location_id": locationID,
			"b.status":      activeStatuses,
		}).
		Where(squirrel.Lt{"b.start_at": to.UTC()}).
		Where(squirrel.Gt{"b.end_at": from.UTC()}).
		OrderBy("b.start_at ASC", "b.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking   domain.Booking
			serviceID sql.NullInt64
			status    string
			createdAt sql.NullTime
		)

		err := rows.Scan(
			&booking.ID,
			&booking.ResourceID,
			&booking.LocationID,
			&serviceID,
			&booking.StartAt,
			&booking.EndAt,
			&status,
			&booking.BufferMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if serviceID.Valid {
			id := serviceID.Int64
			booking.ServiceID = &id
		}
		booking.Status = domain.BookingStatus(status)
		booking.StartAt = booking.StartAt.UTC()
		booking.EndAt = booking.EndAt.UTC()
		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
