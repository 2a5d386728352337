package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const returningColumns = "RETURNING tenant_id, plan_id, current_usage, cycle_start, updated_at"

// Repository репозиторий счётчиков использования тенантов.
// Все изменения счётчика - одна атомарная SQL-команда, без read-modify-write в приложении.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория использования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущую запись без сброса цикла
func (r *Repository) Get(ctx context.Context, tenantID int64) (*domain.UsageCycle, error) {
	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"plan_id",
		"current_usage",
		"cycle_start",
		"updated_at",
	).
		From("tenant_usage").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "Get", query, args)
}

// ResetIfExpired обнуляет счётчик, если цикл начался не позже cutoff.
// Если цикл уже сброшен конкурентно, возвращает актуальную запись.
func (r *Repository) ResetIfExpired(ctx context.Context, tenantID int64, now, cutoff time.Time) (*domain.UsageCycle, error) {
	query, args, err := psqlbuilder.Update("tenant_usage").
		Set("current_usage", 0).
		Set("cycle_start", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.LtOrEq{"cycle_start": cutoff}).
		Suffix(returningColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ResetIfExpired - build update query: %v", ErrBuildQuery, err)
	}

	cycle, err := r.queryOne(ctx, "ResetIfExpired", query, args)
	if errors.Is(err, ErrUsageNotFound) {
		return r.Get(ctx, tenantID)
	}
	return cycle, err
}

// Add атомарно прибавляет delta (может быть отрицательной) к счётчику тенанта.
// Истёкший цикл сбрасывается в той же команде, результат не опускается ниже 0.
// При отсутствии записи она создаётся с планом planID.
func (r *Repository) Add(ctx context.Context, tenantID int64, planID string, delta int, now, cutoff time.Time) (*domain.UsageCycle, error) {
	query, args, err := psqlbuilder.Insert("tenant_usage").
		Columns("tenant_id", "plan_id", "current_usage", "cycle_start", "updated_at").
		Values(tenantID, planID, squirrel.Expr("GREATEST(?::int, 0)", delta), now, now).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			current_usage = GREATEST(
				CASE WHEN tenant_usage.cycle_start <= ? THEN 0 ELSE tenant_usage.current_usage END + ?::int,
				0),
			cycle_start = CASE WHEN tenant_usage.cycle_start <= ? THEN ? ELSE tenant_usage.cycle_start END,
			updated_at = ?
		`+returningColumns, cutoff, delta, cutoff, now, now).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Add - build upsert query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "Add", query, args)
}

// Recalculate пересчитывает счётчик по подтверждённым бронированиям тенанта,
// созданным после cutoff. Истёкший цикл начинается заново с now.
func (r *Repository) Recalculate(ctx context.Context, tenantID int64, planID string, now, cutoff time.Time) (*domain.UsageCycle, error) {
	confirmedCount := squirrel.Expr(`(
		SELECT COUNT(*) FROM bookings b
		JOIN locations l ON l.id = b.location_id
		WHERE l.tenant_id = ? AND b.status = ? AND b.created_at > ?
	)`, tenantID, string(domain.StatusConfirmed), cutoff)

	query, args, err := psqlbuilder.Insert("tenant_usage").
		Columns("tenant_id", "plan_id", "current_usage", "cycle_start", "updated_at").
		Values(tenantID, planID, confirmedCount, now, now).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			current_usage = EXCLUDED.current_usage,
			cycle_start = CASE WHEN tenant_usage.cycle_start <= ? THEN ? ELSE tenant_usage.cycle_start END,
			updated_at = ?
		`+returningColumns, cutoff, now, now).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Recalculate - build upsert query: %v", ErrBuildQuery, err)
	}

	return r.queryOne(ctx, "Recalculate", query, args)
}

func (r *Repository) queryOne(ctx context.Context, op string, query string, args []interface{}) (*domain.UsageCycle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		cycle     domain.UsageCycle
		updatedAt sql.NullTime
	)
	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&cycle.TenantID,
		&cycle.PlanID,
		&cycle.CurrentUsage,
		&cycle.CycleStart,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUsageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	cycle.CycleStart = cycle.CycleStart.UTC()
	cycle.UpdatedAt = updatedAt.Time

	return &cycle, nil
}
