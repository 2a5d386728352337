package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	usageRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/usage"
)

// Status состояние квоты тенанта после ленивого сброса цикла
type Status struct {
	TenantID     int64
	Plan         domain.Plan
	CurrentUsage int
	CycleStart   time.Time
	CycleEnd     time.Time
}

// Allowed true, если тенант может получить ещё одно использование
func (s *Status) Allowed() bool {
	return s.Plan.Allows(s.CurrentUsage)
}

// Remaining остаток в цикле, nil - без лимита
func (s *Status) Remaining() *int {
	if s.Plan.Unbounded() {
		return nil
	}
	remaining := *s.Plan.Limit - s.CurrentUsage
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// Service учёт использования тенантов в скользящем 30-дневном цикле.
// Цикл сбрасывается лениво при чтении, фоновых таймеров нет.
type Service struct {
	usageRepo    UsageRepository
	plans        Plans
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса квот
func NewService(usageRepo UsageRepository, plans Plans, logger Logger) *Service {
	return &Service{
		usageRepo:    usageRepo,
		plans:        plans,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetUsage возвращает текущее использование, сбрасывая истёкший цикл
func (s *Service) GetUsage(ctx context.Context, tenantID int64) (*Status, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	cycle, err := s.usageRepo.Get(ctx, tenantID)
	switch {
	case errors.Is(err, usageRepo.ErrUsageNotFound):
		// Записи нет - тенант ещё ничего не использовал
		cycle = &domain.UsageCycle{
			TenantID:   tenantID,
			PlanID:     s.plans.Default().ID,
			CycleStart: now,
		}
	case err != nil:
		s.logger.Error("GetUsage: failed to get usage for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetUsage - get usage: %v", ErrInternal, err)
	case cycle.Expired(now):
		s.logger.Info("GetUsage: cycle expired for tenant=%d (started %s), resetting",
			tenantID, cycle.CycleStart.Format(time.RFC3339))
		cycle, err = s.usageRepo.ResetIfExpired(ctx, tenantID, now, cutoff(now))
		if err != nil {
			s.logger.Error("GetUsage: failed to reset cycle for tenant=%d: %v", tenantID, err)
			return nil, fmt.Errorf("%w: GetUsage - reset cycle: %v", ErrInternal, err)
		}
	}

	return s.toStatus(cycle), nil
}

// CheckQuota возвращает *QuotaExceededError (errors.Is(err, ErrQuotaExceeded)), если лимит исчерпан.
// Status возвращается в обоих случаях.
func (s *Service) CheckQuota(ctx context.Context, tenantID int64) (*Status, error) {
	status, err := s.GetUsage(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !status.Allowed() {
		s.logger.Warn("CheckQuota: tenant=%d reached limit of plan=%s: usage=%d limit=%d",
			tenantID, status.Plan.ID, status.CurrentUsage, *status.Plan.Limit)
		return status, &QuotaExceededError{
			TenantID:     tenantID,
			PlanID:       status.Plan.ID,
			CurrentUsage: status.CurrentUsage,
			Limit:        *status.Plan.Limit,
			CycleEnd:     status.CycleEnd,
		}
	}

	return status, nil
}

// Increment увеличивает счётчик на n
func (s *Service) Increment(ctx context.Context, tenantID int64, n int) (*Status, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: increment must be positive", ErrInvalidInput)
	}
	return s.add(ctx, "Increment", tenantID, n)
}

// Decrement уменьшает счётчик на n, не опуская ниже 0
func (s *Service) Decrement(ctx context.Context, tenantID int64, n int) (*Status, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: decrement must be positive", ErrInvalidInput)
	}
	return s.add(ctx, "Decrement", tenantID, -n)
}

// Recalculate восстанавливает счётчик по подтверждённым бронированиям за последние 30 дней
func (s *Service) Recalculate(ctx context.Context, tenantID int64) (*Status, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	cycle, err := s.usageRepo.Recalculate(ctx, tenantID, s.plans.Default().ID, now, cutoff(now))
	if err != nil {
		s.logger.Error("Recalculate: failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Recalculate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Recalculate: tenant=%d usage=%d", tenantID, cycle.CurrentUsage)
	return s.toStatus(cycle), nil
}

func (s *Service) add(ctx context.Context, op string, tenantID int64, delta int) (*Status, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	cycle, err := s.usageRepo.Add(ctx, tenantID, s.plans.Default().ID, delta, now, cutoff(now))
	if err != nil {
		s.logger.Error("%s: failed for tenant=%d delta=%d: %v", op, tenantID, delta, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: tenant=%d delta=%d usage=%d", op, tenantID, delta, cycle.CurrentUsage)
	return s.toStatus(cycle), nil
}

func (s *Service) toStatus(cycle *domain.UsageCycle) *Status {
	plan, ok := s.plans.Lookup(cycle.PlanID)
	if !ok {
		s.logger.Warn("quota: tenant=%d has unknown plan=%q, applying default plan", cycle.TenantID, cycle.PlanID)
		plan = s.plans.Default()
	}

	return &Status{
		TenantID:     cycle.TenantID,
		Plan:         plan,
		CurrentUsage: cycle.CurrentUsage,
		CycleStart:   cycle.CycleStart,
		CycleEnd:     cycle.CycleEnd(),
	}
}

// cutoff циклы, начавшиеся не позже этого момента, истекли
func cutoff(now time.Time) time.Time {
	return now.Add(-domain.UsageCycleLength)
}
