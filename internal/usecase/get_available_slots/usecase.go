package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	locationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/location"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
)

var tracer = otel.Tracer("availability/get_available_slots")

// UseCase use case для получения свободных слотов ресурса на день
type UseCase struct {
	locationRepo LocationRepository
	quotaGuard   QuotaGuard
	resolver     ScheduleResolver
	conflicts    ConflictIndex
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	quotaGuard QuotaGuard,
	resolver ScheduleResolver,
	conflicts ConflictIndex,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		quotaGuard:   quotaGuard,
		resolver:     resolver,
		conflicts:    conflicts,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "GetAvailableSlots")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.Int64("location.id", req.LocationID),
		attribute.Int64("resource.id", req.ResourceID),
		attribute.String("date", req.Date),
	)

	uc.logger.Info("GetAvailableSlots: location=%d, resource=%d, date=%s, duration=%d, buffer=%d, interval=%d",
		req.LocationID, req.ResourceID, req.Date, req.DurationMinutes, req.BufferMinutes, req.IntervalMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем локацию и её часовой пояс
	location, tz, err := uc.loadLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	resp = &Response{
		Date:       req.Date,
		LocationID: req.LocationID,
		ResourceID: req.ResourceID,
		Timezone:   tz.String(),
		Slots:      []domain.Slot{},
	}

	// 3. Проверяем квоту тенанта
	if !req.SkipQuotaCheck {
		status, err := uc.quotaGuard.CheckQuota(ctx, location.TenantID)
		var exceeded *quota.QuotaExceededError
		switch {
		case errors.As(err, &exceeded):
			uc.logger.Warn("GetAvailableSlots: tenant=%d quota reached (plan=%s, usage=%d, limit=%d)",
				exceeded.TenantID, exceeded.PlanID, exceeded.CurrentUsage, exceeded.Limit)
			uc.metrics.IncQuotaRejected(exceeded.PlanID)
			resp.QuotaLimitReached = true
			resp.Quota = &QuotaInfo{
				PlanID:       exceeded.PlanID,
				CurrentUsage: exceeded.CurrentUsage,
				Limit:        &exceeded.Limit,
				CycleEnd:     exceeded.CycleEnd,
			}
			return resp, nil
		case err != nil:
			uc.logger.Error("GetAvailableSlots: failed to check quota for tenant=%d: %v", location.TenantID, err)
			return nil, fmt.Errorf("%w: failed to check quota: %v", ErrInternal, err)
		}
		resp.Quota = &QuotaInfo{
			PlanID:       status.Plan.ID,
			CurrentUsage: status.CurrentUsage,
			Limit:        status.Plan.Limit,
			CycleEnd:     status.CycleEnd,
		}
	}

	// 4. Определяем рабочие часы на дату
	resolution, err := uc.resolver.Resolve(ctx, req.ResourceID, req.LocationID, req.Date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}
	resp.ScheduleSource = resolution.Source

	if !resolution.IsOpen() {
		uc.logger.Info("GetAvailableSlots: resource=%d is closed on %s (%s)", req.ResourceID, req.Date, resolution.Source)
		resp.Closed = true
		return resp, nil
	}

	workStart, workEnd, err := resolution.Schedule.WorkingMinutes()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: schedule id=%d is invalid: %v", resolution.Schedule.ID, err)
		return nil, fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
	}

	// 5. Получаем занятые интервалы
	blocked, err := uc.conflicts.BlockedRanges(ctx, req.ResourceID, req.LocationID, req.Date, tz)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	generated, err := slots.Generate(slots.Params{
		Date:            req.Date,
		Location:        tz,
		WorkStart:       workStart,
		WorkEnd:         workEnd,
		DurationMinutes: req.DurationMinutes,
		BufferMinutes:   req.BufferMinutes,
		IntervalMinutes: req.IntervalMinutes,
		Blocked:         blocked,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.metrics.ObserveSlotsGenerated(len(generated))
	span.SetAttributes(attribute.Int("slots.count", len(generated)), attribute.Int("blocked.count", len(blocked)))

	uc.logger.Info("GetAvailableSlots: generated %d slots for location=%d, resource=%d, date=%s (blocked=%d)",
		len(generated), req.LocationID, req.ResourceID, req.Date, len(blocked))

	resp.Slots = generated
	return resp, nil
}

// loadLocation находит локацию, проверяет тенанта и определяет часовой пояс
func (uc *UseCase) loadLocation(ctx context.Context, req *Request) (*domain.Location, *time.Location, error) {
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailableSlots: location id=%d not found", req.LocationID)
			return nil, nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get location id=%d: %v", req.LocationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// Чужая локация неотличима от несуществующей
	if req.TenantID != nil && *req.TenantID != location.TenantID {
		uc.logger.Warn("GetAvailableSlots: location id=%d does not belong to tenant=%d", req.LocationID, *req.TenantID)
		return nil, nil, ErrLocationNotFound
	}

	tzName := location.Timezone
	switch {
	case tzName == "" && req.Timezone == "":
		return nil, nil, fmt.Errorf("%w: location id=%d has no timezone, pass tz", ErrInvalidInput, req.LocationID)
	case tzName == "":
		tzName = req.Timezone
	case req.Timezone != "" && req.Timezone != tzName:
		uc.logger.Warn("GetAvailableSlots: tz=%s does not match location tz=%s", req.Timezone, tzName)
		return nil, nil, fmt.Errorf("%w: got %s, location uses %s", ErrTimezoneMismatch, req.Timezone, tzName)
	}

	tz, err := tzclock.LoadLocation(tzName)
	if err != nil {
		if location.Timezone == "" {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: location id=%d has invalid timezone %q: %v", location.ID, tzName, err)
		return nil, nil, fmt.Errorf("%w: invalid location timezone: %v", ErrInternal, err)
	}

	return location, tz, nil
}
