package check_slot_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	locationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/location"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
)

var tracer = otel.Tracer("availability/check_slot_availability")

// UseCase проверяет один слот без перечисления всего дня
type UseCase struct {
	locationRepo LocationRepository
	resolver     ScheduleResolver
	conflicts    ConflictIndex
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	locationRepo LocationRepository,
	resolver ScheduleResolver,
	conflicts ConflictIndex,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locationRepo,
		resolver:     resolver,
		conflicts:    conflicts,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности слота.
// Слот занимает [start, start+duration+buffer) и проверяется теми же правилами, что и генератор слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "CheckSlotAvailability")
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
	)

	uc.logger.Info("CheckSlotAvailability: location=%d, resource=%d, start=%s, duration=%d, buffer=%d",
		req.LocationID, req.ResourceID, req.Start.UTC().Format(time.RFC3339), req.DurationMinutes, req.BufferMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlotAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем локацию и её часовой пояс
	tz, err := uc.loadTimezone(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Переводим момент начала в локальную дату и время
	start := req.Start.UTC()
	date, wall := tzclock.InstantToWallClock(start, tz)
	startMinute, err := wall.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert start: %v", ErrInternal, err)
	}

	resp = &Response{
		Date:         date,
		DisplayStart: wall.String(),
		Timezone:     tz.String(),
	}

	// 4. Определяем рабочие часы на дату
	resolution, err := uc.resolver.Resolve(ctx, req.ResourceID, req.LocationID, date)
	if err != nil {
		uc.logger.Error("CheckSlotAvailability: failed to resolve schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	if !resolution.IsOpen() {
		resp.Reason = ReasonClosed
		return resp, nil
	}

	workStart, workEnd, err := resolution.Schedule.WorkingMinutes()
	if err != nil {
		uc.logger.Error("CheckSlotAvailability: schedule id=%d is invalid: %v", resolution.Schedule.ID, err)
		return nil, fmt.Errorf("%w: invalid schedule: %v", ErrInternal, err)
	}

	// 5. Слот вместе с буфером должен уместиться в рабочие часы, в том числе по реальному времени
	occupied := req.DurationMinutes + req.BufferMinutes
	if startMinute < workStart || startMinute+occupied > workEnd {
		resp.Reason = ReasonOutsideWorkingHours
		return resp, nil
	}

	closeAt, err := tzclock.WallClockEndToInstant(date, workEnd, tz)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert closing time: %v", ErrInternal, err)
	}

	end := start.Add(time.Duration(occupied) * time.Minute)
	if end.After(closeAt) {
		resp.Reason = ReasonOutsideWorkingHours
		return resp, nil
	}

	// 6. Проверяем пересечение с занятыми интервалами
	blocked, err := uc.conflicts.BlockedRanges(ctx, req.ResourceID, req.LocationID, date, tz)
	if err != nil {
		uc.logger.Error("CheckSlotAvailability: failed to get blocked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked ranges: %v", ErrInternal, err)
	}

	if !slots.IsFree(start, end, blocked) {
		resp.Reason = ReasonConflict
		return resp, nil
	}

	resp.Available = true
	return resp, nil
}

// loadTimezone находит локацию, проверяет тенанта и определяет часовой пояс
func (uc *UseCase) loadTimezone(ctx context.Context, req *Request) (*time.Location, error) {
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CheckSlotAvailability: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CheckSlotAvailability: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	if req.TenantID != nil && *req.TenantID != location.TenantID {
		uc.logger.Warn("CheckSlotAvailability: location id=%d does not belong to tenant=%d", req.LocationID, *req.TenantID)
		return nil, ErrLocationNotFound
	}

	tzName := location.Timezone
	switch {
	case tzName == "" && req.Timezone == "":
		return nil, fmt.Errorf("%w: location id=%d has no timezone, pass tz", ErrInvalidInput, req.LocationID)
	case tzName == "":
		tzName = req.Timezone
	case req.Timezone != "" && req.Timezone != tzName:
		return nil, fmt.Errorf("%w: got %s, location uses %s", ErrTimezoneMismatch, req.Timezone, tzName)
	}

	tz, err := tzclock.LoadLocation(tzName)
	if err != nil {
		if location.Timezone == "" {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: invalid location timezone: %v", ErrInternal, err)
	}

	return tz, nil
}
