package get_date_range_slots

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

var tracer = otel.Tracer("availability/get_date_range_slots")

// UseCase параллельно считает слоты ресурса на каждую дату диапазона
type UseCase struct {
	daySlots    DaySlotsQuery
	maxParallel int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. maxParallel <= 0 - без ограничения.
func NewUseCase(daySlots DaySlotsQuery, maxParallel int, logger Logger) *UseCase {
	return &UseCase{
		daySlots:    daySlots,
		maxParallel: maxParallel,
		logger:      logger,
	}
}

// Execute выполняет запрос по всем датам. Ошибки складываются в результат по ключу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "GetDateRangeSlots")
	defer span.End()

	// 1. Валидация диапазона
	dates, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDateRangeSlots: validation failed: %v", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("resource.id", req.ResourceID), attribute.Int("dates.count", len(dates)))

	uc.logger.Info("GetDateRangeSlots: location=%d, resource=%d, range=%s..%s (%d days)",
		req.LocationID, req.ResourceID, req.From, req.To, len(dates))

	// 2. Запускаем запрос на каждую дату
	var (
		mu      sync.Mutex
		results = make(map[string]*DateResult, len(dates))
		g       errgroup.Group
	)
	if uc.maxParallel > 0 {
		g.SetLimit(uc.maxParallel)
	}

	for _, date := range dates {
		g.Go(func() error {
			resp, err := uc.daySlots.Execute(ctx, &get_available_slots.Request{
				TenantID:        req.TenantID,
				LocationID:      req.LocationID,
				ResourceID:      req.ResourceID,
				Date:            date,
				DurationMinutes: req.DurationMinutes,
				BufferMinutes:   req.BufferMinutes,
				IntervalMinutes: req.IntervalMinutes,
				Timezone:        req.Timezone,
				SkipQuotaCheck:  req.SkipQuotaCheck,
			})

			mu.Lock()
			results[date] = &DateResult{Slots: resp, Err: err}
			mu.Unlock()

			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{
		LocationID: req.LocationID,
		ResourceID: req.ResourceID,
		From:       req.From,
		To:         req.To,
		Results:    results,
	}

	if failed := resp.Failed(); failed > 0 {
		uc.logger.Warn("GetDateRangeSlots: %d of %d dates failed for resource=%d", failed, len(dates), req.ResourceID)
	}

	return resp, nil
}
