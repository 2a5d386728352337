package get_resources_slots

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

var tracer = otel.Tracer("availability/get_resources_slots")

// UseCase параллельно считает слоты нескольких ресурсов
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

// Execute выполняет запрос по всем ресурсам. Ошибки складываются в результат по ключу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "GetResourcesSlots")
	defer span.End()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetResourcesSlots: validation failed: %v", err)
		return nil, err
	}

	resourceIDs := uniqueIDs(req.ResourceIDs)
	span.SetAttributes(attribute.Int64("location.id", req.LocationID), attribute.Int("resources.count", len(resourceIDs)))

	uc.logger.Info("GetResourcesSlots: location=%d, resources=%v, date=%s", req.LocationID, resourceIDs, req.Date)

	// 2. Запускаем запрос на каждый ресурс
	var (
		mu      sync.Mutex
		results = make(map[int64]*ResourceResult, len(resourceIDs))
		g       errgroup.Group
	)
	if uc.maxParallel > 0 {
		g.SetLimit(uc.maxParallel)
	}

	for _, resourceID := range resourceIDs {
		g.Go(func() error {
			resp, err := uc.daySlots.Execute(ctx, &get_available_slots.Request{
				TenantID:        req.TenantID,
				LocationID:      req.LocationID,
				ResourceID:      resourceID,
				Date:            req.Date,
				DurationMinutes: req.DurationMinutes,
				BufferMinutes:   req.BufferMinutes,
				IntervalMinutes: req.IntervalMinutes,
				Timezone:        req.Timezone,
				SkipQuotaCheck:  req.SkipQuotaCheck,
			})

			mu.Lock()
			results[resourceID] = &ResourceResult{Slots: resp, Err: err}
			mu.Unlock()

			// Ошибка остаётся в результате, соседние запросы продолжаются
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{
		Date:       req.Date,
		LocationID: req.LocationID,
		Results:    results,
	}

	if failed := resp.Failed(); failed > 0 {
		uc.logger.Warn("GetResourcesSlots: %d of %d resources failed for location=%d, date=%s",
			failed, len(resourceIDs), req.LocationID, req.Date)
	}

	return resp, nil
}
