package apply_booking_transition

import (
	"context"
	"fmt"
)

// UseCase применяет смену статуса бронирования к счётчику квоты.
// Запись в журнал событий и изменение счётчика выполняются в одной транзакции,
// поэтому повторная доставка события не меняет счётчик дважды.
type UseCase struct {
	inboxRepo    InboxRepository
	quotaCounter QuotaCounter
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	inboxRepo InboxRepository,
	quotaCounter QuotaCounter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		inboxRepo:    inboxRepo,
		quotaCounter: quotaCounter,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case обработки смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyBookingTransition: event=%s, tenant=%d, booking=%d, %s -> %s",
		req.EventID, req.TenantID, req.BookingID, req.FromStatus, req.ToStatus)

	// 1. Валидация события
	t, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ApplyBookingTransition: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	resp := &Response{Outcome: OutcomeIgnored}

	// 3. Отмечаем событие и меняем счётчик в одной транзакции
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		fresh, err := uc.inboxRepo.Record(ctx, req.EventID, EventType, now)
		if err != nil {
			return fmt.Errorf("record event: %w", err)
		}
		if !fresh {
			resp.Outcome = OutcomeDuplicate
			return nil
		}

		switch delta := t.delta(); {
		case delta > 0:
			status, err := uc.quotaCounter.Increment(ctx, req.TenantID, delta)
			if err != nil {
				return fmt.Errorf("increment usage: %w", err)
			}
			resp.Outcome = OutcomeIncremented
			resp.CurrentUsage = &status.CurrentUsage
		case delta < 0:
			status, err := uc.quotaCounter.Decrement(ctx, req.TenantID, -delta)
			if err != nil {
				return fmt.Errorf("decrement usage: %w", err)
			}
			resp.Outcome = OutcomeDecremented
			resp.CurrentUsage = &status.CurrentUsage
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("ApplyBookingTransition: event=%s failed: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	switch resp.Outcome {
	case OutcomeDuplicate:
		uc.logger.Info("ApplyBookingTransition: event=%s already processed, skipping", req.EventID)
	case OutcomeIgnored:
		uc.logger.Info("ApplyBookingTransition: event=%s does not change usage", req.EventID)
	default:
		uc.logger.Info("ApplyBookingTransition: event=%s %s usage of tenant=%d to %d",
			req.EventID, resp.Outcome, req.TenantID, *resp.CurrentUsage)
	}

	return resp, nil
}
