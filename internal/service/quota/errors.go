package quota

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrQuotaExceeded возвращается, когда тенант исчерпал лимит плана в текущем цикле
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrInvalidPlans возвращается при некорректной таблице планов
	ErrInvalidPlans = errors.New("invalid plan table")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// QuotaExceededError несёт данные для предложения перейти на другой план
type QuotaExceededError struct {
	TenantID     int64
	PlanID       string
	CurrentUsage int
	Limit        int
	CycleEnd     time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: tenant=%d plan=%s usage=%d limit=%d", ErrQuotaExceeded, e.TenantID, e.PlanID, e.CurrentUsage, e.Limit)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}
