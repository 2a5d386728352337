package check_slot_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.TenantID != nil && *req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	// Слоты начинаются на границе минуты
	if !req.Start.Truncate(time.Minute).Equal(req.Start) {
		return fmt.Errorf("%w: start must be aligned to a whole minute", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.BufferMinutes < 0 || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	return nil
}
