package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
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

	if _, err := tzclock.ParseDateKey(req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.BufferMinutes < 0 || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	// 0 - интервал по умолчанию
	if req.IntervalMinutes != 0 &&
		(req.IntervalMinutes < domain.MinIntervalMinutes || req.IntervalMinutes > domain.MaxIntervalMinutes) {
		return fmt.Errorf("%w: interval must be between %d and %d minutes",
			ErrInvalidInput, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}

	return nil
}
