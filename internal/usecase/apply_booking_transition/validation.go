package apply_booking_transition

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует событие и разбирает статусы
func validateRequest(req *Request) (transition, error) {
	if req.EventID == "" {
		return transition{}, fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}

	if req.TenantID <= 0 {
		return transition{}, fmt.Errorf("%w: tenantId must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return transition{}, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	to, err := domain.ParseBookingStatus(req.ToStatus)
	if err != nil {
		return transition{}, fmt.Errorf("%w: toStatus: %v", ErrInvalidInput, err)
	}

	t := transition{to: to}
	if req.FromStatus != "" {
		from, err := domain.ParseBookingStatus(req.FromStatus)
		if err != nil {
			return transition{}, fmt.Errorf("%w: fromStatus: %v", ErrInvalidInput, err)
		}
		t.from = &from
	}

	return t, nil
}
