package get_date_range_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
)

// validateRequest проверяет диапазон и возвращает список дат
func validateRequest(req *Request) ([]string, error) {
	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	from, err := tzclock.ParseDateKey(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}

	to, err := tzclock.ParseDateKey(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	// Ключи дат - полночь UTC, поэтому разница кратна суткам
	days := int(to.Sub(from).Hours()/24) + 1
	if days > domain.MaxDateRangeDays {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxDateRangeDays)
	}

	dates := make([]string, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(tzclock.DateLayout))
	}

	return dates, nil
}
