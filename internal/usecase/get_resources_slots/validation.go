package get_resources_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest проверяет список ресурсов; остальные поля проверяет запрос на один день
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resourceId is required", ErrInvalidInput)
	}

	if len(req.ResourceIDs) > domain.MaxResourcesPerRequest {
		return fmt.Errorf("%w: at most %d resources per request", ErrInvalidInput, domain.MaxResourcesPerRequest)
	}

	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resourceId must be positive, got %d", ErrInvalidInput, id)
		}
	}

	return nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
