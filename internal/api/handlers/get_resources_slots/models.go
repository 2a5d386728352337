package get_resources_slots

import (
	"sort"

	slotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getResourcesSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_resources_slots"
)

// ResourcesSlotsResponse HTTP response model
type ResourcesSlotsResponse struct {
	Success    bool             `json:"success"`
	Date       string           `json:"date"`
	LocationID int64            `json:"locationId"`
	Failed     int              `json:"failed"`
	Resources  []ResourceResult `json:"resources"`
}

// ResourceResult результат по одному ресурсу
type ResourceResult struct {
	ResourceID int64                                `json:"resourceId"`
	Result     *slotsHandler.AvailableSlotsResponse `json:"result,omitempty"`
	Error      string                               `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case, ресурсы упорядочены по id
func FromUseCaseResponse(resp *getResourcesSlots.Response) *ResourcesSlotsResponse {
	ids := make([]int64, 0, len(resp.Results))
	for id := range resp.Results {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	resources := make([]ResourceResult, 0, len(ids))
	for _, id := range ids {
		res := resp.Results[id]
		item := ResourceResult{ResourceID: id}
		if res.Err != nil {
			item.Error = slotsHandler.ErrorMessage(res.Err)
		} else {
			item.Result = slotsHandler.FromUseCaseResponse(res.Slots)
		}
		resources = append(resources, item)
	}

	return &ResourcesSlotsResponse{
		Success:    true,
		Date:       resp.Date,
		LocationID: resp.LocationID,
		Failed:     resp.Failed(),
		Resources:  resources,
	}
}
