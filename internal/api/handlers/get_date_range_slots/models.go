package get_date_range_slots

import (
	"sort"

	slotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getDateRangeSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_date_range_slots"
)

// DateRangeSlotsResponse HTTP response model
type DateRangeSlotsResponse struct {
	Success    bool         `json:"success"`
	LocationID int64        `json:"locationId"`
	ResourceID int64        `json:"resourceId"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Failed     int          `json:"failed"`
	Days       []DateResult `json:"days"`
}

// DateResult результат по одной дате
type DateResult struct {
	Date   string                               `json:"date"`
	Result *slotsHandler.AvailableSlotsResponse `json:"result,omitempty"`
	Error  string                               `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case, даты по возрастанию
func FromUseCaseResponse(resp *getDateRangeSlots.Response) *DateRangeSlotsResponse {
	dates := make([]string, 0, len(resp.Results))
	for date := range resp.Results {
		dates = append(dates, date)
	}
	// YYYY-MM-DD сортируется лексикографически
	sort.Strings(dates)

	days := make([]DateResult, 0, len(dates))
	for _, date := range dates {
		res := resp.Results[date]
		item := DateResult{Date: date}
		if res.Err != nil {
			item.Error = slotsHandler.ErrorMessage(res.Err)
		} else {
			item.Result = slotsHandler.FromUseCaseResponse(res.Slots)
		}
		days = append(days, item)
	}

	return &DateRangeSlotsResponse{
		Success:    true,
		LocationID: resp.LocationID,
		ResourceID: resp.ResourceID,
		From:       resp.From,
		To:         resp.To,
		Failed:     resp.Failed(),
		Days:       days,
	}
}
