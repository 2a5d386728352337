package check_slot_availability

import (
	checkSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	Success      bool   `json:"success"`
	Available    bool   `json:"available"`
	Reason       string `json:"reason,omitempty"`
	Date         string `json:"date"`
	DisplayStart string `json:"displayStart"`
	Timezone     string `json:"timezone"`
}

func FromUseCaseResponse(resp *checkSlot.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		Success:      true,
		Available:    resp.Available,
		Reason:       string(resp.Reason),
		Date:         resp.Date,
		DisplayStart: resp.DisplayStart,
		Timezone:     resp.Timezone,
	}
}
