package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

const msgQuotaLimitReached = "достигнут лимит тарифного плана"

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Success           bool                  `json:"success"`
	Date              string                `json:"date"`
	LocationID        int64                 `json:"locationId"`
	ResourceID        int64                 `json:"resourceId"`
	Timezone          string                `json:"timezone"`
	Closed            bool                  `json:"closed"`
	ScheduleSource    domain.ScheduleSource `json:"scheduleSource,omitempty"`
	QuotaLimitReached bool                  `json:"quotaLimitReached"`
	Quota             *QuotaInfo            `json:"quota,omitempty"`
	Slots             []AvailableSlot       `json:"slots"`
	Error             string                `json:"error,omitempty"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime    string `json:"startTime"` // RFC3339, UTC
	EndTime      string `json:"endTime"`
	DisplayStart string `json:"displayStart"` // HH:MM в часовом поясе локации
	DisplayEnd   string `json:"displayEnd"`
}

// QuotaInfo данные квоты тенанта
type QuotaInfo struct {
	PlanID       string `json:"planId"`
	CurrentUsage int    `json:"currentUsage"`
	Limit        *int   `json:"limit"` // null - без лимита
	CycleEnd     string `json:"cycleEnd"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:    slot.StartTime.UTC().Format(time.RFC3339),
			EndTime:      slot.EndTime.UTC().Format(time.RFC3339),
			DisplayStart: slot.DisplayStart.String(),
			DisplayEnd:   slot.DisplayEnd.String(),
		}
	}

	result := &AvailableSlotsResponse{
		Success:           !resp.QuotaLimitReached,
		Date:              resp.Date,
		LocationID:        resp.LocationID,
		ResourceID:        resp.ResourceID,
		Timezone:          resp.Timezone,
		Closed:            resp.Closed,
		ScheduleSource:    resp.ScheduleSource,
		QuotaLimitReached: resp.QuotaLimitReached,
		Slots:             slots,
	}

	if resp.Quota != nil {
		result.Quota = &QuotaInfo{
			PlanID:       resp.Quota.PlanID,
			CurrentUsage: resp.Quota.CurrentUsage,
			Limit:        resp.Quota.Limit,
			CycleEnd:     resp.Quota.CycleEnd.UTC().Format(time.RFC3339),
		}
	}

	if resp.QuotaLimitReached {
		result.Error = msgQuotaLimitReached
	}

	return result
}

// SlotParams общие query параметры запросов слотов
type SlotParams struct {
	DurationMinutes int
	BufferMinutes   int
	IntervalMinutes int
	Timezone        string
}
