package get_tenant_usage

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

// UsageResponse HTTP модель использования квоты тенанта
type UsageResponse struct {
	TenantID     int64  `json:"tenantId"`
	PlanID       string `json:"planId"`
	CurrentUsage int    `json:"currentUsage"`
	Limit        *int   `json:"limit"`     // null - план без лимита
	Remaining    *int   `json:"remaining"` // null - план без лимита
	Allowed      bool   `json:"allowed"`
	CycleStart   string `json:"cycleStart"`
	CycleEnd     string `json:"cycleEnd"`
}

// FromStatus конвертирует состояние квоты в HTTP response
func FromStatus(status *quota.Status) *UsageResponse {
	return &UsageResponse{
		TenantID:     status.TenantID,
		PlanID:       status.Plan.ID,
		CurrentUsage: status.CurrentUsage,
		Limit:        status.Plan.Limit,
		Remaining:    status.Remaining(),
		Allowed:      status.Allowed(),
		CycleStart:   status.CycleStart.UTC().Format(time.RFC3339),
		CycleEnd:     status.CycleEnd.UTC().Format(time.RFC3339),
	}
}
