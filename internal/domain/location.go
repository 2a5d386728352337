package domain

import "time"

// Location is a physical place where resources are booked.
// All wall-clock values of its schedules are interpreted in Timezone.
type Location struct {
	ID        int64
	TenantID  int64
	Name      string
	Timezone  string // IANA name, e.g. "Asia/Tokyo"
	CreatedAt time.Time
	UpdatedAt time.Time
}
