package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Slot represents a free time slot for a service of fixed duration.
// EndTime is the end of the service itself; the trailing buffer is not included.
type Slot struct {
	StartTime    time.Time // UTC
	EndTime      time.Time // UTC
	DisplayStart types.TimeString
	DisplayEnd   types.TimeString
}

// DurationMinutes returns the service duration of the slot
func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
