package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Schedule is a working-hours record of a resource at a location.
// Exactly one of DayOfWeek (recurring) and SpecificDate (override) is set.
type Schedule struct {
	ID           int64
	ResourceID   int64
	LocationID   int64
	DayOfWeek    *int    // 0=Sunday..6=Saturday
	SpecificDate *string // YYYY-MM-DD
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsAvailable  bool
}

// IsOverride returns true for a date-specific record
func (s *Schedule) IsOverride() bool {
	return s.SpecificDate != nil
}

// WorkingMinutes returns [start, end) as minutes of day
func (s *Schedule) WorkingMinutes() (int, int, error) {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("schedule id=%d: start time: %w", s.ID, err)
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("schedule id=%d: end time: %w", s.ID, err)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("schedule id=%d: start %s is not before end %s", s.ID, s.StartTime, s.EndTime)
	}
	return start, end, nil
}

// ScheduleSource tells which rule decided the working hours of a date
type ScheduleSource string

const (
	SourceOverride         ScheduleSource = "override"
	SourceRecurring        ScheduleSource = "recurring"
	SourceClosedByOverride ScheduleSource = "closed_by_override"
	SourceClosed           ScheduleSource = "closed"
)

// Resolution is the outcome of schedule lookup for one date.
// Schedule is set only when the resource is open.
type Resolution struct {
	Source   ScheduleSource
	Schedule *Schedule
}

// IsOpen returns true if the resource works on the date
func (r Resolution) IsOpen() bool {
	return r.Schedule != nil && (r.Source == SourceOverride || r.Source == SourceRecurring)
}
