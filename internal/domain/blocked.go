package domain

import "time"

// BlockedRange is an occupied, buffer-padded half-open interval [Start, End)
type BlockedRange struct {
	BookingID int64
	Start     time.Time
	End       time.Time
}

// Overlaps reports whether [start, end) intersects the range.
// Touching endpoints do not overlap.
func (b BlockedRange) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
