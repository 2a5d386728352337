package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestBooking_BlockedAddsBufferOnBothSides(t *testing.T) {
	b := &Booking{ID: 1, StartAt: at(10, 0), EndAt: at(11, 0), Status: StatusConfirmed, BufferMinutes: 10}

	blocked := b.Blocked()
	assert.Equal(t, at(9, 50), blocked.Start)
	assert.Equal(t, at(11, 10), blocked.End)
	assert.Equal(t, int64(1), blocked.BookingID)
}

func TestBlockedRange_TouchingIsNotOverlap(t *testing.T) {
	blocked := BlockedRange{Start: at(9, 50), End: at(11, 10)}

	assert.False(t, blocked.Overlaps(at(9, 30), at(9, 50)))
	assert.False(t, blocked.Overlaps(at(11, 10), at(12, 0)))
	assert.True(t, blocked.Overlaps(at(9, 30), at(9, 51)))
	assert.True(t, blocked.Overlaps(at(11, 9), at(12, 0)))
	assert.True(t, blocked.Overlaps(at(8, 0), at(13, 0)))
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPendingPayment}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("confirmed")
	assert.Error(t, err)
}

func TestSchedule_WorkingMinutes(t *testing.T) {
	s := &Schedule{StartTime: "09:00", EndTime: "18:00"}
	start, end, err := s.WorkingMinutes()
	require.NoError(t, err)
	assert.Equal(t, 540, start)
	assert.Equal(t, 1080, end)

	_, _, err = (&Schedule{StartTime: "18:00", EndTime: "09:00"}).WorkingMinutes()
	assert.Error(t, err)
}

func TestResolution_IsOpen(t *testing.T) {
	s := &Schedule{ID: 1}
	assert.True(t, Resolution{Source: SourceOverride, Schedule: s}.IsOpen())
	assert.True(t, Resolution{Source: SourceRecurring, Schedule: s}.IsOpen())
	assert.False(t, Resolution{Source: SourceClosedByOverride}.IsOpen())
	assert.False(t, Resolution{Source: SourceClosed}.IsOpen())
}

func TestPlan_Allows(t *testing.T) {
	limited := Plan{ID: "free", Limit: ptr.Ptr(10)}
	assert.True(t, limited.Allows(9))
	assert.False(t, limited.Allows(10))

	unbounded := Plan{ID: "enterprise"}
	assert.True(t, unbounded.Unbounded())
	assert.True(t, unbounded.Allows(1_000_000))
}

func TestUsageCycle_Expired(t *testing.T) {
	now := at(12, 0)
	assert.True(t, (&UsageCycle{CycleStart: now.Add(-31 * 24 * time.Hour)}).Expired(now))
	assert.True(t, (&UsageCycle{CycleStart: now.Add(-UsageCycleLength)}).Expired(now))
	assert.False(t, (&UsageCycle{CycleStart: now.Add(-29 * 24 * time.Hour)}).Expired(now))
}
