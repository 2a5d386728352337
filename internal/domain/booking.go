package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusConfirmed      BookingStatus = "CONFIRMED"
	StatusCancelled      BookingStatus = "CANCELLED"
)

// ActiveStatuses статусы, которые занимают время ресурса
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// Booking is a reservation of a resource at a location.
// Bookings are written by the checkout flow; this service only reads them.
type Booking struct {
	ID            int64
	ResourceID    int64
	LocationID    int64
	ServiceID     *int64
	StartAt       time.Time // UTC
	EndAt         time.Time // UTC
	Status        BookingStatus
	BufferMinutes int // buffer of the booked service, 0 if none
	CreatedAt     time.Time
}

// IsActive returns true if the booking occupies time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// Blocked returns the buffer-padded interval [StartAt-buffer, EndAt+buffer)
func (b *Booking) Blocked() BlockedRange {
	buffer := time.Duration(b.BufferMinutes) * time.Minute
	return BlockedRange{
		BookingID: b.ID,
		Start:     b.StartAt.Add(-buffer),
		End:       b.EndAt.Add(buffer),
	}
}
