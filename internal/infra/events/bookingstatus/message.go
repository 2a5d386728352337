package bookingstatus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/apply_booking_transition"
)

// Message тело события booking.status_changed
type Message struct {
	EventID    string `json:"eventId"`
	TenantID   int64  `json:"tenantId"`
	BookingID  int64  `json:"bookingId"`
	FromStatus string `json:"fromStatus,omitempty"`
	ToStatus   string `json:"toStatus"`
}

// Decode разбирает сообщение Kafka. Если eventId нет в теле, берётся заголовок event_id, затем ключ сообщения.
func Decode(msg kafka.Message) (*apply_booking_transition.Request, error) {
	var m Message
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	eventID := m.EventID
	if eventID == "" {
		eventID = headerValue(msg.Headers, "event_id")
	}
	if eventID == "" {
		eventID = string(msg.Key)
	}
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is missing", ErrInvalidMessage)
	}

	return &apply_booking_transition.Request{
		EventID:    eventID,
		TenantID:   m.TenantID,
		BookingID:  m.BookingID,
		FromStatus: m.FromStatus,
		ToStatus:   m.ToStatus,
	}, nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
