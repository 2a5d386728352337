package check_slot_availability

import "time"

// Reason причина недоступности слота
type Reason string

const (
	ReasonClosed              Reason = "closed"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonConflict            Reason = "conflict"
)

// Request модель запроса проверки одного слота
type Request struct {
	TenantID        *int64
	LocationID      int64
	ResourceID      int64
	Start           time.Time // момент начала слота
	DurationMinutes int
	BufferMinutes   int
	Timezone        string
}

// Response модель ответа. Reason пустой, если слот доступен.
type Response struct {
	Available    bool
	Reason       Reason
	Date         string // дата слота в часовом поясе локации
	DisplayStart string
	Timezone     string
}
