package apply_booking_transition

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// EventType тип события в журнале обработанных
const EventType = "booking.status_changed"

// Outcome результат обработки события
type Outcome string

const (
	OutcomeIncremented Outcome = "incremented"
	OutcomeDecremented Outcome = "decremented"
	OutcomeIgnored     Outcome = "ignored"
	OutcomeDuplicate   Outcome = "duplicate"
)

// Request смена статуса бронирования. FromStatus пустой для нового бронирования.
type Request struct {
	EventID    string
	TenantID   int64
	BookingID  int64
	FromStatus string
	ToStatus   string
}

// Response модель ответа
type Response struct {
	Outcome      Outcome
	CurrentUsage *int // nil, если счётчик не менялся
}

// transition разобранные статусы события
type transition struct {
	from *domain.BookingStatus
	to   domain.BookingStatus
}

// delta изменение счётчика: использование считается по подтверждённым бронированиям
func (t transition) delta() int {
	wasConfirmed := t.from != nil && *t.from == domain.StatusConfirmed
	isConfirmed := t.to == domain.StatusConfirmed

	switch {
	case !wasConfirmed && isConfirmed:
		return 1
	case wasConfirmed && !isConfirmed:
		return -1
	default:
		return 0
	}
}
