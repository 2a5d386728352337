// Package slots перечисляет свободные слоты рабочего дня. Чистые функции: нет ни БД, ни текущего времени.
package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Params параметры генерации слотов на один день
type Params struct {
	Date     string         // YYYY-MM-DD в часовом поясе Location
	Location *time.Location // часовой пояс локации

	WorkStart int // минута суток начала работы
	WorkEnd   int // минута суток окончания работы (не включительно)

	DurationMinutes int
	BufferMinutes   int
	IntervalMinutes int // шаг между началами слотов, 0 - domain.DefaultSlotIntervalMinutes

	Blocked []domain.BlockedRange
}

// Generate возвращает свободные слоты по возрастанию начала.
//
// Кандидаты: WorkStart + k*Interval, пока start + Duration + Buffer <= WorkEnd.
// Кандидат занимает [start, start+Duration+Buffer) и свободен, если не пересекается
// ни с одним занятым интервалом (касание границ пересечением не считается).
// Время кандидата, не существующее в часовом поясе (переход на летнее время), пропускается.
// Реальный конец кандидата не может быть позже момента закрытия: в день перехода
// на летнее время настенные минуты и прошедшее время расходятся.
func Generate(p Params) ([]domain.Slot, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	interval := p.IntervalMinutes
	if interval == 0 {
		interval = domain.DefaultSlotIntervalMinutes
	}

	closeAt, err := tzclock.WallClockEndToInstant(p.Date, p.WorkEnd, p.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	span := p.DurationMinutes + p.BufferMinutes
	result := make([]domain.Slot, 0)

	for start := p.WorkStart; start+span <= p.WorkEnd; start += interval {
		candidateStart, err := tzclock.WallClockMinutesToInstant(p.Date, start, p.Location)
		if errors.Is(err, tzclock.ErrNonexistentWallClock) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		serviceEnd := candidateStart.Add(time.Duration(p.DurationMinutes) * time.Minute)
		blockEnd := serviceEnd.Add(time.Duration(p.BufferMinutes) * time.Minute)
		if blockEnd.After(closeAt) {
			continue
		}

		if !IsFree(candidateStart, blockEnd, p.Blocked) {
			continue
		}

		result = append(result, domain.Slot{
			StartTime:    candidateStart,
			EndTime:      serviceEnd,
			DisplayStart: types.NewTimeString(candidateStart.In(p.Location)),
			DisplayEnd:   types.NewTimeString(serviceEnd.In(p.Location)),
		})
	}

	return result, nil
}

// IsFree true, если [start, end) не пересекается ни с одним занятым интервалом
func IsFree(start, end time.Time, blocked []domain.BlockedRange) bool {
	for _, b := range blocked {
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

func (p Params) validate() error {
	if p.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if p.WorkStart < 0 || p.WorkEnd > types.MinutesPerDay || p.WorkStart >= p.WorkEnd {
		return fmt.Errorf("%w: working hours [%d, %d)", ErrInvalidInput, p.WorkStart, p.WorkEnd)
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if p.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidInput)
	}
	if p.IntervalMinutes < 0 {
		return fmt.Errorf("%w: interval must not be negative", ErrInvalidInput)
	}
	return nil
}
