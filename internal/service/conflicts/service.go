package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzclock"
)

// Service строит занятые интервалы ресурса по существующим бронированиям
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфликтов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// BlockedRanges возвращает занятые интервалы [startAt-buffer, endAt+buffer), пересекающие
// сутки date в часовом поясе loc. Окно запроса расширено на максимальный буфер: бронь
// в 00:10 следующего дня с буфером 30 минут занимает конец текущих суток.
// Порядок не гарантируется, интервалы не сливаются.
func (s *Service) BlockedRanges(ctx context.Context, resourceID, locationID int64, date string, loc *time.Location) ([]domain.BlockedRange, error) {
	dayStart, dayEnd, err := tzclock.DayBounds(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pad := time.Duration(domain.MaxBufferMinutes) * time.Minute
	bookings, err := s.bookingRepo.GetActiveOverlapping(ctx, resourceID, locationID, dayStart.Add(-pad), dayEnd.Add(pad))
	if err != nil {
		s.logger.Error("BlockedRanges: failed to get bookings: resource=%d location=%d date=%s: %v",
			resourceID, locationID, date, err)
		return nil, fmt.Errorf("%w: BlockedRanges - get bookings: %v", ErrInternal, err)
	}

	blocked := make([]domain.BlockedRange, 0, len(bookings))
	for _, b := range bookings {
		// Хранилище уже фильтрует по статусу; отменённые не должны блокировать время ни при каких условиях
		if !b.IsActive() {
			s.logger.Warn("BlockedRanges: skipping inactive booking id=%d status=%s", b.ID, b.Status)
			continue
		}
		r := b.Blocked()
		if !r.Overlaps(dayStart, dayEnd) {
			continue
		}
		blocked = append(blocked, r)
	}

	return blocked, nil
}
