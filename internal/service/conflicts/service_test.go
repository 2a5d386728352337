package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetActiveOverlapping(ctx context.Context, resourceID, locationID int64, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, resourceID, locationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func utc(day, h, m int) time.Time {
	return time.Date(2026, 3, day, h, m, 0, 0, time.UTC)
}

func TestBlockedRanges_QueriesLocalDayAndPadsBuffers(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-03-02 в Токио = [2026-03-01 15:00Z, 2026-03-02 15:00Z), окно расширено на максимальный буфер
	from, to := utc(1, 11, 0), utc(2, 19, 0)

	bookings := []*domain.Booking{
		{ID: 1, StartAt: utc(2, 1, 0), EndAt: utc(2, 2, 0), Status: domain.StatusConfirmed, BufferMinutes: 10},
		{ID: 2, StartAt: utc(2, 5, 0), EndAt: utc(2, 5, 30), Status: domain.StatusPendingPayment},
		// Накрывает весь день
		{ID: 3, StartAt: utc(1, 0, 0), EndAt: utc(3, 0, 0), Status: domain.StatusConfirmed, BufferMinutes: 5},
	}
	repo := new(MockBookingRepository)
	repo.On("GetActiveOverlapping", mock.Anything, int64(11), int64(7), from, to).Return(bookings, nil)

	blocked, err := NewService(repo, nopLogger{}).BlockedRanges(context.Background(), 11, 7, "2026-03-02", tokyo)

	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.BlockedRange{
		{BookingID: 1, Start: utc(2, 0, 50), End: utc(2, 2, 10)},
		{BookingID: 2, Start: utc(2, 5, 0), End: utc(2, 5, 30)},
		{BookingID: 3, Start: time.Date(2026, 2, 28, 23, 55, 0, 0, time.UTC), End: utc(3, 0, 5)},
	}, blocked)
	repo.AssertExpectations(t)
}

func TestBlockedRanges_NextDayBookingBufferReachesIntoDay(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetActiveOverlapping", mock.Anything, int64(11), int64(7), utc(1, 20, 0), utc(3, 4, 0)).Return([]*domain.Booking{
		// 00:10 следующего дня с буфером 30 минут занимает с 23:40
		{ID: 1, StartAt: utc(3, 0, 10), EndAt: utc(3, 1, 0), Status: domain.StatusConfirmed, BufferMinutes: 30},
		// Буфер 10 минут до 00:10 не достаёт
		{ID: 2, StartAt: utc(3, 0, 10), EndAt: utc(3, 1, 0), Status: domain.StatusConfirmed, BufferMinutes: 10},
	}, nil)

	blocked, err := NewService(repo, nopLogger{}).BlockedRanges(context.Background(), 11, 7, "2026-03-02", time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []domain.BlockedRange{
		{BookingID: 1, Start: utc(2, 23, 40), End: utc(3, 1, 30)},
	}, blocked)
	repo.AssertExpectations(t)
}

func TestBlockedRanges_CancelledNeverBlocks(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 1, StartAt: utc(2, 10, 0), EndAt: utc(2, 11, 0), Status: domain.StatusCancelled, BufferMinutes: 10},
	}, nil)

	blocked, err := NewService(repo, nopLogger{}).BlockedRanges(context.Background(), 11, 7, "2026-03-02", time.UTC)

	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestBlockedRanges_StorageError(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetActiveOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := NewService(repo, nopLogger{}).BlockedRanges(context.Background(), 11, 7, "2026-03-02", time.UTC)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestBlockedRanges_InvalidDate(t *testing.T) {
	_, err := NewService(new(MockBookingRepository), nopLogger{}).BlockedRanges(context.Background(), 11, 7, "tomorrow", time.UTC)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
