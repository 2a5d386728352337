package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetOverride(ctx context.Context, resourceID, locationID int64, date string) (*domain.Schedule, error) {
	args := m.Called(ctx, resourceID, locationID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetRecurring(ctx context.Context, resourceID, locationID int64, weekday int) (*domain.Schedule, error) {
	args := m.Called(ctx, resourceID, locationID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	resourceID = int64(11)
	locationID = int64(7)
)

// Понедельники марта 2026: 2, 9, 16
var mondayNineToSix = &domain.Schedule{
	ID:          1,
	ResourceID:  resourceID,
	LocationID:  locationID,
	DayOfWeek:   ptr.Ptr(1),
	StartTime:   "09:00",
	EndTime:     "18:00",
	IsAvailable: true,
}

func TestResolve_RecurringWhenNoOverride(t *testing.T) {
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-02").Return(nil, scheduleRepo.ErrScheduleNotFound)
	repo.On("GetRecurring", mock.Anything, resourceID, locationID, 1).Return(mondayNineToSix, nil)

	res, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "2026-03-02")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceRecurring, res.Source)
	assert.True(t, res.IsOpen())
	assert.Same(t, mondayNineToSix, res.Schedule)
	repo.AssertExpectations(t)
}

func TestResolve_OverrideWins(t *testing.T) {
	override := &domain.Schedule{
		ID:           2,
		SpecificDate: ptr.Ptr("2026-03-09"),
		StartTime:    "12:00",
		EndTime:      "15:00",
		IsAvailable:  true,
	}
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-09").Return(override, nil)

	res, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "2026-03-09")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceOverride, res.Source)
	assert.Same(t, override, res.Schedule)
	repo.AssertNotCalled(t, "GetRecurring", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_UnavailableOverrideClosesOnlyThatDate(t *testing.T) {
	closedMonday := &domain.Schedule{
		ID:           3,
		SpecificDate: ptr.Ptr("2026-03-09"),
		StartTime:    "09:00",
		EndTime:      "18:00",
		IsAvailable:  false,
	}
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-09").Return(closedMonday, nil)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-16").Return(nil, scheduleRepo.ErrScheduleNotFound)
	repo.On("GetRecurring", mock.Anything, resourceID, locationID, 1).Return(mondayNineToSix, nil)

	svc := NewService(repo, nopLogger{})

	closed, err := svc.Resolve(context.Background(), resourceID, locationID, "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceClosedByOverride, closed.Source)
	assert.False(t, closed.IsOpen())
	assert.Nil(t, closed.Schedule)

	open, err := svc.Resolve(context.Background(), resourceID, locationID, "2026-03-16")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceRecurring, open.Source)
}

func TestResolve_ClosedWhenNothingMatches(t *testing.T) {
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-08").Return(nil, scheduleRepo.ErrScheduleNotFound)
	repo.On("GetRecurring", mock.Anything, resourceID, locationID, 0).Return(nil, scheduleRepo.ErrScheduleNotFound)

	res, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "2026-03-08")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceClosed, res.Source)
	assert.False(t, res.IsOpen())
}

func TestResolve_StorageError(t *testing.T) {
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-02").Return(nil, errors.New("connection refused"))

	_, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "2026-03-02")

	assert.ErrorIs(t, err, ErrInternal)
}

func TestResolve_InvalidStoredHours(t *testing.T) {
	broken := &domain.Schedule{ID: 9, DayOfWeek: ptr.Ptr(1), StartTime: "18:00", EndTime: "09:00", IsAvailable: true}
	repo := new(MockScheduleRepository)
	repo.On("GetOverride", mock.Anything, resourceID, locationID, "2026-03-02").Return(nil, scheduleRepo.ErrScheduleNotFound)
	repo.On("GetRecurring", mock.Anything, resourceID, locationID, 1).Return(broken, nil)

	_, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "2026-03-02")

	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestResolve_InvalidDate(t *testing.T) {
	repo := new(MockScheduleRepository)

	_, err := NewService(repo, nopLogger{}).Resolve(context.Background(), resourceID, locationID, "02.03.2026")

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "GetOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
