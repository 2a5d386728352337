package apply_booking_transition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

type MockInboxRepository struct {
	mock.Mock
}

func (m *MockInboxRepository) Record(ctx context.Context, eventID string, eventType string, now time.Time) (bool, error) {
	args := m.Called(ctx, eventID, eventType, now)
	return args.Bool(0), args.Error(1)
}

type MockQuotaCounter struct {
	mock.Mock
}

func (m *MockQuotaCounter) Increment(ctx context.Context, tenantID int64, n int) (*quota.Status, error) {
	args := m.Called(ctx, tenantID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quota.Status), args.Error(1)
}

func (m *MockQuotaCounter) Decrement(ctx context.Context, tenantID int64, n int) (*quota.Status, error) {
	args := m.Called(ctx, tenantID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quota.Status), args.Error(1)
}

// inlineTx выполняет fn без БД и запоминает ошибку, с которой завершилась "транзакция"
type inlineTx struct {
	calls   int
	lastErr error
}

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	tx.lastErr = fn(ctx)
	return tx.lastErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newUseCase(inbox InboxRepository, counter QuotaCounter, tx TransactionManager) *UseCase {
	uc := NewUseCase(inbox, counter, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func event(id, from, to string) *Request {
	return &Request{EventID: id, TenantID: 3, BookingID: 100, FromStatus: from, ToStatus: to}
}

func TestExecute_ConfirmIncrements(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, "evt-1", EventType, now).Return(true, nil).Once()
	counter := new(MockQuotaCounter)
	counter.On("Increment", mock.Anything, int64(3), 1).Return(&quota.Status{CurrentUsage: 10}, nil).Once()
	tx := &inlineTx{}

	resp, err := newUseCase(inbox, counter, tx).Execute(context.Background(), event("evt-1", "PENDING_PAYMENT", "CONFIRMED"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeIncremented, resp.Outcome)
	assert.Equal(t, 10, *resp.CurrentUsage)
	assert.Equal(t, 1, tx.calls)
	inbox.AssertExpectations(t)
	counter.AssertExpectations(t)
}

func TestExecute_CancelConfirmedDecrements(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, "evt-2", EventType, now).Return(true, nil)
	counter := new(MockQuotaCounter)
	counter.On("Decrement", mock.Anything, int64(3), 1).Return(&quota.Status{CurrentUsage: 4}, nil).Once()

	resp, err := newUseCase(inbox, counter, &inlineTx{}).Execute(context.Background(), event("evt-2", "CONFIRMED", "CANCELLED"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeDecremented, resp.Outcome)
	assert.Equal(t, 4, *resp.CurrentUsage)
}

func TestExecute_TransitionsThatDoNotTouchUsage(t *testing.T) {
	for _, tc := range []struct{ from, to string }{
		{"", "PENDING_PAYMENT"},
		{"PENDING_PAYMENT", "CANCELLED"},
		{"CONFIRMED", "CONFIRMED"},
	} {
		inbox := new(MockInboxRepository)
		inbox.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
		counter := new(MockQuotaCounter)

		resp, err := newUseCase(inbox, counter, &inlineTx{}).Execute(context.Background(), event("evt", tc.from, tc.to))

		require.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, resp.Outcome, "%s -> %s", tc.from, tc.to)
		assert.Nil(t, resp.CurrentUsage)
		counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
		counter.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestExecute_NewConfirmedBookingIncrements(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, "evt-3", EventType, now).Return(true, nil)
	counter := new(MockQuotaCounter)
	counter.On("Increment", mock.Anything, int64(3), 1).Return(&quota.Status{CurrentUsage: 1}, nil).Once()

	resp, err := newUseCase(inbox, counter, &inlineTx{}).Execute(context.Background(), event("evt-3", "", "CONFIRMED"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeIncremented, resp.Outcome)
}

func TestExecute_RedeliveredEventIsNoop(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, "evt-1", EventType, now).Return(false, nil)
	counter := new(MockQuotaCounter)

	resp, err := newUseCase(inbox, counter, &inlineTx{}).Execute(context.Background(), event("evt-1", "PENDING_PAYMENT", "CONFIRMED"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, resp.Outcome)
	counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CounterFailureRollsBack(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, "evt-1", EventType, now).Return(true, nil)
	counter := new(MockQuotaCounter)
	counter.On("Increment", mock.Anything, int64(3), 1).Return(nil, quota.ErrInternal)
	tx := &inlineTx{}

	_, err := newUseCase(inbox, counter, tx).Execute(context.Background(), event("evt-1", "PENDING_PAYMENT", "CONFIRMED"))

	assert.ErrorIs(t, err, ErrInternal)
	// Ошибка вышла из транзакции, значит запись в журнале откатится вместе со счётчиком
	assert.ErrorIs(t, tx.lastErr, quota.ErrInternal)
}

func TestExecute_InboxFailure(t *testing.T) {
	inbox := new(MockInboxRepository)
	inbox.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("db down"))

	_, err := newUseCase(inbox, new(MockQuotaCounter), &inlineTx{}).Execute(context.Background(), event("evt-1", "", "CONFIRMED"))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(new(MockInboxRepository), new(MockQuotaCounter), &inlineTx{})

	for name, req := range map[string]*Request{
		"no event id":  {TenantID: 3, BookingID: 1, ToStatus: "CONFIRMED"},
		"no tenant":    {EventID: "e", BookingID: 1, ToStatus: "CONFIRMED"},
		"no booking":   {EventID: "e", TenantID: 3, ToStatus: "CONFIRMED"},
		"unknown to":   {EventID: "e", TenantID: 3, BookingID: 1, ToStatus: "DONE"},
		"unknown from": {EventID: "e", TenantID: 3, BookingID: 1, FromStatus: "new", ToStatus: "CONFIRMED"},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}
