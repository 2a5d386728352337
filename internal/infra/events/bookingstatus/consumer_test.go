package bookingstatus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/apply_booking_transition"
)

// fakeReader отдаёт сообщения из очереди и отменяет контекст, когда очередь пуста
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type MockApplier struct {
	mock.Mock
}

func (m *MockApplier) Execute(ctx context.Context, req *apply_booking_transition.Request) (*apply_booking_transition.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apply_booking_transition.Response), args.Error(1)
}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) IncEventConsumed(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func message(offset int64, value string) kafka.Message {
	return kafka.Message{Topic: "booking.status_changed", Offset: offset, Value: []byte(value)}
}

func forEvent(id string) interface{} {
	return mock.MatchedBy(func(req *apply_booking_transition.Request) bool { return req.EventID == id })
}

func run(t *testing.T, applier TransitionApplier, maxAttempts int, msgs ...kafka.Message) (*fakeReader, *recordingMetrics) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{queue: msgs, cancel: cancel}
	metrics := &recordingMetrics{}
	consumer := NewConsumer(reader, applier, metrics, nopLogger{}, Config{MaxAttempts: maxAttempts})

	done := make(chan struct{})
	go func() {
		consumer.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
	return reader, metrics
}

func TestConsumer_AppliesAndCommitsEachMessage(t *testing.T) {
	applier := new(MockApplier)
	applier.On("Execute", mock.Anything, forEvent("e1")).
		Return(&apply_booking_transition.Response{Outcome: apply_booking_transition.OutcomeIncremented}, nil).Once()
	applier.On("Execute", mock.Anything, forEvent("e2")).
		Return(&apply_booking_transition.Response{Outcome: apply_booking_transition.OutcomeDuplicate}, nil).Once()

	reader, metrics := run(t, applier, 3,
		message(10, `{"eventId":"e1","tenantId":3,"bookingId":100,"fromStatus":"PENDING_PAYMENT","toStatus":"CONFIRMED"}`),
		message(11, `{"eventId":"e2","tenantId":3,"bookingId":100,"fromStatus":"PENDING_PAYMENT","toStatus":"CONFIRMED"}`),
	)

	assert.Equal(t, []int64{10, 11}, reader.committed)
	assert.Equal(t, []string{"incremented", "duplicate"}, metrics.outcomes)
	assert.True(t, reader.closed)
	applier.AssertExpectations(t)
}

func TestConsumer_InvalidPayloadIsSkipped(t *testing.T) {
	applier := new(MockApplier)

	reader, metrics := run(t, applier, 3, message(5, `not json`))

	assert.Equal(t, []int64{5}, reader.committed)
	assert.Equal(t, []string{"invalid"}, metrics.outcomes)
	applier.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestConsumer_RetriesTransientErrors(t *testing.T) {
	applier := new(MockApplier)
	applier.On("Execute", mock.Anything, forEvent("e1")).Return(nil, apply_booking_transition.ErrInternal).Twice()
	applier.On("Execute", mock.Anything, forEvent("e1")).
		Return(&apply_booking_transition.Response{Outcome: apply_booking_transition.OutcomeDecremented}, nil).Once()

	_, metrics := run(t, applier, 3,
		message(1, `{"eventId":"e1","tenantId":3,"bookingId":100,"fromStatus":"CONFIRMED","toStatus":"CANCELLED"}`))

	assert.Equal(t, []string{"decremented"}, metrics.outcomes)
	applier.AssertNumberOfCalls(t, "Execute", 3)
}

func TestConsumer_GivesUpAfterMaxAttempts(t *testing.T) {
	applier := new(MockApplier)
	applier.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	reader, metrics := run(t, applier, 2,
		message(1, `{"eventId":"e1","tenantId":3,"bookingId":100,"toStatus":"CONFIRMED"}`))

	assert.Equal(t, []string{"failed"}, metrics.outcomes)
	assert.Equal(t, []int64{1}, reader.committed)
	applier.AssertNumberOfCalls(t, "Execute", 2)
}

func TestConsumer_RejectedEventIsNotRetried(t *testing.T) {
	applier := new(MockApplier)
	applier.On("Execute", mock.Anything, mock.Anything).Return(nil, apply_booking_transition.ErrInvalidInput)

	_, metrics := run(t, applier, 5,
		message(1, `{"eventId":"e1","tenantId":3,"bookingId":100,"toStatus":"DONE"}`))

	assert.Equal(t, []string{"invalid"}, metrics.outcomes)
	applier.AssertNumberOfCalls(t, "Execute", 1)
}

func TestDecode_EventIDFallbacks(t *testing.T) {
	req, err := Decode(kafka.Message{
		Value:   []byte(`{"tenantId":3,"bookingId":100,"toStatus":"CONFIRMED"}`),
		Headers: []kafka.Header{{Key: "event_id", Value: []byte("from-header")}},
		Key:     []byte("from-key"),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-header", req.EventID)
	assert.Equal(t, int64(3), req.TenantID)
	assert.Equal(t, "CONFIRMED", req.ToStatus)
	assert.Empty(t, req.FromStatus)

	req, err = Decode(kafka.Message{Value: []byte(`{"tenantId":3,"bookingId":100,"toStatus":"CONFIRMED"}`), Key: []byte("from-key")})
	require.NoError(t, err)
	assert.Equal(t, "from-key", req.EventID)

	_, err = Decode(kafka.Message{Value: []byte(`{"tenantId":3,"bookingId":100,"toStatus":"CONFIRMED"}`)})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
