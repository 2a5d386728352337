// Package bookingstatus читает события смены статуса бронирований и применяет их к счётчикам квот
package bookingstatus

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/apply_booking_transition"
)

// MessageReader источник сообщений (*kafka.Reader)
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransitionApplier интерфейс use case применения смены статуса
type TransitionApplier interface {
	Execute(ctx context.Context, req *apply_booking_transition.Request) (*apply_booking_transition.Response, error)
}

// Metrics интерфейс метрик консьюмера
type Metrics interface {
	IncEventConsumed(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки консьюмера
type Config struct {
	Brokers     string
	GroupID     string
	Topic       string
	MaxAttempts int           // попыток обработки одного сообщения
	RetryDelay  time.Duration // пауза между попытками
}

// Consumer читает топик в группе и коммитит смещение только после обработки
type Consumer struct {
	reader      MessageReader
	applier     TransitionApplier
	metrics     Metrics
	logger      Logger
	maxAttempts int
	retryDelay  time.Duration
}

// NewReader создает kafka.Reader для группы консьюмеров
func NewReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  SplitBrokers(cfg.Brokers),
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// NewConsumer создает консьюмер поверх reader
func NewConsumer(reader MessageReader, applier TransitionApplier, metrics Metrics, logger Logger, cfg Config) *Consumer {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Consumer{
		reader:      reader,
		applier:     applier,
		metrics:     metrics,
		logger:      logger,
		maxAttempts: maxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// Run читает сообщения до отмены ctx
func (c *Consumer) Run(ctx context.Context) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("bookingstatus: failed to close reader: %v", err)
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("bookingstatus: fetch failed: %v", err)
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}

		outcome := c.handle(ctx, msg)
		if ctx.Err() != nil {
			// Без коммита: сообщение придёт повторно после перезапуска
			return
		}
		c.metrics.IncEventConsumed(outcome)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("bookingstatus: commit failed at partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
		}
	}
}

// handle обрабатывает одно сообщение и возвращает метку результата
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) string {
	ctx, span := otel.Tracer("kafka").Start(extractTraceContext(ctx, msg), "kafka.consume",
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	req, err := Decode(msg)
	if err != nil {
		c.logger.Warn("bookingstatus: skipping message at partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
		span.RecordError(err)
		return "invalid"
	}

	for attempt := 1; ; attempt++ {
		resp, err := c.applier.Execute(ctx, req)
		if err == nil {
			return string(resp.Outcome)
		}

		span.RecordError(err)
		if errors.Is(err, apply_booking_transition.ErrInvalidInput) {
			c.logger.Warn("bookingstatus: event=%s rejected: %v", req.EventID, err)
			return "invalid"
		}

		if attempt >= c.maxAttempts {
			// Счётчик восстановится пересчётом по бронированиям
			c.logger.Error("bookingstatus: event=%s dropped after %d attempts: %v", req.EventID, attempt, err)
			return "failed"
		}

		c.logger.Warn("bookingstatus: event=%s attempt %d failed: %v", req.EventID, attempt, err)
		if !sleep(ctx, c.retryDelay*time.Duration(attempt)) {
			return "failed"
		}
	}
}

// sleep ждёт d или отмены ctx; false - ctx отменён
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
