package bookingstatus

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// extractTraceContext восстанавливает контекст трассировки продюсера из заголовков
func extractTraceContext(ctx context.Context, msg kafka.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, headerCarrier(msg.Headers))
}

// headerCarrier заголовки Kafka как носитель W3C trace context (только чтение)
type headerCarrier []kafka.Header

func (c headerCarrier) Get(key string) string {
	return headerValue(c, key)
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, h := range c {
		keys = append(keys, h.Key)
	}
	return keys
}

// Set не используется: консьюмер только читает заголовки
func (c headerCarrier) Set(string, string) {}

var _ propagation.TextMapCarrier = headerCarrier{}
