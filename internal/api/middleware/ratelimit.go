package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// WindowCounter считает запросы ключа в текущем окне
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitMetrics интерфейс метрик ограничителя
type RateLimitMetrics interface {
	IncRateLimited()
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счётчик фиксированного окна в Redis, общий для всех инстансов
type RedisCounter struct {
	rdb redis.Scripter
}

// NewRedisCounter создает счётчик поверх клиента Redis
func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr увеличивает счётчик ключа; первый запрос окна ставит TTL
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimit ограничивает число запросов клиента за окно.
// При недоступности счётчика запрос пропускается.
func RateLimit(counter WindowCounter, limit int, window time.Duration, m RateLimitMetrics, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rl:slots:" + clientKey(r)
			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				logger.Warn("RateLimit: counter unavailable, letting request through: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				m.IncRateLimited()
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey адрес TCP-соединения. X-Forwarded-For задаёт клиент, ключом он быть не может.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
