package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestTenant(t *testing.T) {
	var (
		tenantID int64
		found    bool
	)
	h := Tenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, found = GetTenantID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TenantHeader, "42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, found)
	assert.Equal(t, int64(42), tenantID)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, found)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TenantHeader, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (c *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[key]++
	return c.counts[key], nil
}

type countingMetrics struct {
	rateLimited int
	observed    []string
}

func (m *countingMetrics) IncRateLimited() { m.rateLimited++ }

func (m *countingMetrics) ObserveHTTPRequest(method, path string, _ int, _ time.Duration) {
	m.observed = append(m.observed, method+" "+path)
}

func TestRateLimit_RejectsOverLimitPerClient(t *testing.T) {
	m := &countingMetrics{}
	h := RateLimit(&fakeCounter{}, 2, time.Minute, m, nopLogger{})(okHandler)

	codes := make([]int, 0, 4)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:6000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	codes = append(codes, rec.Code)

	assert.Equal(t, []int{200, 200, 429, 200}, codes)
	assert.Equal(t, 1, m.rateLimited)
}

func TestRateLimit_IgnoresForwardedForHeader(t *testing.T) {
	m := &countingMetrics{}
	h := RateLimit(&fakeCounter{}, 1, time.Minute, m, nopLogger{})(okHandler)

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"", "203.0.113.1", "203.0.113.2, 10.0.0.1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 429, 429}, codes)
	assert.Equal(t, 2, m.rateLimited)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(&fakeCounter{err: errors.New("redis down")}, 1, time.Minute, &countingMetrics{}, nopLogger{})(okHandler)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &countingMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Handle("/locations/{locationId}", okHandler).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/locations/17", nil))

	assert.Equal(t, []string{"GET /locations/{locationId}"}, m.observed)
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	assert.Equal(t, http.StatusOK, rec.statusCode())

	_, err := rec.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.bytes)

	rec = &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, rec.statusCode())
}
