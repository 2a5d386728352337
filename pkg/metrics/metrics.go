// Package metrics prometheus-метрики сервиса
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса.
// Все методы безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	SlotsGenerated  *prometheus.HistogramVec
	QuotaRejections *prometheus.CounterVec
	EventsConsumed  *prometheus.CounterVec
	RateLimited     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		SlotsGenerated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "availability_slots_generated",
			Help:    "Number of free slots returned per single-day query",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"service"}),
		QuotaRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_quota_rejections_total",
			Help: "Slot queries rejected because the tenant reached its plan limit",
		}, []string{"service", "plan"}),
		EventsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_booking_events_total",
			Help: "Booking status events processed by outcome",
		}, []string{"service", "outcome"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.SlotsGenerated,
		m.QuotaRejections,
		m.EventsConsumed,
		m.RateLimited,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// ObserveSlotsGenerated фиксирует количество слотов в ответе
func (m *Metrics) ObserveSlotsGenerated(count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName).Observe(float64(count))
}

// IncQuotaRejected фиксирует отказ по квоте
func (m *Metrics) IncQuotaRejected(planID string) {
	if m == nil {
		return
	}
	m.QuotaRejections.WithLabelValues(m.serviceName, planID).Inc()
}

// IncEventConsumed фиксирует обработанное событие (applied, duplicate, ignored, failed)
func (m *Metrics) IncEventConsumed(outcome string) {
	if m == nil {
		return
	}
	m.EventsConsumed.WithLabelValues(m.serviceName, outcome).Inc()
}

// IncRateLimited фиксирует запрос, отклоненный лимитером
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(m.serviceName).Inc()
}
