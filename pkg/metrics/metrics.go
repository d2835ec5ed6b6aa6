package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpInFlight        prometheus.Gauge

	dbQueryDuration *prometheus.HistogramVec
	dbConnsOpen     prometheus.Gauge
	dbConnsIdle     prometheus.Gauge
	dbConnsInUse    prometheus.Gauge

	notificationsSent   *prometheus.CounterVec
	notificationsFailed *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Duration of database queries",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbConnsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}),

		dbConnsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		dbConnsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}),

		notificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Total number of notifications delivered to the gateway",
			ConstLabels: constLabels,
		}, []string{"carrier", "template"}),

		notificationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Total number of failed notification sends",
			ConstLabels: constLabels,
		}, []string{"carrier", "template"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// IncInFlight увеличивает счетчик текущих запросов
func (m *Metrics) IncInFlight() { m.httpInFlight.Inc() }

// DecInFlight уменьшает счетчик текущих запросов
func (m *Metrics) DecInFlight() { m.httpInFlight.Dec() }

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBConnStats записывает состояние connection pool
func (m *Metrics) SetDBConnStats(open, idle, inUse int) {
	m.dbConnsOpen.Set(float64(open))
	m.dbConnsIdle.Set(float64(idle))
	m.dbConnsInUse.Set(float64(inUse))
}

// ObserveNotificationSent записывает успешную отправку уведомления
func (m *Metrics) ObserveNotificationSent(carrier, template string) {
	m.notificationsSent.WithLabelValues(carrier, template).Inc()
}

// ObserveNotificationFailed записывает неуспешную отправку уведомления
func (m *Metrics) ObserveNotificationFailed(carrier, template string) {
	m.notificationsFailed.WithLabelValues(carrier, template).Inc()
}
