package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	LocationsCreated *prometheus.CounterVec
	UsersCreated     prometheus.Counter
	LoginFailures    prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default
// registry.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admingeo_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		LocationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "admingeo_locations_created_total",
			Help: "Locations created, by level of the division tree",
		}, []string{"level"}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admingeo_users_created_total",
			Help: "Total number of users created",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "admingeo_login_failures_total",
			Help: "Failed login attempts",
		}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}

// IncrementLocationsCreated counts a created division at the given
// level (province, district, constituency, ward).
func (m *Metrics) IncrementLocationsCreated(level string) {
	if m == nil {
		return
	}
	m.LocationsCreated.WithLabelValues(level).Inc()
}

// IncrementUsersCreated counts a created user.
func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

// IncrementLoginFailures counts a rejected login.
func (m *Metrics) IncrementLoginFailures() {
	if m == nil {
		return
	}
	m.LoginFailures.Inc()
}
