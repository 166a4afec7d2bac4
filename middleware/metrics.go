package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of the jwt_middleware_requests_total counter,
// next to the verification statuses ("valid", "expired", "invalid").
const (
	OutcomeMissing   = "missing"
	OutcomeRefreshed = "refreshed"
	OutcomeError     = "error"
)

// Metrics holds the prometheus collectors of the middleware.
type Metrics struct {
	Requests       *prometheus.CounterVec
	Rejections     *prometheus.CounterVec
	Refreshes      prometheus.Counter
	VerifyDuration prometheus.Histogram
}

// NewMetrics creates the middleware collectors and registers them to "reg".
// A nil registerer creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jwt_middleware_requests_total",
			Help: "The total number of requests seen by the token middleware, by outcome",
		}, []string{"outcome"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jwt_middleware_rejections_total",
			Help: "The total number of rejected tokens, by reason",
		}, []string{"reason"}),
		Refreshes: factory.NewCounter(prometheus.CounterOpts{
			Name: "jwt_middleware_refreshes_total",
			Help: "The total number of expired tokens transparently refreshed",
		}),
		VerifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "jwt_middleware_verify_duration_seconds",
			Help:    "The time it took to verify a token (in seconds)",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

func (m *Metrics) request(outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) rejection(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) refreshed() {
	if m == nil {
		return
	}
	m.Refreshes.Inc()
}

func (m *Metrics) observe(seconds float64) {
	if m == nil {
		return
	}
	m.VerifyDuration.Observe(seconds)
}
