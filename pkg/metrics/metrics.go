package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Checkouts *prometheus.CounterVec
	Duration  prometheus.Histogram
}

// NewCheckoutMetrics registers checkout metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "duration_seconds",
		Help:      "End-to-end checkout transaction duration.",
		Buckets:   prometheus.DefBuckets,
	})

	reg.MustRegister(checkouts, duration)
	return &CheckoutMetrics{Checkouts: checkouts, Duration: duration}
}

func (m *CheckoutMetrics) Observe(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
	m.Duration.Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
