package launch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the scan collectors.
type Metrics struct {
	scans    *prometheus.CounterVec
	duration prometheus.Histogram
	items    prometheus.Gauge
}

// NewMetrics registers the scan collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchboard",
			Name:      "scans_total",
			Help:      "Launch table scans by result.",
		}, []string{"result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "launchboard",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full launch table scans.",
			Buckets:   prometheus.DefBuckets,
		}),
		items: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "launchboard",
			Name:      "scan_items",
			Help:      "Records returned by the last successful scan.",
		}),
	}
}

func (m *Metrics) observe(err error, elapsed time.Duration, n int) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.scans.WithLabelValues("error").Inc()
		return
	}
	m.scans.WithLabelValues("ok").Inc()
	m.items.Set(float64(n))
}
