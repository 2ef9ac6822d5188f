package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	imports          *prometheus.CounterVec
	importedItems    prometheus.Counter
	deletes          *prometheus.CounterVec
	recalculations   *prometheus.CounterVec
	propagationDepth prometheus.Histogram
	duration         *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		imports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "imports_total",
			Help:      "Import batches by outcome.",
		}, []string{"result"}),
		importedItems: f.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "imported_items_total",
			Help:      "Items applied by successful import batches.",
		}),
		deletes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "deletes_total",
			Help:      "Item deletions by outcome.",
		}, []string{"result"}),
		recalculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "recalculations_total",
			Help:      "Explicit price recalculations by scope.",
		}, []string{"scope"}),
		propagationDepth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "propagation_depth",
			Help:      "Ancestors repriced by a single propagation walk.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "operation_duration_seconds",
			Help:      "Latency of catalog engine operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

func (m *Metrics) observe(op string, start time.Time) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
