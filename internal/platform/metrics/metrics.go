package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	rows          *prometheus.CounterVec
	skippedFiles  *prometheus.CounterVec
	batches       *prometheus.CounterVec
	stubEmployees prometheus.Counter
	batchDuration prometheus.Histogram
}

var collectorSingleton = sync.OnceValue(func() *Collector {
	return &Collector{
		rows: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrimport",
			Name:      "rows_total",
			Help:      "Source rows merged into the roster, by source kind.",
		}, []string{"kind"}),
		skippedFiles: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrimport",
			Name:      "files_skipped_total",
			Help:      "Source files skipped because a structural anchor was missing.",
		}, []string{"kind"}),
		batches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrimport",
			Name:      "batches_total",
			Help:      "Import batches by result.",
		}, []string{"result"}),
		stubEmployees: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hrimport",
			Name:      "stub_employees_total",
			Help:      "Employees created as stubs after an identity miss.",
		}),
		batchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hrimport",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a full import batch.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
})

// Default returns the process-wide collector registered with the default
// prometheus registry.
func Default() *Collector {
	return collectorSingleton()
}

func (c *Collector) AddRows(kind string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rows.WithLabelValues(kind).Add(float64(n))
}

func (c *Collector) FileSkipped(kind string) {
	if c == nil {
		return
	}
	c.skippedFiles.WithLabelValues(kind).Inc()
}

func (c *Collector) AddStubs(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.stubEmployees.Add(float64(n))
}

func (c *Collector) BatchFinished(err error, duration time.Duration) {
	if c == nil {
		return
	}
	result := "committed"
	if err != nil {
		result = "rolled_back"
	}
	c.batches.WithLabelValues(result).Inc()
	c.batchDuration.Observe(duration.Seconds())
}
