package metrics

import (
	domrepo "AvoDash/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ domrepo.Metrics = (*Recorder)(nil)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	matchedRows prometheus.Histogram
	cacheTotal  *prometheus.CounterVec
	datasetSize prometheus.Gauge
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg. Tests pass a fresh
// registry so collectors never collide.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avodash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "avodash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		matchedRows: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "avodash_filter_matched_rows",
				Help:    "Rows matched per selector change",
				Buckets: []float64{0, 1, 10, 25, 50, 100, 169, 250, 500, 1000},
			},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avodash_chart_cache_total",
				Help: "Chart cache lookups by result",
			},
			[]string{"result"},
		),
		datasetSize: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "avodash_dataset_records",
				Help: "Records held by the loaded dataset",
			},
		),
	}
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordMatchedRows(n int) {
	r.matchedRows.Observe(float64(n))
}

func (r *Recorder) RecordCache(hit bool) {
	if hit {
		r.cacheTotal.WithLabelValues("hit").Inc()
		return
	}
	r.cacheTotal.WithLabelValues("miss").Inc()
}

func (r *Recorder) SetDatasetSize(n int) {
	r.datasetSize.Set(float64(n))
}
