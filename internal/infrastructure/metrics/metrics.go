package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Run metrics
	RunsStarted  *prometheus.CounterVec
	RunsFinished *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec

	// Chunk metrics
	ChunksProcessed *prometheus.CounterVec
	ChunkDuration   *prometheus.HistogramVec
	LoansProcessed  *prometheus.CounterVec

	// Data quality metrics
	LoanErrors        *prometheus.CounterVec
	UnclassifiedLoans *prometheus.CounterVec
	PDFallbacks       prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RunsStarted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_runs_started_total",
				Help: "Total number of calculation runs started",
			},
			[]string{"run_type"},
		),
		RunsFinished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_runs_finished_total",
				Help: "Total number of calculation runs finished by status",
			},
			[]string{"run_type", "status"},
		),
		RunDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goprovision_run_duration_seconds",
				Help:    "Duration of calculation runs",
				Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"run_type"},
		),

		ChunksProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_chunks_processed_total",
				Help: "Total number of loan chunks processed",
			},
			[]string{"run_type"},
		),
		ChunkDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goprovision_chunk_duration_seconds",
				Help:    "Duration of single chunk processing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"run_type"},
		),
		LoansProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_loans_processed_total",
				Help: "Total number of loans processed",
			},
			[]string{"run_type"},
		),

		LoanErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_loan_errors_total",
				Help: "Total number of loans skipped due to invalid input",
			},
			[]string{"run_type"},
		),
		UnclassifiedLoans: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goprovision_unclassified_loans_total",
				Help: "Total number of loans outside every configured range",
			},
			[]string{"run_type"},
		),
		PDFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goprovision_pd_fallbacks_total",
			Help: "Total number of loans scored with the fixed fallback PD",
		}),
	}
}
