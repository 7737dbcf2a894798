package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ScoresSavedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "litmus_scores_saved_total",
	Help: "Number of score entries written to the database",
})

var ScoresRejectedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "litmus_scores_rejected_total",
	Help: "Number of rejected score writes by reason",
}, []string{"reason"})

var SubmissionsLockedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "litmus_submissions_locked_total",
	Help: "Number of judge submissions transitioned to LOCKED",
})

var StandingsComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "litmus_standings_compute_duration_s",
	Help: "Duration of standings computation",
	Buckets: []float64{
		0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1,
	},
})

var ResultsCacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "litmus_results_cache_total",
	Help: "Results cache hits and misses",
}, []string{"outcome"})

var PdfExportCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "litmus_pdf_exports_total",
	Help: "Number of result PDFs rendered",
})
