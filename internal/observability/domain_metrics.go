package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	questionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsight_questions_total",
			Help: "Total number of answered questions by terminal status.",
		},
		[]string{"status"},
	)
	pipelineAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsight_pipeline_attempts_total",
			Help: "Total number of generation attempts by failure stage (validate, execute).",
		},
		[]string{"stage"},
	)
	modelLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finsight_model_latency_ms",
			Help:    "Chat-completion round-trip latency in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000},
		},
	)
	queryLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finsight_query_latency_ms",
			Help:    "Generated query execution latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)
)

func init() {
	prometheus.MustRegister(
		questionsTotal,
		pipelineAttemptsTotal,
		modelLatencyMs,
		queryLatencyMs,
	)
}

func ObserveQuestionOutcome(status string) {
	questionsTotal.WithLabelValues(status).Inc()
}

func ObserveFailedAttempt(stage string) {
	pipelineAttemptsTotal.WithLabelValues(stage).Inc()
}

func ObserveModelLatency(elapsed time.Duration) {
	modelLatencyMs.Observe(float64(elapsed.Milliseconds()))
}

func ObserveQueryLatency(elapsed time.Duration) {
	queryLatencyMs.Observe(float64(elapsed.Milliseconds()))
}
