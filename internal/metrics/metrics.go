package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "econdash"

// Outcome labels for pipeline runs.
const (
	OutcomeProcessed     = "processed"
	OutcomeLoadFailed    = "load_failed"
	OutcomeProcessFailed = "process_failed"
)

// Metrics holds the dashboard's collectors on a private registry so tests
// can create as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	PipelineRuns     *prometheus.CounterVec
	EncodingsUsed    *prometheus.CounterVec
	SkippedSteps     *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Dashboard pipeline runs by outcome.",
		}, []string{"outcome"}),
		EncodingsUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_encoding_total",
			Help:      "Successful dataset loads by source text encoding.",
		}, []string{"encoding"}),
		SkippedSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_skipped_steps_total",
			Help:      "Transformation steps skipped because required columns were missing.",
		}, []string{"step"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent loading and transforming the dataset.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.PipelineRuns,
		m.EncodingsUsed,
		m.SkippedSteps,
		m.PipelineDuration,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveRun records one pipeline run. encoding is empty when loading failed.
func (m *Metrics) ObserveRun(outcome, encoding string, skipped []string, d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(outcome).Inc()
	if encoding != "" {
		m.EncodingsUsed.WithLabelValues(encoding).Inc()
	}
	for _, step := range skipped {
		m.SkippedSteps.WithLabelValues(step).Inc()
	}
	m.PipelineDuration.Observe(d.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
