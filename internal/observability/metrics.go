package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cryopcm"

// Metrics holds the Prometheus counters, histograms, and gauges for the catalog service.
type Metrics struct {
	// Loading metrics.
	SourceFetches       *prometheus.CounterVec   // labels: source={pcms,properties}, outcome={success,error}
	SourceFetchDuration *prometheus.HistogramVec // labels: source
	RecordsLoaded       *prometheus.GaugeVec     // labels: catalog={pcms,properties}
	InvalidDefinitions  prometheus.Gauge
	LoadDuration        prometheus.Histogram

	// Query metrics.
	FilterRuns       *prometheus.CounterVec // labels: outcome={matches,no_matches,unfiltered,reset}
	CurveEvaluations *prometheus.CounterVec // labels: outcome=CurveOutcome
	CurvePoints      prometheus.Histogram

	// Export metrics.
	CurvesPublished prometheus.Counter
	PublishErrors   prometheus.Counter
	ExportEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceFetchDuration,
		m.RecordsLoaded,
		m.InvalidDefinitions,
		m.LoadDuration,
		m.FilterRuns,
		m.CurveEvaluations,
		m.CurvePoints,
		m.CurvesPublished,
		m.PublishErrors,
		m.ExportEnabled,
	)
	return m
}

// NewMetricsUnregistered creates Metrics that are not registered anywhere,
// for one-shot commands that never serve /metrics.
func NewMetricsUnregistered() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsUnregistered()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetch_total",
			Help:      "Source table retrievals by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of a single source table retrieval.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		RecordsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Rows held by each catalog after the last load.",
		}, []string{"catalog"}),
		InvalidDefinitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "invalid_property_definitions",
			Help:      "Property definitions that cannot be sampled.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete load of both catalogs.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FilterRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_runs_total",
			Help:      "Temperature searches by outcome.",
		}, []string{"outcome"}),
		CurveEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "curve_evaluations_total",
			Help:      "Property curve evaluations by outcome.",
		}, []string{"outcome"}),
		CurvePoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "curve_points",
			Help:      "Samples per evaluated curve.",
			Buckets:   []float64{1, 10, 25, 50, 100, 250, 500, 1000},
		}),
		CurvesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "curves_published_total",
			Help:      "Evaluated curves written to the export topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "curve_publish_errors_total",
			Help:      "Failed writes to the export topic.",
		}),
		ExportEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "export_enabled",
			Help:      "1 when curve export to Kafka is enabled, 0 otherwise.",
		}),
	}
}
