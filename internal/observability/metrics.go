package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isoweather"

// Metrics holds the Prometheus counters, histograms, and gauges for the report pipeline.
type Metrics struct {
	RowsLoaded      prometheus.Counter
	CoercedFields   prometheus.Counter
	ReportsProduced prometheus.Counter
	PipelineRunning prometheus.Gauge

	StageDuration *prometheus.HistogramVec // labels: stage={extract,transform,load}
	SinkWrites    *prometheus.CounterVec   // labels: sink, outcome={success,error}

	LastReportTimestamp prometheus.Gauge
}

var stageBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all pipeline metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.RowsLoaded,
		m.CoercedFields,
		m.ReportsProduced,
		m.PipelineRunning,
		m.StageDuration,
		m.SinkWrites,
		m.LastReportTimestamp,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_rows_loaded_total",
			Help:      "Total hourly weather rows read from EPW files.",
		}),
		CoercedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_coerced_fields_total",
			Help:      "Total missing or malformed weather fields read as zero.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_produced_total",
			Help:      "Total reports computed and delivered to every sink.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 while a report run is in progress, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   stageBuckets,
		}, []string{"stage"}),
		SinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_writes_total",
			Help:      "Report deliveries by sink and outcome.",
		}, []string{"sink", "outcome"}),
		LastReportTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_report_timestamp_seconds",
			Help:      "Unix time the most recent report was generated.",
		}),
	}
}
