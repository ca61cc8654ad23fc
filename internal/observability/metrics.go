package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentErrors   *prometheus.CounterVec // labels: reason={validation,prediction,unprocessable}
	AssessmentDuration prometheus.Histogram

	// Prediction service metrics.
	PredictionRequests    *prometheus.CounterVec // labels: outcome={success,error}
	PredictionAPIDuration prometheus.Histogram
	PredictionCache       *prometheus.CounterVec // labels: result={hit,miss}

	// Export publishing metrics.
	ExportsPublished prometheus.Counter
	ExportErrors     prometheus.Counter
	ExportEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "assessments_total",
			Help:      "Total assessments completed successfully.",
		}),
		AssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "assessment_errors_total",
			Help:      "Failed assessments by reason.",
		}, []string{"reason"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "risk_report",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete submit-predict-normalize-interpret cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PredictionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "prediction_requests_total",
			Help:      "Prediction service requests by outcome.",
		}, []string{"outcome"}),
		PredictionAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "risk_report",
			Name:      "prediction_api_duration_seconds",
			Help:      "Prediction service request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PredictionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		ExportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "exports_published_total",
			Help:      "Export artifacts published to the analytics topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_report",
			Name:      "export_errors_total",
			Help:      "Export publish failures.",
		}),
		ExportEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "risk_report",
			Name:      "export_enabled",
			Help:      "1 when export publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentErrors,
		m.AssessmentDuration,
		m.PredictionRequests,
		m.PredictionAPIDuration,
		m.PredictionCache,
		m.ExportsPublished,
		m.ExportErrors,
		m.ExportEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_report", Name: "assessments_total"}),
		AssessmentErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "risk_report", Name: "assessment_errors_total"}, []string{"reason"}),
		AssessmentDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "risk_report", Name: "assessment_duration_seconds"}),
		PredictionRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "risk_report", Name: "prediction_requests_total"}, []string{"outcome"}),
		PredictionAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "risk_report", Name: "prediction_api_duration_seconds"}),
		PredictionCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "risk_report", Name: "prediction_cache_total"}, []string{"result"}),
		ExportsPublished:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_report", Name: "exports_published_total"}),
		ExportErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_report", Name: "export_errors_total"}),
		ExportEnabled:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "risk_report", Name: "export_enabled"}),
	}
}
