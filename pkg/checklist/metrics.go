package checklist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for checklist runs. They are served
// by watch mode; one-shot runs may pass a nil collector.
type Metrics struct {
	runsTotal    *prometheus.CounterVec
	checksTotal  *prometheus.CounterVec
	runDuration  prometheus.Histogram
	lastRunPass  prometheus.Gauge
	checksFailed prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on the given
// registerer. Tests pass prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signoff_runs_total",
				Help: "Total number of checklist runs",
			},
			[]string{"result"},
		),

		checksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signoff_checks_total",
				Help: "Total number of check evaluations",
			},
			[]string{"check", "result"},
		),

		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "signoff_run_duration_seconds",
				Help:    "Duration of checklist runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
		),

		lastRunPass: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "signoff_last_run_pass",
				Help: "Whether the most recent checklist run passed (1) or failed (0)",
			},
		),

		checksFailed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "signoff_last_run_checks_failed",
				Help: "Number of failing checks in the most recent run",
			},
		),
	}
}

// ObserveRun records the outcome of one checklist run.
func (m *Metrics) ObserveRun(summary *RunSummary) {
	result := "pass"
	if !summary.AllPass() {
		result = "fail"
	}
	m.runsTotal.WithLabelValues(result).Inc()
	m.runDuration.Observe(summary.Duration.Seconds())

	failed := 0
	for _, r := range summary.Results {
		checkResult := "pass"
		switch {
		case r.Err != nil:
			checkResult = "error"
		case r.Result == nil || !r.Result.IsPass:
			checkResult = "fail"
		}
		if checkResult != "pass" {
			failed++
		}
		m.checksTotal.WithLabelValues(r.Check, checkResult).Inc()
	}

	if summary.AllPass() {
		m.lastRunPass.Set(1)
	} else {
		m.lastRunPass.Set(0)
	}
	m.checksFailed.Set(float64(failed))
}
