package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	outcomes      *prom.CounterVec
	probeDuration prom.Histogram
	buildDuration prom.Histogram
	lastRun       prom.Gauge
}

// buildBuckets span a warm incremental wasm-pack build up to a cold release build.
var buildBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600}

// NewPrometheusRecorder constructs the metrics and registers them on reg (a
// fresh registry when nil). It panics if reg already holds them, so call it
// once per registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.outcomes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "ensure_pkg",
		Name:      "outcomes_total",
		Help:      "Guard runs by terminal outcome",
	}, []string{"outcome"})
	pr.probeDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "ensure_pkg",
		Name:      "toolchain_probe_duration_seconds",
		Help:      "Duration of the toolchain version query",
		Buckets:   prom.DefBuckets,
	})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "ensure_pkg",
		Name:      "toolchain_build_duration_seconds",
		Help:      "Duration of the toolchain build",
		Buckets:   buildBuckets,
	})
	pr.lastRun = prom.NewGauge(prom.GaugeOpts{
		Namespace: "ensure_pkg",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last guard run",
	})
	reg.MustRegister(pr.outcomes, pr.probeDuration, pr.buildDuration, pr.lastRun)
	return pr
}

// Registry exposes the underlying registry for gathering.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncOutcome(outcome OutcomeLabel) {
	if p == nil || p.outcomes == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) ObserveProbeDuration(d time.Duration) {
	if p == nil || p.probeDuration == nil {
		return
	}
	p.probeDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}
