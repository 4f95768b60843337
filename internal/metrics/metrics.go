// Package metrics exposes prometheus collectors for the watch daemon.
package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the registered collectors.
type Recorder struct {
	registry *prom.Registry

	scanDuration  prom.Histogram
	scansTotal    *prom.CounterVec
	issuesBySev   *prom.GaugeVec
	watchEvents   *prom.CounterVec
	documentsSeen prom.Gauge
}

// NewRecorder constructs and registers the collectors on reg (a fresh
// registry is created when reg is nil).
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		scanDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "contentkit",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full content scans including lint",
			Buckets:   prom.DefBuckets,
		}),
		scansTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "contentkit",
			Name:      "scans_total",
			Help:      "Scan runs by trigger and outcome",
		}, []string{"trigger", "outcome"}),
		issuesBySev: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "contentkit",
			Name:      "lint_issues",
			Help:      "Issues found by the most recent lint run, by severity",
		}, []string{"severity"}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "contentkit",
			Name:      "watch_events_total",
			Help:      "Filesystem events observed, by operation",
		}, []string{"op"}),
		documentsSeen: prom.NewGauge(prom.GaugeOpts{
			Namespace: "contentkit",
			Name:      "documents",
			Help:      "Documents in the most recent scan",
		}),
	}

	reg.MustRegister(r.scanDuration, r.scansTotal, r.issuesBySev, r.watchEvents, r.documentsSeen)
	return r
}

// Registry returns the underlying registry for serving.
func (r *Recorder) Registry() *prom.Registry { return r.registry }

// RecordScan records one completed scan+lint pass.
func (r *Recorder) RecordScan(trigger string, seconds float64, documents, errors, warnings int, failed bool) {
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	r.scansTotal.WithLabelValues(trigger, outcome).Inc()
	if failed {
		return
	}
	r.scanDuration.Observe(seconds)
	r.documentsSeen.Set(float64(documents))
	r.issuesBySev.WithLabelValues("error").Set(float64(errors))
	r.issuesBySev.WithLabelValues("warning").Set(float64(warnings))
}

// RecordWatchEvent counts one filesystem event.
func (r *Recorder) RecordWatchEvent(op string) {
	r.watchEvents.WithLabelValues(op).Inc()
}
