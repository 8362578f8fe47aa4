// Package metrics exposes batch counters through Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for processed lines.
const (
	OutcomeProspect = "prospect"
)

// Recorder receives one observation per processed data line and one per run.
type Recorder interface {
	ObserveLine(outcome string)
	ObserveRun(status string)
}

type Prometheus struct {
	lines *prometheus.CounterVec
	runs  *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mortgage",
				Name:      "lines_total",
				Help:      "Processed data lines by outcome.",
			},
			[]string{"outcome"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mortgage",
				Name:      "batch_runs_total",
				Help:      "Batch runs by final status.",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(p.lines, p.runs)
	return p
}

func (p *Prometheus) ObserveLine(outcome string) {
	p.lines.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveRun(status string) {
	p.runs.WithLabelValues(status).Inc()
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveLine(string) {}
func (Nop) ObserveRun(string)  {}
