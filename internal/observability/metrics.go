package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeKept    = "kept"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// CleanupMetrics counts roster cleanup activity for a single season run.
// A nil *CleanupMetrics records nothing.
type CleanupMetrics struct {
	registry *prometheus.Registry
	lines    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
}

func NewCleanupMetrics(season int) *CleanupMetrics {
	constLabels := prometheus.Labels{"season": strconv.Itoa(season)}
	m := &CleanupMetrics{
		registry: prometheus.NewRegistry(),
		lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "fixturectl",
				Subsystem:   "teams_cleanup",
				Name:        "lines_total",
				Help:        "Roster lines processed by outcome.",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "fixturectl",
				Subsystem:   "teams_cleanup",
				Name:        "runs_total",
				Help:        "Roster cleanup runs by result.",
				ConstLabels: constLabels,
			},
			[]string{"success"},
		),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "fixturectl",
			Subsystem:   "teams_cleanup",
			Name:        "last_run_duration_seconds",
			Help:        "Duration of the last roster cleanup run.",
			ConstLabels: constLabels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "fixturectl",
			Subsystem:   "teams_cleanup",
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time of the last roster cleanup run.",
			ConstLabels: constLabels,
		}),
	}
	m.registry.MustRegister(m.lines, m.runs, m.duration, m.lastRun)
	return m
}

func (m *CleanupMetrics) RecordLine(outcome string) {
	if m == nil {
		return
	}
	m.lines.WithLabelValues(outcome).Inc()
}

func (m *CleanupMetrics) RecordRun(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.duration.Set(duration.Seconds())
	m.lastRun.SetToCurrentTime()
}

// Registry exposes the underlying gatherer.
func (m *CleanupMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile dumps the metrics in the node_exporter textfile format.
func (m *CleanupMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
