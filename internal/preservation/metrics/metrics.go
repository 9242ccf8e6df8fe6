package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics provides observability for the preservation module.
// Tracks preserved requirements, command outcomes and command durations.
type Metrics struct {
	RequirementsPreserved *prometheus.CounterVec
	TagsStarted           prometheus.Counter
	TagsTransferred       prometheus.Counter
	Commands              *prometheus.CounterVec
	CommandDuration       *prometheus.HistogramVec
	DueIndexFallbacks     prometheus.Counter
}

// New creates a new Metrics instance with all preservation metrics registered.
func New() *Metrics {
	return &Metrics{
		RequirementsPreserved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "preservation_requirements_preserved_total",
			Help: "Requirements preserved, by mode (single or bulk)",
		}, []string{"mode"}),
		TagsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "preservation_tags_started_total",
			Help: "Tags whose preservation was started",
		}),
		TagsTransferred: promauto.NewCounter(prometheus.CounterOpts{
			Name: "preservation_tags_transferred_total",
			Help: "Tags transferred to the next journey step",
		}),
		Commands: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "preservation_commands_total",
			Help: "Commands handled, by command and outcome code",
		}, []string{"command", "outcome"}),
		CommandDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "preservation_command_duration_seconds",
			Help:    "Duration of preservation commands including the transaction",
			Buckets: durationBuckets,
		}, []string{"command"}),
		DueIndexFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "preservation_due_index_fallbacks_total",
			Help: "Due queries answered by scanning the tag store instead of the due index",
		}),
	}
}

// IncrementPreserved records preserved requirements.
func (m *Metrics) IncrementPreserved(bulk bool, n int) {
	mode := "single"
	if bulk {
		mode = "bulk"
	}
	m.RequirementsPreserved.WithLabelValues(mode).Add(float64(n))
}

func (m *Metrics) IncrementStarted(n int) {
	m.TagsStarted.Add(float64(n))
}

func (m *Metrics) IncrementTransferred(n int) {
	m.TagsTransferred.Add(float64(n))
}

func (m *Metrics) IncrementDueIndexFallback() {
	m.DueIndexFallbacks.Inc()
}

// ObserveCommand records the outcome and duration of a command.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCommand(command, outcome string, start time.Time) {
	m.Commands.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}
