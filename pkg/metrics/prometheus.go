package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	AssignmentsCreated prometheus.Counter
	PatrolsStarted     prometheus.Counter
	PatrolsCompleted   prometheus.Counter
	PatrolsCancelled   prometheus.Counter
	PatrolsRestarted   prometheus.Counter
	CheckpointEvents   *prometheus.CounterVec
	PatrolDuration     prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AssignmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "The total number of patrol assignments created",
		}),
		PatrolsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patrols_started_total",
			Help:      "The total number of patrol sessions started",
		}),
		PatrolsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patrols_completed_total",
			Help:      "The total number of patrol sessions completed",
		}),
		PatrolsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patrols_cancelled_total",
			Help:      "The total number of patrol sessions cancelled",
		}),
		PatrolsRestarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patrols_restarted_total",
			Help:      "The total number of abandoned patrol sessions restarted",
		}),
		CheckpointEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoint_events_total",
			Help:      "The total number of checkpoint visit events",
		}, []string{"event"}),
		PatrolDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "patrol_duration_minutes",
			Help:      "Total duration of completed patrols in minutes",
			Buckets:   []float64{5, 15, 30, 60, 120, 240, 480},
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
