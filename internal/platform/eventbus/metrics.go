package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	modeInline = "inline"
	modeQueued = "queued"

	outcomeOK    = "ok"
	outcomeError = "error"
	outcomePanic = "panic"

	// unregisteredEvent labels emits that found no handler, so names that
	// were never registered do not each get a series.
	unregisteredEvent = "<unregistered>"
)

var (
	emitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "emits_total",
			Help:      "Total number of Emit calls",
		},
		[]string{"event"},
	)

	dispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "dispatched_total",
			Help:      "Handler dispatches by mode (inline or queued)",
		},
		[]string{"event", "mode"},
	)

	mismatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "argument_mismatches_total",
			Help:      "Emit calls rejected for a mismatched argument list",
		},
		[]string{"event"},
	)

	executedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "executed_total",
			Help:      "Handler executions by outcome",
		},
		[]string{"event", "outcome"},
	)

	droppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "dropped_total",
			Help:      "Queued calls dropped because the run loop had stopped",
		},
		[]string{"event"},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "queue_depth",
			Help:      "Calls waiting in run loop queues",
		},
	)

	handlerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "handler_duration_seconds",
			Help:      "Duration of handler executions in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"event"},
	)

	queueWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "looper",
			Subsystem: "eventbus",
			Name:      "queue_wait_seconds",
			Help:      "Time a call spent queued before the run loop executed it",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		emitsTotal,
		dispatchedTotal,
		mismatchesTotal,
		executedTotal,
		droppedTotal,
		queueDepth,
		handlerDuration,
		queueWait,
	)
}
