package eventbus

import (
	"context"
	"encoding"
	"fmt"
	"time"

	"github.com/philly/looper/internal/platform/affinity"
)

// State is the run loop state. A dispatcher starts Running; Stopped is
// terminal.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var _ encoding.TextMarshaler = State(0)

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	State      State  `json:"state"`
	Looping    bool   `json:"looping"`
	Pending    int    `json:"pending"`
	Emitted    uint64 `json:"emitted"`
	Inline     uint64 `json:"inline"`
	Queued     uint64 `json:"queued"`
	Executed   uint64 `json:"executed"`
	Failed     uint64 `json:"failed"`
	Panicked   uint64 `json:"panicked"`
	Mismatches uint64 `json:"mismatches"`
	Dropped    uint64 `json:"dropped"`
}

// Run executes queued calls one at a time, in push order, until Quit is
// observed with an empty queue. It must be called by the loop owner: the
// handlers it executes receive ctx, so ctx should be the owner's thread
// context. A ctx without a thread identity gets a fresh one.
//
// Cancelling ctx stops the loop immediately: pending calls are discarded and
// ctx.Err() is returned. Only one Run may be active at a time, and a stopped
// dispatcher cannot be restarted.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.stopped.Load() {
		return ErrLoopStopped.Clone()
	}
	if !d.running.CompareAndSwap(false, true) {
		return ErrLoopRunning.Clone()
	}
	defer d.running.Store(false)

	if _, ok := affinity.FromContext(ctx); !ok {
		ctx = affinity.NewThread(ctx)
	}

	d.logger.Info(ctx, "run loop started", "dispatcher", d.id, "pending", d.calls.len())
	for {
		if err := ctx.Err(); err != nil {
			return d.abort(ctx, err)
		}

		call, ok, closed := d.calls.next(d.quitting.Load)
		if ok {
			d.execute(ctx, call)
			continue
		}
		if closed {
			d.stopped.Store(true)
			d.logger.Info(ctx, "run loop stopped", "dispatcher", d.id)
			return nil
		}

		select {
		case <-d.calls.ready:
		case <-d.quit:
		case <-ctx.Done():
		}
	}
}

// abort discards everything still queued and stops the loop.
func (d *Dispatcher) abort(ctx context.Context, cause error) error {
	dropped := d.calls.discard()
	d.stopped.Store(true)
	for _, call := range dropped {
		d.stats.dropped.Add(1)
		droppedTotal.WithLabelValues(call.event).Inc()
	}
	queueDepth.Sub(float64(len(dropped)))

	d.logger.Warn(ctx, "run loop cancelled",
		"dispatcher", d.id,
		"dropped", len(dropped),
		"error", cause,
	)
	return cause
}

// execute runs one queued call, recovering a panic so the loop survives it.
func (d *Dispatcher) execute(ctx context.Context, call queuedCall) {
	queueDepth.Dec()
	queueWait.Observe(time.Since(call.queuedAt).Seconds())

	defer func() {
		if r := recover(); r != nil {
			d.stats.executed.Add(1)
			d.stats.panicked.Add(1)
			executedTotal.WithLabelValues(call.event, outcomePanic).Inc()
			d.panicHandler(ctx, call.event, r)
		}
	}()
	d.invoke(ctx, call.event, call.thunk)
}

// Quit asks the loop to stop once the queue is empty. Safe to call from any
// goroutine, any number of times.
func (d *Dispatcher) Quit() {
	d.quitOnce.Do(func() {
		d.quitting.Store(true)
		close(d.quit)
	})
}

// State reports whether the loop has stopped.
func (d *Dispatcher) State() State {
	if d.stopped.Load() {
		return StateStopped
	}
	return StateRunning
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		State:      d.State(),
		Looping:    d.running.Load(),
		Pending:    d.calls.len(),
		Emitted:    d.stats.emitted.Load(),
		Inline:     d.stats.inline.Load(),
		Queued:     d.stats.queued.Load(),
		Executed:   d.stats.executed.Load(),
		Failed:     d.stats.failed.Load(),
		Panicked:   d.stats.panicked.Load(),
		Mismatches: d.stats.mismatches.Load(),
		Dropped:    d.stats.dropped.Load(),
	}
}
