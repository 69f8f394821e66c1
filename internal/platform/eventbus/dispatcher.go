package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/philly/looper/internal/platform/signature"
)

// Dispatcher registers handlers, emits events and runs the loop that
// executes calls marshalled from other threads.
//
// On, UnregisterEvent, Emit and Quit are safe for concurrent use, including
// while Run is executing. The handler table and the call queue have separate
// locks and are never held together.
type Dispatcher struct {
	id           uuid.UUID
	logger       logger.Logger
	panicHandler PanicHandler

	events *table
	calls  *callQueue

	quitting atomic.Bool
	quit     chan struct{}
	quitOnce sync.Once
	running  atomic.Bool
	stopped  atomic.Bool

	stats counters
}

type counters struct {
	emitted    atomic.Uint64
	inline     atomic.Uint64
	queued     atomic.Uint64
	executed   atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
	mismatches atomic.Uint64
	dropped    atomic.Uint64
}

// New creates a dispatcher in the Running state. Calls emitted before Run is
// first entered wait in the queue.
func New(log logger.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = logger.Nop{}
	}
	d := &Dispatcher{
		id:           uuid.New(),
		logger:       log,
		panicHandler: logPanics(log),
		events:       newTable(),
		calls:        newCallQueue(),
		quit:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID identifies the dispatcher in logs.
func (d *Dispatcher) ID() uuid.UUID { return d.id }

// On registers handler for name, owned by the thread carried by ctx.
// Registering the same handler twice yields two invocations per emit.
func (d *Dispatcher) On(ctx context.Context, name string, handler any) error {
	owner, ok := affinity.FromContext(ctx)
	if !ok {
		return ErrNoThread.Clone()
	}
	slot, err := newSlot(owner, handler)
	if err != nil {
		return invalidHandlerError(err)
	}

	n := d.events.add(name, slot)
	d.logger.Debug(ctx, "event handler registered",
		"dispatcher", d.id,
		"event", name,
		"signature", slot.Signature().String(),
		"owner", owner.String(),
		"handlers", n,
	)
	return nil
}

// UnregisterEvent removes every handler registered for name. Calls already
// queued for those handlers still run.
func (d *Dispatcher) UnregisterEvent(name string) {
	if n := d.events.remove(name); n > 0 {
		d.logger.Debug(context.Background(), "event unregistered",
			"dispatcher", d.id,
			"event", name,
			"handlers", n,
		)
	}
}

// Emit calls every handler registered for name, in registration order.
// Handlers owned by the calling thread run before Emit returns; the others
// are queued for the run loop with a snapshot of args.
//
// If a handler cannot take args, Emit stops at that handler and returns an
// error matching ErrArgumentMismatch. Handlers earlier in the list have
// already been dispatched by then. Errors returned by handlers are logged,
// not returned. Emitting a name with no handlers does nothing.
func (d *Dispatcher) Emit(ctx context.Context, name string, args ...any) error {
	d.stats.emitted.Add(1)

	slots := d.events.handlersFor(name)
	if len(slots) == 0 {
		emitsTotal.WithLabelValues(unregisteredEvent).Inc()
		return nil
	}
	emitsTotal.WithLabelValues(name).Inc()

	emitted := signature.ForArgs(args)
	caller, _ := affinity.FromContext(ctx)

	for _, slot := range slots {
		thunk, ok := slot.Recover(emitted, args)
		if !ok {
			d.stats.mismatches.Add(1)
			mismatchesTotal.WithLabelValues(name).Inc()
			d.logger.Warn(ctx, "event handler signature mismatch",
				"dispatcher", d.id,
				"event", name,
				"expected", slot.Signature().String(),
				"got", emitted.String(),
			)
			return mismatchError(name, slot.Signature(), emitted)
		}

		if affinity.Same(slot.Owner(), caller) {
			d.stats.inline.Add(1)
			dispatchedTotal.WithLabelValues(name, modeInline).Inc()
			d.invoke(ctx, name, thunk)
			continue
		}
		d.enqueue(ctx, name, thunk)
	}
	return nil
}

func (d *Dispatcher) enqueue(ctx context.Context, name string, thunk Thunk) {
	// Counted before the push so the loop can never decrement first.
	queueDepth.Inc()
	if !d.calls.push(queuedCall{event: name, thunk: thunk, queuedAt: time.Now()}) {
		queueDepth.Dec()
		d.stats.dropped.Add(1)
		droppedTotal.WithLabelValues(name).Inc()
		d.logger.Warn(ctx, "run loop stopped, dropping queued call",
			"dispatcher", d.id,
			"event", name,
		)
		return
	}
	d.stats.queued.Add(1)
	dispatchedTotal.WithLabelValues(name, modeQueued).Inc()
}

// invoke runs thunk on the current goroutine and records the outcome.
// Panics are not recovered here.
func (d *Dispatcher) invoke(ctx context.Context, name string, thunk Thunk) {
	start := time.Now()
	err := thunk(ctx)
	handlerDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	d.stats.executed.Add(1)

	if err != nil {
		d.stats.failed.Add(1)
		executedTotal.WithLabelValues(name, outcomeError).Inc()
		d.logger.Error(ctx, "event handler failed", "event", name, "error", err)
		return
	}
	executedTotal.WithLabelValues(name, outcomeOK).Inc()
}

// Events lists the registered names, sorted.
func (d *Dispatcher) Events() []EventInfo {
	return d.events.names()
}
