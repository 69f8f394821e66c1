package eventbus

import (
	"context"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/philly/looper/internal/platform/logger"
)

// PanicHandler is called with the recovered value when a queued handler
// panics inside Run. The loop keeps running afterwards.
type PanicHandler func(ctx context.Context, event string, recovered any)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPanicHandler replaces the default panic handler, which logs the panic
// with its stack.
func WithPanicHandler(h PanicHandler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.panicHandler = h
		}
	}
}

// WithID sets the dispatcher id used in logs.
func WithID(id uuid.UUID) Option {
	return func(d *Dispatcher) {
		if id != uuid.Nil {
			d.id = id
		}
	}
}

func logPanics(log logger.Logger) PanicHandler {
	return func(ctx context.Context, event string, recovered any) {
		log.Error(ctx, "event handler panicked",
			"event", event,
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
	}
}
