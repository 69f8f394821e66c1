// Package eventbus is an in-process event bus with thread affinity.
//
// Handlers are registered under a name from a thread context (see package
// affinity) and only ever run on that thread. Emitting from the owning
// thread runs the handler inline before Emit returns; emitting from any other
// thread queues a call that the loop owner executes inside Run.
//
//	loop := affinity.NewThread(ctx)
//	_ = bus.On(loop, "tick", func(n int) { ... })
//	go func() { _ = bus.Run(loop) }()
//
//	// from another goroutine: queued, runs inside Run
//	_ = bus.Emit(affinity.NewThread(ctx), "tick", 5)
//
// Handlers take any fixed argument list, optionally preceded by a
// context.Context, and return nothing or an error. Emit checks the emitted
// argument types against every handler for the name and fails with
// ErrArgumentMismatch on the first handler that cannot take them.
//
// Quit stops the loop once the queue has been drained. Cancelling the context
// passed to Run stops it immediately and discards pending calls.
package eventbus
