// Package console feeds keyboard input into the event bus.
//
// Handlers are registered on the run loop thread; Pump reads input on its
// own producer thread, so every key press is marshalled onto the loop.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/events"
	"github.com/philly/looper/internal/platform/logger"
)

// Bus is the part of the dispatcher the console needs.
type Bus interface {
	On(ctx context.Context, name string, handler any) error
	Emit(ctx context.Context, name string, args ...any) error
	Quit()
}

// Console prints key events from the loop and pumps input into the bus.
type Console struct {
	bus    Bus
	in     io.Reader
	out    io.Writer
	logger logger.Logger
}

// New creates a console reading from in and printing to out.
func New(bus Bus, in io.Reader, out io.Writer, log logger.Logger) *Console {
	return &Console{bus: bus, in: in, out: out, logger: log}
}

// Register installs the key handlers. loopCtx must be the run loop's thread
// context so the handlers execute inside Run.
func (c *Console) Register(loopCtx context.Context) error {
	if err := c.bus.On(loopCtx, events.KeyEnter, func() {
		fmt.Fprintln(c.out, "loop: enter pressed")
	}); err != nil {
		return fmt.Errorf("register %s: %w", events.KeyEnter, err)
	}
	if err := c.bus.On(loopCtx, events.Key, func(r rune) {
		fmt.Fprintf(c.out, "loop: pressed %c\n", r)
	}); err != nil {
		return fmt.Errorf("register %s: %w", events.Key, err)
	}
	return nil
}

// Pump reads runes until EOF, ctx cancellation or the quit key. Newlines
// emit KeyEnter, the quit key stops the loop, anything else emits Key.
// Pump runs on a thread of its own, never the loop's.
func (c *Console) Pump(ctx context.Context) error {
	ctx = affinity.NewThread(ctx)
	r := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ch, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			c.logger.Debug(ctx, "console input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read console input: %w", err)
		}

		switch ch {
		case events.Quit:
			c.logger.Info(ctx, "quit requested from console")
			c.bus.Quit()
			return nil
		case '\n':
			err = c.bus.Emit(ctx, events.KeyEnter)
		case '\r':
			continue
		default:
			err = c.bus.Emit(ctx, events.Key, ch)
		}
		if err != nil {
			return fmt.Errorf("emit key: %w", err)
		}
	}
}
