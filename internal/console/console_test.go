package console_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/philly/looper/internal/console"
	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/eventbus"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the loop goroutine write while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestConsole_PumpMarshalsKeysOntoLoop(t *testing.T) {
	bus := eventbus.New(logger.Nop{})
	out := &syncBuffer{}
	c := console.New(bus, strings.NewReader("hi\nq ignored"), out, logger.Nop{})

	loop := affinity.NewThread(context.Background())
	require.NoError(t, c.Register(loop))

	// Nothing is printed before the loop runs: every key is queued.
	require.NoError(t, c.Pump(context.Background()))
	assert.Empty(t, out.String())
	assert.Equal(t, 3, bus.Stats().Pending)

	// The quit key already requested a stop, so Run drains and returns.
	require.NoError(t, bus.Run(loop))

	assert.Equal(t, "loop: pressed h\nloop: pressed i\nloop: enter pressed\n", out.String())
	assert.Equal(t, eventbus.StateStopped, bus.State())
}

func TestConsole_PumpStopsAtEOF(t *testing.T) {
	bus := eventbus.New(logger.Nop{})
	c := console.New(bus, strings.NewReader("ab\r\n"), &syncBuffer{}, logger.Nop{})
	require.NoError(t, c.Register(affinity.NewThread(context.Background())))

	require.NoError(t, c.Pump(context.Background()))

	assert.Equal(t, 3, bus.Stats().Pending)
	assert.Equal(t, eventbus.StateRunning, bus.State())
}

func TestConsole_PumpHonoursCancellation(t *testing.T) {
	bus := eventbus.New(logger.Nop{})
	c := console.New(bus, strings.NewReader("abc"), &syncBuffer{}, logger.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Pump(ctx), context.Canceled)
	assert.Zero(t, bus.Stats().Emitted)
}

func TestConsole_RegisterRequiresThread(t *testing.T) {
	bus := eventbus.New(logger.Nop{})
	c := console.New(bus, strings.NewReader(""), &syncBuffer{}, logger.Nop{})

	err := c.Register(context.Background())
	assert.ErrorIs(t, err, eventbus.ErrNoThread)
}
