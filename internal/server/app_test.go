package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/philly/looper/internal/adapters/rest"
	"github.com/philly/looper/internal/console"
	"github.com/philly/looper/internal/platform/eventbus"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(config Config, in io.Reader, out io.Writer) (*App, *eventbus.Dispatcher) {
	log := logger.Nop{}
	bus := eventbus.New(log)
	base := rest.NewBaseHandler(log)
	srv := rest.NewServer(
		rest.NewHealthHandler(base, rest.Version("test"), bus),
		rest.NewEventsHandler(base, bus),
		rest.NewLoopHandler(base, bus),
		nil,
	)
	return NewApp(config, bus, console.New(bus, in, out, log), NewHTTPServer(config, srv, log), log), bus
}

func runApp(t *testing.T, app *App) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
		return nil
	}
}

func TestApp_ConsoleQuitKeyStopsApp(t *testing.T) {
	var out bytes.Buffer
	app, bus := newTestApp(Config{
		ConsoleEnabled:  true,
		ShutdownTimeout: time.Second,
	}, strings.NewReader("ab\nq"), &out)

	require.NoError(t, wait(t, runApp(t, app)))

	// Everything emitted before the quit key was drained.
	assert.Equal(t, "loop: pressed a\nloop: pressed b\nloop: enter pressed\n", out.String())
	assert.Equal(t, eventbus.StateStopped, bus.State())
}

func TestApp_QuitShutsDownAdminServer(t *testing.T) {
	app, bus := newTestApp(Config{
		AdminEnabled:    true,
		ServerAddress:   "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}, nil, io.Discard)

	done := runApp(t, app)
	require.Eventually(t, func() bool { return bus.Stats().Looping }, time.Second, time.Millisecond)

	bus.Quit()

	require.NoError(t, wait(t, done))
	assert.ErrorIs(t, app.server.ListenAndServe(), http.ErrServerClosed)
}

func TestApp_CancelQuitsGracefully(t *testing.T) {
	app, bus := newTestApp(Config{ShutdownTimeout: time.Second}, nil, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	require.Eventually(t, func() bool { return bus.Stats().Looping }, time.Second, time.Millisecond)

	cancel()

	require.NoError(t, wait(t, done), "cancellation quits the loop instead of aborting it")
	assert.Equal(t, eventbus.StateStopped, bus.State())
}
