package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/philly/looper/internal/console"
	"github.com/philly/looper/internal/platform/affinity"
	"github.com/philly/looper/internal/platform/eventbus"
	"github.com/philly/looper/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// App owns the run loop and the surfaces that feed it.
type App struct {
	config  Config
	bus     *eventbus.Dispatcher
	console *console.Console
	server  *http.Server
	logger  logger.Logger
}

func NewApp(config Config, bus *eventbus.Dispatcher, console *console.Console, server *http.Server, log logger.Logger) *App {
	return &App{
		config:  config,
		bus:     bus,
		console: console,
		server:  server,
		logger:  log,
	}
}

// Run starts the run loop and the surfaces feeding it, and blocks until the
// loop stops. The loop stops on the console quit key, POST /loop/quit, SIGINT or
// SIGTERM; calls already queued are drained first. The admin server is shut
// down once the loop has returned.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Signals quit the loop gracefully instead of cancelling it.
	loopCtx := affinity.NewThread(context.WithoutCancel(ctx))

	if a.config.ConsoleEnabled {
		if err := a.console.Register(loopCtx); err != nil {
			return fmt.Errorf("register console handlers: %w", err)
		}
	}

	loopDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(loopDone)
		err := a.bus.Run(loopCtx)
		a.logger.Debug(loopCtx, "dispatcher stats", "stats", a.bus.Stats())
		return err
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			a.logger.Info(ctx, "shutting down")
			a.bus.Quit()
		case <-loopDone:
		}
		return nil
	})

	if a.config.AdminEnabled {
		g.Go(func() error {
			a.logger.Info(ctx, "admin server starting", "address", a.server.Addr)
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-loopDone
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.ShutdownTimeout)
			defer cancel()
			if err := a.server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}
			return nil
		})
	}

	if a.config.ConsoleEnabled {
		// Reads block on stdin and cannot be interrupted, so the pump is not
		// part of the group.
		pumpCtx, cancelPump := context.WithCancel(ctx)
		defer cancelPump()
		go func() {
			if err := a.console.Pump(pumpCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn(pumpCtx, "console stopped", "error", err)
			}
		}()
	}

	err := g.Wait()
	a.logger.Info(ctx, "stopped")
	return err
}
