package main

import (
	"fmt"
	"time"

	"github.com/philly/looper/internal/server"
	"github.com/spf13/cobra"
)

// newRootCmd builds the looperd command tree. Flags override the matching
// environment variables only when set.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "looperd",
		Short: "Run an event loop fed by the console and an admin API",
		Long: "looperd runs a single event loop. Key presses on stdin and POST " +
			"/api/v1/events/{name} requests are marshalled onto it; press q or " +
			"POST /api/v1/loop/quit to drain the queue and exit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := server.InitializeApp(cmd.Context(), cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}

	flags := root.Flags()
	flags.String("addr", "127.0.0.1:8080", "Admin API listen address; non-loopback requires --jwks-endpoint (SERVER_ADDRESS)")
	flags.String("env", "development", "Environment: development|production (ENVIRONMENT)")
	flags.String("log-level", "info", "Log level: debug|info|warn|error (LOG_LEVEL)")
	flags.Duration("shutdown-timeout", 10*time.Second, "Admin server shutdown timeout (SHUTDOWN_TIMEOUT)")
	flags.Bool("console", true, "Read key events from stdin (CONSOLE_ENABLED)")
	flags.Bool("admin", true, "Serve the admin API (ADMIN_ENABLED)")
	flags.String("jwks-endpoint", "", "JWKS URL for admin API bearer tokens (JWKS_ENDPOINT)")
	flags.String("jwt-issuer", "", "Expected admin API token issuer (JWT_ISSUER)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the looperd version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), server.Version)
		},
	})

	return root
}
