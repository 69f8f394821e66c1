//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/looper/internal/adapters/rest"
	"github.com/philly/looper/internal/console"
	"github.com/philly/looper/internal/platform/eventbus"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/spf13/pflag"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context, flags *pflag.FlagSet) (*App, error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,
		logger.ProviderSet,

		// Event bus and its producers
		eventbus.ProviderSet,
		console.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion, // Provide version string for HealthHandler
		provideAuthenticator,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil
}
