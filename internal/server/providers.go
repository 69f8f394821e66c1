package server

import (
	"context"

	"github.com/philly/looper/internal/adapters/rest"
	"github.com/philly/looper/internal/adapters/rest/middleware"
	"github.com/philly/looper/internal/platform/logger"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// provideVersion provides the application version
func provideVersion() rest.Version {
	return rest.Version(Version)
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideAuthenticator creates the JWT middleware when a JWKS endpoint is
// configured. Without one the admin API is unauthenticated, which Validate
// only allows on a loopback address.
func provideAuthenticator(ctx context.Context, config Config, log logger.Logger) (rest.Authenticator, error) {
	if !config.AuthEnabled() {
		log.Warn(ctx, "admin API authentication disabled", "address", config.ServerAddress)
		return nil, nil
	}
	jwtMiddleware, err := middleware.NewJWTMiddleware(ctx, config.JWKSEndpoint, config.JWTIssuer)
	if err != nil {
		return nil, err
	}
	return jwtMiddleware, nil
}
