package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/philly/looper/internal/platform/apperror"
	"github.com/philly/looper/internal/platform/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	Environment     string        `mapstructure:"ENVIRONMENT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	ConsoleEnabled  bool          `mapstructure:"CONSOLE_ENABLED"` // Read key events from stdin
	AdminEnabled    bool          `mapstructure:"ADMIN_ENABLED"`   // Serve the admin HTTP API
	JWKSEndpoint    string        `mapstructure:"JWKS_ENDPOINT"`   // JWKS endpoint for admin API tokens; empty disables auth
	JWTIssuer       string        `mapstructure:"JWT_ISSUER"`      // Expected JWT issuer for validation
}

// ErrInvalidConfig is returned by LoadConfig when a value fails validation.
var ErrInvalidConfig = apperror.New(
	apperror.CodeValidationFailed,
	apperror.ReasonInvalidConfig,
	"invalid configuration",
	http.StatusInternalServerError,
)

// flagKeys maps command-line flags onto configuration keys. Flags win over
// the environment only when set explicitly.
var flagKeys = map[string]string{
	"addr":             "SERVER_ADDRESS",
	"env":              "ENVIRONMENT",
	"log-level":        "LOG_LEVEL",
	"shutdown-timeout": "SHUTDOWN_TIMEOUT",
	"console":          "CONSOLE_ENABLED",
	"admin":            "ADMIN_ENABLED",
	"jwks-endpoint":    "JWKS_ENDPOINT",
	"jwt-issuer":       "JWT_ISSUER",
}

// LoadConfig reads .env, the environment and flags, in increasing order of
// precedence. flags may be nil.
func LoadConfig(bootstrapLogger *logger.BootstrapLogger, flags *pflag.FlagSet) (Config, error) {
	ctx := context.Background()

	// Load .env file if it exists (godotenv will find it automatically)
	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", "127.0.0.1:8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("CONSOLE_ENABLED", true)
	v.SetDefault("ADMIN_ENABLED", true)
	v.SetDefault("JWKS_ENDPOINT", "")
	v.SetDefault("JWT_ISSUER", "")

	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := bindFlags(v, flags); err != nil {
		bootstrapLogger.Error(ctx, "failed to bind flags", "error", err)
		return Config{}, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"console", config.ConsoleEnabled,
		"admin", config.AdminEnabled,
		"auth", config.AuthEnabled(),
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks values that viper cannot reject on its own.
func (c Config) Validate() error {
	var errs []error
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.AdminEnabled && c.ServerAddress == "" {
		errs = append(errs, errors.New("SERVER_ADDRESS is required when the admin API is enabled"))
	}
	if c.JWKSEndpoint != "" && c.JWTIssuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER is required when JWKS_ENDPOINT is set"))
	}
	// Without auth anyone who can reach the admin API can quit the loop.
	if c.AdminEnabled && c.ServerAddress != "" && !c.AuthEnabled() && !isLoopback(c.ServerAddress) {
		errs = append(errs, fmt.Errorf("SERVER_ADDRESS %q is not a loopback address; set JWKS_ENDPOINT and JWT_ISSUER to expose the admin API", c.ServerAddress))
	}
	if err := errors.Join(errs...); err != nil {
		return apperror.Wrap(err, ErrInvalidConfig.Code, ErrInvalidConfig.Reason,
			ErrInvalidConfig.Message+": "+err.Error(), ErrInvalidConfig.HTTPStatus)
	}
	return nil
}

// AuthEnabled reports whether admin API tokens are verified.
func (c Config) AuthEnabled() bool {
	return c.JWKSEndpoint != ""
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
