package rest

import (
	"github.com/google/wire"
	"github.com/philly/looper/internal/platform/eventbus"
)

// Version is the build version reported by the health endpoints.
type Version string

// ProviderSet is the wire provider set for REST handlers
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewHealthHandler,
	NewEventsHandler,
	NewLoopHandler,
	NewServer,
	wire.Bind(new(Bus), new(*eventbus.Dispatcher)),
)
