package eventbus

import (
	"github.com/google/wire"
	"github.com/philly/looper/internal/platform/logger"
)

// ProviderSet is the wire provider set for the event bus.
var ProviderSet = wire.NewSet(NewDispatcher)

// NewDispatcher builds a Dispatcher with default options.
func NewDispatcher(log logger.Logger) *Dispatcher {
	return New(log)
}
