package console

import (
	"os"

	"github.com/google/wire"
	"github.com/philly/looper/internal/platform/eventbus"
	"github.com/philly/looper/internal/platform/logger"
)

// ProviderSet is the wire provider set for the stdin console.
var ProviderSet = wire.NewSet(NewStdio)

// NewStdio wires the console to the process's stdin and stdout.
func NewStdio(bus *eventbus.Dispatcher, log logger.Logger) *Console {
	return New(bus, os.Stdin, os.Stdout, log)
}
