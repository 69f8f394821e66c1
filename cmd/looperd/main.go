package main

import (
	"context"
	"os"

	"github.com/philly/looper/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.NewBootstrapLogger().Error(ctx, "looperd failed", "error", err)
		os.Exit(1)
	}
}
