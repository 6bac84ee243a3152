package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/commedia/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		observability.GetLogger().Error("Command failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
