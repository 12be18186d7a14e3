package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ridge/basics/tlog"
	"go.uber.org/zap"
)

var terminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

// handleSignals returns nil on the first termination signal, so that the
// program shuts down as if the main task finished
func handleSignals(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, terminationSignals...)
	defer signal.Stop(ch)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case sig := <-ch:
		tlog.Get(ctx).Info("Shutting down", zap.Stringer("signal", sig))
		return nil
	}
}
