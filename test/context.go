// Package test contains helpers for tests
package test

import (
	"context"
	"testing"
	"time"

	"github.com/ridge/basics/tlog"
)

// Context returns a context carrying a verbose logger named after the test,
// which is what run.Tool would provide in production
func Context(t *testing.T) context.Context {
	return tlog.WithLogger(context.Background(), tlog.NewForTesting(t))
}

// ContextWithTimeout is Context that closes with context.DeadlineExceeded
// after the timeout
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(Context(t), timeout)
	t.Cleanup(cancel)
	return ctx
}
