// Package tcontext contains context helpers
package tcontext

import (
	"context"
	"time"
)

// Reopen returns a context carrying the values of ctx but detached from its
// cancelation and deadline. It works even on an already closed context.
func Reopen(ctx context.Context) context.Context {
	return reopened{Context: ctx}
}

type reopened struct {
	context.Context //nolint:containedctx // wraps a context by definition
}

func (reopened) Deadline() (time.Time, bool) {
	return time.Time{}, false
}

func (reopened) Done() <-chan struct{} {
	return nil
}

func (reopened) Err() error {
	return nil
}
