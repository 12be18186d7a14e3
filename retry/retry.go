package retry

import (
	"context"
	"errors"
	"time"

	"github.com/ridge/basics/tlog"
	"go.uber.org/zap"
)

// DelayFn yields the delay before each attempt, the first one included, and
// ok=false once no attempts are left. The first call must return ok=true.
type DelayFn func() (delay time.Duration, ok bool)

// Config is a retry policy. Every Delays call starts a fresh sequence.
type Config interface {
	Delays() DelayFn
}

// FixedConfig waits TryAfter before the first attempt and RetryAfter before
// every other one, up to MaxAttempts attempts (0 = unlimited)
type FixedConfig struct {
	TryAfter    time.Duration
	RetryAfter  time.Duration
	MaxAttempts int
}

// Delays implements Config
func (c FixedConfig) Delays() DelayFn {
	attempt := 0
	return func() (time.Duration, bool) {
		attempt++
		if attempt == 1 {
			return c.TryAfter, true
		}
		if c.MaxAttempts > 0 && attempt > c.MaxAttempts {
			return 0, false
		}
		return c.RetryAfter, true
	}
}

// ErrRetriable marks an error after which the operation should be retried
type ErrRetriable struct {
	err error
}

func (r ErrRetriable) Error() string {
	return r.err.Error()
}

// Unwrap returns the wrapped error
func (r ErrRetriable) Unwrap() error {
	return r.err
}

// Retriable wraps err to tell Do to try again. Returns nil if err is nil.
func Retriable(err error) error {
	if err == nil {
		return nil
	}
	return ErrRetriable{err: err}
}

// Do calls f until it returns nil or an error not wrapped with Retriable, the
// delays run out, or ctx is closed. When attempts run out, the last retriable
// error is returned unwrapped.
//
// A retriable error is logged at Debug level unless its message repeats the
// previous one.
func Do(ctx context.Context, c Config, f func() error) error {
	a := attempt{logger: tlog.Get(ctx), started: time.Now()}
	delays := c.Delays()
	for ; ; a.n++ {
		delay, ok := delays()
		if !ok {
			if a.n == 0 {
				panic("retry: config allows no attempts")
			}
			a.log("Retry failed after maximum number of attempts", a.last)
			return a.last
		}

		if err := Sleep(ctx, delay); err != nil {
			if a.n > 0 {
				a.log("Retry canceled", err)
			}
			return err
		}

		var r ErrRetriable
		err := f()
		if !errors.As(err, &r) {
			if a.n > 0 {
				a.log("Retry finished", err)
			}
			return err
		}
		// the context closed during the attempt: no point waiting for the next one
		if ctx.Err() != nil && errors.Is(r.err, ctx.Err()) {
			return r.err
		}
		a.retriable(r.err)
	}
}

// attempt tracks a running Do loop for logging
type attempt struct {
	logger  *zap.Logger
	started time.Time
	n       int // attempts made before the current one
	last    error
}

func (a *attempt) log(msg string, err error) {
	a.logger.Debug(msg,
		zap.Int("attempts", a.n+1),
		zap.Error(err),
		zap.Duration("duration", time.Since(a.started)))
}

func (a *attempt) retriable(err error) {
	if a.last == nil || a.last.Error() != err.Error() {
		a.logger.Debug("Will retry", zap.Int("attempts", a.n+1), zap.Error(err))
	}
	a.last = err
}

// DoWithTimeout is Do bounded by a timeout; f receives the bounded context
func DoWithTimeout(ctx context.Context, c Config, timeout time.Duration, f func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return Do(ctx, c, func() error {
		return f(ctx)
	})
}

// Do1 is a single return value version of Do
func Do1[T any](ctx context.Context, c Config, f func() (T, error)) (T, error) {
	var t T
	err := Do(ctx, c, func() error {
		var err error
		t, err = f()
		return err
	})
	return t, err
}

// Do1WithTimeout is a single return value version of DoWithTimeout
func Do1WithTimeout[T any](ctx context.Context, c Config, timeout time.Duration, f func(ctx context.Context) (T, error)) (T, error) {
	var t T
	err := DoWithTimeout(ctx, c, timeout, func(ctx context.Context) error {
		var err error
		t, err = f(ctx)
		return err
	})
	return t, err
}
