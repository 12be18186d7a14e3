package retry

import (
	"time"
)

// ExpConfig configures exponential backoff: the delays go Min, Min*Scale,
// Min*Scale^2... up to Max
type ExpConfig struct {
	Min   time.Duration
	Max   time.Duration
	Scale float64

	// MaxAttempts limits the number of attempts; 0 means unlimited
	MaxAttempts int

	// DelayFirst waits Min before the first attempt too
	DelayFirst bool
}

// Delays implements Config
func (ec ExpConfig) Delays() DelayFn {
	backoff := NewExpBackoff(ec)
	attempt := 0
	return func() (time.Duration, bool) {
		attempt++
		if ec.MaxAttempts > 0 && attempt > ec.MaxAttempts {
			return 0, false
		}
		if attempt == 1 && !ec.DelayFirst {
			return 0, true
		}
		return backoff.Backoff(), true
	}
}

// Exponential generates exponentially growing delays for loops that do not fit
// Do, such as redialing inside a dialer
type Exponential struct {
	config ExpConfig
	next   time.Duration
}

// NewExpBackoff creates an Exponential starting at config.Min
func NewExpBackoff(config ExpConfig) *Exponential {
	return &Exponential{config: config, next: config.Min}
}

// Backoff returns the next delay
func (b *Exponential) Backoff() time.Duration {
	d := b.next
	if grown := time.Duration(float64(b.next) * b.config.Scale); grown < b.config.Max {
		b.next = grown
	} else {
		b.next = b.config.Max
	}
	return d
}

// Reset starts over from Min
func (b *Exponential) Reset() {
	b.next = b.config.Min
}
