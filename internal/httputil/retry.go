// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retry policy and response classification
// used for requests to the search API.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	defaultMaxAttempts  = 3
	defaultMaxCoolDowns = 10
)

// ErrCoolDownExhausted is returned by Do when the service keeps answering
// with rate-limit responses after MaxCoolDowns waits.
var ErrCoolDownExhausted = errors.New("rate limit cool-down budget exhausted")

// Policy configures Do.
//
// Generic failures consume one of MaxAttempts attempts and are followed by
// RetryDelay. Rate-limit failures are followed by CoolDown and do not consume
// an attempt. When MaxAttempts is 0 the default (3) is used; when
// MaxCoolDowns is 0 the default (10) is used and a negative value removes
// the bound.
type Policy struct {
	MaxAttempts  int
	RetryDelay   time.Duration
	CoolDown     time.Duration
	MaxCoolDowns int
}

// WithDefaults returns p with zero counts replaced by their defaults and
// negative delays clamped to zero.
func (p Policy) WithDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.MaxCoolDowns == 0 {
		p.MaxCoolDowns = defaultMaxCoolDowns
	}
	if p.RetryDelay < 0 {
		p.RetryDelay = 0
	}
	if p.CoolDown < 0 {
		p.CoolDown = 0
	}
	return p
}

// EventKind identifies a retry decision reported to the notify callback.
type EventKind int

const (
	// EventRetrying follows a generic failure that still has attempts left.
	EventRetrying EventKind = iota
	// EventRateLimited follows a rate-limit response, before the cool-down.
	EventRateLimited
)

// Event describes one retry decision taken by Do.
type Event struct {
	Kind EventKind

	// Attempt is the 1-based attempt that just failed.
	Attempt     int
	MaxAttempts int

	// CoolDowns counts rate-limit waits so far, including this one.
	CoolDowns int

	// Delay is the wait about to start.
	Delay time.Duration
	Err   error
}

// Do calls fn until it succeeds, the attempt budget is spent, the cool-down
// budget is spent, or ctx is done. notify may be nil.
//
// After the final failed attempt Do returns immediately without sleeping; the
// returned error wraps the last error from fn. If ctx is cancelled during a
// wait, Do returns ctx.Err().
func Do(ctx context.Context, p Policy, s Sleeper, notify func(Event), fn func(context.Context) error) error {
	p = p.WithDefaults()
	if s == nil {
		s = ContextSleeper{}
	}
	if notify == nil {
		notify = func(Event) {}
	}

	attempt, coolDowns := 1, 0
	for {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if errors.Is(err, ErrRateLimited) {
			if p.MaxCoolDowns > 0 && coolDowns >= p.MaxCoolDowns {
				return fmt.Errorf("%w after %d waits: %w", ErrCoolDownExhausted, coolDowns, err)
			}
			coolDowns++
			notify(Event{
				Kind:        EventRateLimited,
				Attempt:     attempt,
				MaxAttempts: p.MaxAttempts,
				CoolDowns:   coolDowns,
				Delay:       p.CoolDown,
				Err:         err,
			})
			if err := s.Sleep(ctx, p.CoolDown); err != nil {
				return err
			}
			continue
		}

		if attempt >= p.MaxAttempts {
			return fmt.Errorf("all %d attempts failed: %w", p.MaxAttempts, err)
		}
		notify(Event{
			Kind:        EventRetrying,
			Attempt:     attempt,
			MaxAttempts: p.MaxAttempts,
			CoolDowns:   coolDowns,
			Delay:       p.RetryDelay,
			Err:         err,
		})
		if err := s.Sleep(ctx, p.RetryDelay); err != nil {
			return err
		}
		attempt++
	}
}
