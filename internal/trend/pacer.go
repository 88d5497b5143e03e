// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pdiddy/keyword-trends/internal/httputil"
)

// Pacer waits between consecutive years to stay under the remote rate limit.
type Pacer interface {
	Pause(ctx context.Context) error
}

// RandomPacer pauses for a duration drawn uniformly from [Min, Max].
type RandomPacer struct {
	Min, Max time.Duration

	sleeper httputil.Sleeper
	float   func() float64
}

// NewRandomPacer returns a RandomPacer sleeping through s. If max < min the
// pause is always min.
func NewRandomPacer(min, max time.Duration, s httputil.Sleeper) *RandomPacer {
	if s == nil {
		s = httputil.ContextSleeper{}
	}
	return &RandomPacer{Min: min, Max: max, sleeper: s, float: rand.Float64}
}

// Delay draws the next pause duration.
func (p *RandomPacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(p.float()*float64(p.Max-p.Min))
}

// Pause implements Pacer.
func (p *RandomPacer) Pause(ctx context.Context) error {
	return p.sleeper.Sleep(ctx, p.Delay())
}

// NoPause is a Pacer that returns at once unless ctx is done.
type NoPause struct{}

// Pause implements Pacer.
func (NoPause) Pause(ctx context.Context) error { return ctx.Err() }
