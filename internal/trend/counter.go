// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trend counts papers per calendar year over a year range and
// derives the run summary.
//
// Years are processed one at a time in ascending order with a single request
// in flight. Generic failures are retried a bounded number of times;
// rate-limit responses trigger a cool-down that does not consume an attempt.
// A year that cannot be counted is recorded as zero and never aborts the run.
package trend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/internal/httputil"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

// Backend returns the number of papers matching term in one year.
type Backend interface {
	Count(ctx context.Context, term string, year int) (int, error)
}

// Recorder receives counters for each request and year. The metrics package
// provides the Prometheus implementation.
type Recorder interface {
	ObserveRequest(outcome string)
	ObserveCoolDown()
	ObserveYear(year, count int, failed bool)
}

// Request outcomes passed to Recorder.ObserveRequest.
const (
	OutcomeSuccess     = "success"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string) {}
func (nopRecorder) ObserveCoolDown() {}
func (nopRecorder) ObserveYear(int, int, bool) {}

// Counter runs the year-range loop against a Backend.
type Counter struct {
	backend  Backend
	policy   httputil.Policy
	sleeper  httputil.Sleeper
	pacer    Pacer
	observer Observer
	recorder Recorder
	logger   *slog.Logger
}

// Option customizes a Counter.
type Option func(*Counter)

// WithSleeper replaces the sleeper used for retry delays and cool-downs.
func WithSleeper(s httputil.Sleeper) Option {
	return func(c *Counter) { c.sleeper = s }
}

// WithPacer replaces the pause strategy between years.
func WithPacer(p Pacer) Option {
	return func(c *Counter) { c.pacer = p }
}

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(c *Counter) { c.observer = o }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Counter) { c.recorder = r }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Counter) { c.logger = l }
}

// NewCounter returns a Counter using cfg for retries and pacing. Without
// options it sleeps for real, pauses a random duration in
// [cfg.PauseMin, cfg.PauseMax] between years, and reports no progress.
func NewCounter(b Backend, cfg types.CounterConfig, opts ...Option) *Counter {
	c := &Counter{
		backend: b,
		policy: httputil.Policy{
			MaxAttempts:  cfg.MaxAttempts,
			RetryDelay:   cfg.RetryDelay,
			CoolDown:     cfg.CoolDown,
			MaxCoolDowns: cfg.MaxCoolDowns,
		}.WithDefaults(),
		sleeper:  httputil.ContextSleeper{},
		observer: Quiet{},
		recorder: nopRecorder{},
		logger:   slog.Default().With("component", "trend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pacer == nil {
		c.pacer = NewRandomPacer(cfg.PauseMin, cfg.PauseMax, c.sleeper)
	}
	return c
}

// CountByYear returns one YearCount per year of q in ascending order.
//
// The only error is an interruption through ctx, which discards the counts
// collected so far and wraps apperr.ErrInterrupted.
func (c *Counter) CountByYear(ctx context.Context, q types.Query) ([]types.YearCount, error) {
	results := make([]types.YearCount, 0, q.Years())

	for year := q.StartYear; year <= q.EndYear; year++ {
		if year > q.StartYear {
			if err := c.pacer.Pause(ctx); err != nil {
				return nil, interrupted(year, err)
			}
		}

		yc, err := c.countYear(ctx, q.Term, year)
		if err != nil {
			return nil, interrupted(year, err)
		}
		results = append(results, yc)
		c.recorder.ObserveYear(yc.Year, yc.Count, yc.Failed)
	}
	return results, nil
}

// countYear returns an error only when ctx is done.
func (c *Counter) countYear(ctx context.Context, term string, year int) (types.YearCount, error) {
	c.observer.YearStarted(year)
	log := c.logger.With("year", year)

	var total int
	err := httputil.Do(ctx, c.policy, c.sleeper, func(e httputil.Event) {
		switch e.Kind {
		case httputil.EventRateLimited:
			c.recorder.ObserveCoolDown()
			log.Warn("rate limited, cooling down", "cool_downs", e.CoolDowns, "delay", e.Delay, "error", e.Err)
			c.observer.RateLimited(year, e)
		case httputil.EventRetrying:
			log.Warn("request failed, retrying", "attempt", e.Attempt, "max_attempts", e.MaxAttempts, "delay", e.Delay, "error", e.Err)
			c.observer.Retrying(year, e)
		}
	}, func(ctx context.Context) error {
		n, err := c.backend.Count(ctx, term, year)
		switch {
		case err == nil:
			c.recorder.ObserveRequest(OutcomeSuccess)
		case errors.Is(err, httputil.ErrRateLimited):
			c.recorder.ObserveRequest(OutcomeRateLimited)
		default:
			c.recorder.ObserveRequest(OutcomeError)
		}
		if err != nil {
			return err
		}
		total = n
		return nil
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.YearCount{}, ctxErr
	}
	if err != nil {
		log.Error("year failed, recording zero", "error", err)
		c.observer.YearFailed(year, c.policy.MaxAttempts, err)
		return types.YearCount{Year: year, Count: 0, Failed: true}, nil
	}

	log.Debug("year counted", "count", total)
	c.observer.YearCounted(year, total)
	return types.YearCount{Year: year, Count: total}, nil
}

func interrupted(year int, err error) error {
	return fmt.Errorf("%w while counting %d: %w", apperr.ErrInterrupted, year, err)
}
