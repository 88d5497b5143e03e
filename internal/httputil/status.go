// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRateLimited matches any error caused by an HTTP 429 response.
var ErrRateLimited = errors.New("rate limited")

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int

	// RetryAfter is the raw Retry-After header, if any.
	RetryAfter string
}

func (e *StatusError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("HTTP %d (retry-after %s)", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Is reports a 429 StatusError as ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// CheckStatus returns nil for 2xx responses and a *StatusError otherwise. For
// non-2xx responses the body is drained so the connection can be reused; the
// caller still closes it.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	io.Copy(io.Discard, resp.Body)
	return &StatusError{
		StatusCode: resp.StatusCode,
		RetryAfter: resp.Header.Get("Retry-After"),
	}
}

// Sleeper blocks for a duration. Tests substitute an implementation that
// records the requested waits and returns at once.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// ContextSleeper waits on a timer and returns early with ctx.Err() when ctx
// is done.
type ContextSleeper struct{}

// Sleep implements Sleeper.
func (ContextSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
