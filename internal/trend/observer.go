// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/keyword-trends/internal/httputil"
)

// Observer receives advisory progress events from the counter. Events carry
// no control-flow significance.
type Observer interface {
	YearStarted(year int)
	YearCounted(year, count int)
	Retrying(year int, e httputil.Event)
	RateLimited(year int, e httputil.Event)
	YearFailed(year, attempts int, err error)
}

// Quiet discards all progress events.
type Quiet struct{}

func (Quiet) YearStarted(int) {}
func (Quiet) YearCounted(int, int) {}
func (Quiet) Retrying(int, httputil.Event) {}
func (Quiet) RateLimited(int, httputil.Event) {}
func (Quiet) YearFailed(int, int, error) {}

// ProgressWriter prints one human-readable line per event to W.
type ProgressWriter struct {
	W io.Writer
}

func (p ProgressWriter) YearStarted(year int) {
	fmt.Fprintf(p.W, "Searching for papers in %d...\n", year)
}

func (p ProgressWriter) YearCounted(year, count int) {
	fmt.Fprintf(p.W, "Found %s papers in %d\n", humanize.Comma(int64(count)), year)
}

func (p ProgressWriter) Retrying(year int, e httputil.Event) {
	fmt.Fprintf(p.W, "  warning: %v\n", e.Err)
	fmt.Fprintf(p.W, "Retrying %d (attempt %d/%d) in %v...\n", year, e.Attempt+1, e.MaxAttempts, e.Delay)
}

func (p ProgressWriter) RateLimited(year int, e httputil.Event) {
	fmt.Fprintf(p.W, "Rate limited by Semantic Scholar API while counting %d. Waiting %v...\n", year, e.Delay)
}

func (p ProgressWriter) YearFailed(year, attempts int, err error) {
	fmt.Fprintf(p.W, "Could not get results for %d after %d attempts (%v); recording 0\n", year, attempts, err)
}
