// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs one keyword analysis end to end: count papers per
// year, write the exports, render the chart, and report the summary.
//
// Steps run in a fixed order. The CSV is written before anything else that
// touches disk, so an unwritable destination stops the run with no chart,
// workbook, or summary file produced.
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/internal/chart"
	"github.com/pdiddy/keyword-trends/internal/export"
	"github.com/pdiddy/keyword-trends/internal/logger"
	"github.com/pdiddy/keyword-trends/internal/trend"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

// YearCounter produces the per-year sequence for a query.
type YearCounter interface {
	CountByYear(ctx context.Context, q types.Query) ([]types.YearCount, error)
}

// MetricsWriter persists run metrics. The metrics package provides the
// Prometheus textfile implementation.
type MetricsWriter interface {
	WriteTextfile(path string, finished time.Time) error
}

// Deps holds the collaborators for Run.
type Deps struct {
	Counter YearCounter

	// Metrics is written when OutputConfig.MetricsFile is set. May be nil.
	Metrics MetricsWriter

	// Out receives the terminal chart and the summary block. Defaults to
	// os.Stdout.
	Out io.Writer

	// Now stamps the metrics file. Defaults to time.Now.
	Now func() time.Time
}

// Run counts q and writes the outputs selected by cfg. The returned summary
// names every file written.
func Run(ctx context.Context, d Deps, q types.Query, cfg types.OutputConfig) (types.Summary, error) {
	log := logger.WithComponent(logger.FromContext(ctx), "analyze")
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.Summary{}, apperr.Export(dir, err)
	}

	if cfg.Verbose {
		fmt.Fprintf(out, "Analyzing %q from %d to %d (%d years)\n", q.Term, q.StartYear, q.EndYear, q.Years())
	}
	log.Info("starting analysis", "term", q.Term, "start_year", q.StartYear, "end_year", q.EndYear)

	counts, err := d.Counter.CountByYear(ctx, q)
	if err != nil {
		return types.Summary{}, err
	}

	s := trend.Summarize(counts)
	s.RunID = logger.RunID(ctx)
	s.Term = q.Term
	s.StartYear = q.StartYear
	s.EndYear = q.EndYear

	paths := export.PathsFor(dir, q.Term, q.StartYear, q.EndYear, export.SummaryExt(cfg.SummaryFormat))

	if err := export.WriteCSV(paths.CSV, counts); err != nil {
		return s, err
	}
	s.CSVFile = paths.CSV
	log.Info("wrote csv", "path", paths.CSV, "rows", len(counts))
	if cfg.Verbose {
		fmt.Fprintf(out, "Results saved to %s\n", paths.CSV)
	}

	if cfg.XLSX {
		if err := export.WriteXLSX(paths.XLSX, q.Term, counts); err != nil {
			return s, err
		}
		s.XLSXFile = paths.XLSX
		log.Info("wrote workbook", "path", paths.XLSX)
		if cfg.Verbose {
			fmt.Fprintf(out, "Workbook saved to %s\n", paths.XLSX)
		}
	}

	title := export.ChartTitle(q.Term)
	if cfg.Chart && len(counts) > 0 {
		if err := chart.RenderPNG(paths.Chart, title, counts); err != nil {
			return s, err
		}
		s.ChartFile = paths.Chart
		log.Info("wrote chart", "path", paths.Chart)
		if cfg.Verbose {
			fmt.Fprintf(out, "Chart saved to %s\n", paths.Chart)
		}
	}
	if cfg.Display && len(counts) > 0 {
		fmt.Fprintln(out)
		if err := chart.Display(out, title, counts); err != nil {
			log.Warn("terminal display failed", "error", err)
		}
	}

	if cfg.SummaryFormat != types.SummaryNone {
		if err := export.WriteSummary(paths.Summary, s, cfg.SummaryFormat); err != nil {
			return s, err
		}
		log.Info("wrote summary", "path", paths.Summary)
	}

	if cfg.MetricsFile != "" && d.Metrics != nil {
		if err := d.Metrics.WriteTextfile(cfg.MetricsFile, now()); err != nil {
			return s, apperr.Export(cfg.MetricsFile, err)
		}
		log.Info("wrote metrics", "path", cfg.MetricsFile)
	}

	if cfg.Verbose {
		PrintSummary(out, s)
	}
	return s, nil
}

// PrintSummary writes the human-readable summary block.
func PrintSummary(w io.Writer, s types.Summary) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "Analysis Summary:")
	fmt.Fprintf(w, "Total papers found: %s\n", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(w, "Average papers per year: %s\n", humanize.Comma(int64(s.Average+0.5)))
	if s.Peak != nil {
		fmt.Fprintf(w, "Peak year: %d with %s papers\n", s.Peak.Year, humanize.Comma(int64(s.Peak.Count)))
	}
	if len(s.FailedYears) > 0 {
		years := make([]string, len(s.FailedYears))
		for i, y := range s.FailedYears {
			years[i] = fmt.Sprint(y)
		}
		fmt.Fprintf(w, "Years recorded as 0 after failed requests: %s\n", strings.Join(years, ", "))
	}
	fmt.Fprintln(w, rule)
}
