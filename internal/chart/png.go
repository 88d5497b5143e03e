// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders per-year paper counts as a PNG bar chart and as
// horizontal bars in the terminal.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

const (
	xLabel = "Year"
	yLabel = "Number of Academic Papers"

	plotWidth  = 12 * vg.Inch
	plotHeight = 8 * vg.Inch

	maxBarWidth = 40
	minBarWidth = 2
)

var (
	barFill    = color.RGBA{R: 144, G: 238, B: 144, A: 255}
	barOutline = color.RGBA{G: 100, A: 255}

	errNoCounts = errors.New("no counts to plot")
)

// RenderPNG draws one bar per year with the count above each bar and saves
// the image to path. Errors are wrapped in apperr.ErrExport.
func RenderPNG(path, title string, counts []types.YearCount) error {
	p, err := barPlot(title, counts)
	if err != nil {
		return apperr.Export(path, err)
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return apperr.Export(path, err)
	}
	return nil
}

func barPlot(title string, counts []types.YearCount) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, errNoCounts
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	values := make(plotter.Values, len(counts))
	years := make([]string, len(counts))
	peak := 0
	for i, yc := range counts {
		values[i] = float64(yc.Count)
		years[i] = fmt.Sprint(yc.Year)
		peak = max(peak, yc.Count)
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(counts)))
	if err != nil {
		return nil, fmt.Errorf("building bars: %w", err)
	}
	bars.Color = barFill
	bars.LineStyle.Color = barOutline

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil

	labels, err := valueLabels(counts, peak)
	if err != nil {
		return nil, fmt.Errorf("building labels: %w", err)
	}

	p.Add(grid, bars, labels)
	p.NominalX(years...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// barWidth shrinks bars as the range grows so they never overlap.
func barWidth(n int) vg.Length {
	w := vg.Length(600 / n)
	return vg.Points(float64(min(max(w, minBarWidth), maxBarWidth)))
}

func valueLabels(counts []types.YearCount, peak int) (*plotter.Labels, error) {
	offset := math.Max(float64(peak)*0.01, 0.5)
	xys := make(plotter.XYs, len(counts))
	strs := make([]string, len(counts))
	for i, yc := range counts {
		xys[i] = plotter.XY{X: float64(i), Y: float64(yc.Count) + offset}
		strs[i] = humanize.Comma(int64(yc.Count))
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: strs})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
	}
	return l, nil
}
