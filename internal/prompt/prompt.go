// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt collects a query and run options interactively from a
// reader/writer pair. It works on piped input as well as a terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

// Answers holds everything gathered in one interactive session.
type Answers struct {
	Query     types.Query
	Chart     bool
	Display   bool
	OutputDir string
	Verbose   bool
}

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	now time.Time

	ctx     context.Context
	lines   chan string
	readErr error

	header lipgloss.Style
	label  lipgloss.Style
	errs   lipgloss.Style
}

// New returns a Prompter. now bounds the accepted year range.
func New(in io.Reader, out io.Writer, now time.Time) *Prompter {
	r := lipgloss.NewRenderer(out)
	return &Prompter{
		in:     bufio.NewScanner(in),
		out:    out,
		now:    now,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")),
		label:  r.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		errs:   r.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
}

// Ask runs the full question sequence. Invalid answers are reported and the
// question repeated; end of input aborts with apperr.ErrInvalidInput and
// cancelling ctx aborts with apperr.ErrInterrupted, even while a read is
// pending.
func (p *Prompter) Ask(ctx context.Context) (Answers, error) {
	p.ctx = ctx
	p.lines = make(chan string)
	go p.read(ctx)

	fmt.Fprintln(p.out, p.header.Render("Academic Keyword Analyzer"))
	fmt.Fprintln(p.out, strings.Repeat("=", 50))
	fmt.Fprintln(p.out, "Analyze academic keyword trends using the Semantic Scholar API.")
	fmt.Fprintln(p.out)

	var a Answers
	term, err := p.term()
	if err != nil {
		return Answers{}, err
	}

	maxYear := types.MaxYear(p.now)
	start, err := p.year("Enter start year (e.g., 2020): ", types.MinYear, "2020")
	if err != nil {
		return Answers{}, err
	}
	end, err := p.year("Enter end year (e.g., 2023): ", start, "2023")
	if err != nil {
		return Answers{}, err
	}
	if a.Query, err = types.NewQuery(term, start, end, p.now); err != nil {
		return Answers{}, err
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header.Render("Optional Settings"))
	fmt.Fprintf(p.out, "Press Enter to accept the default (years %d-%d are valid).\n", types.MinYear, maxYear)

	if a.Chart, err = p.confirm("Generate histogram chart? (Y/n): "); err != nil {
		return Answers{}, err
	}
	if a.Chart {
		if a.Display, err = p.confirm("Display the chart in the terminal? (Y/n): "); err != nil {
			return Answers{}, err
		}
	}
	dir, err := p.line("Output directory (press Enter for current directory): ")
	if err != nil {
		return Answers{}, err
	}
	a.OutputDir = dir
	if a.OutputDir == "" {
		a.OutputDir = "."
	}
	if a.Verbose, err = p.confirm("Show progress messages? (Y/n): "); err != nil {
		return Answers{}, err
	}
	return a, nil
}

func (p *Prompter) term() (string, error) {
	for {
		s, err := p.line("Enter the search term to analyze: ")
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		p.complain("Search term cannot be empty. Please try again.")
	}
}

// year repeats the question until it gets an integer in [min, MaxYear].
func (p *Prompter) year(question string, min int, example string) (int, error) {
	for {
		s, err := p.line(question)
		if err != nil {
			return 0, err
		}
		y, err := strconv.Atoi(s)
		if err != nil {
			p.complain(fmt.Sprintf("Please enter a valid year (e.g., %s)", example))
			continue
		}
		if err := types.ValidateYear(y, min, p.now); err != nil {
			p.complain(fmt.Sprintf("Year must be between %d and %d", min, types.MaxYear(p.now)))
			continue
		}
		return y, nil
	}
}

// confirm defaults to yes; only an answer starting with n declines.
func (p *Prompter) confirm(question string) (bool, error) {
	s, err := p.line(question)
	if err != nil {
		return false, err
	}
	return !strings.HasPrefix(strings.ToLower(s), "n"), nil
}

// read feeds input lines to p.lines until input ends or ctx is done. The
// pending Scan cannot be interrupted; it is abandoned when ctx is done.
func (p *Prompter) read(ctx context.Context) {
	defer close(p.lines)
	for p.in.Scan() {
		select {
		case p.lines <- p.in.Text():
		case <-ctx.Done():
			return
		}
	}
	p.readErr = p.in.Err()
}

func (p *Prompter) line(question string) (string, error) {
	fmt.Fprint(p.out, p.label.Render(question))
	select {
	case <-p.ctx.Done():
		fmt.Fprintln(p.out)
		return "", fmt.Errorf("%w: %w", apperr.ErrInterrupted, p.ctx.Err())
	case s, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			if p.readErr != nil {
				return "", fmt.Errorf("reading input: %w", p.readErr)
			}
			return "", apperr.Invalidf("input ended before %q was answered", strings.TrimSpace(question))
		}
		return strings.TrimSpace(s), nil
	}
}

func (p *Prompter) complain(msg string) {
	fmt.Fprintln(p.out, p.errs.Render(msg))
}

