// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/pdiddy/keyword-trends/pkg/types"
)

const (
	barRune             = "█"
	terminalWidthBackup = 80
	minBarCells         = 10
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F"))
	zeroStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Display writes counts to w as one horizontal bar per year, sized to the
// terminal width. Color is used only when w is a terminal and NO_COLOR is
// unset.
func Display(w io.Writer, title string, counts []types.YearCount) error {
	return Render(w, title, counts, terminalWidth(w), shouldUseColor(w))
}

// Render writes the bar display at a fixed width.
func Render(w io.Writer, title string, counts []types.YearCount, width int, color bool) error {
	if len(counts) == 0 {
		return nil
	}

	labelWidth, valueWidth, peak := 0, 0, 0
	values := make([]string, len(counts))
	for i, yc := range counts {
		values[i] = humanize.Comma(int64(yc.Count))
		labelWidth = max(labelWidth, runewidth.StringWidth(fmt.Sprint(yc.Year)))
		valueWidth = max(valueWidth, runewidth.StringWidth(values[i]))
		peak = max(peak, yc.Count)
	}
	cells := max(width-labelWidth-valueWidth-4, minBarCells)

	var b strings.Builder
	if title != "" {
		b.WriteString(style(titleStyle, title, color))
		b.WriteString("\n\n")
	}
	for i, yc := range counts {
		n := 0
		if peak > 0 {
			n = yc.Count * cells / peak
		}
		if n == 0 && yc.Count > 0 {
			n = 1
		}
		bar := strings.Repeat(barRune, n)
		value := values[i]
		if yc.Count == 0 {
			value = style(zeroStyle, value, color)
		} else {
			bar = style(barStyle, bar, color)
		}
		fmt.Fprintf(&b, "%*d │ %s%s %s\n", labelWidth, yc.Year, bar, strings.Repeat(" ", cells-n), value)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func style(s lipgloss.Style, str string, color bool) string {
	if !color {
		return str
	}
	return s.Render(str)
}

// terminalWidth measures the terminal behind w, falling back to 80 columns
// when w is not a terminal.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
