// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes analysis results to flat files: the year/count CSV,
// an optional XLSX workbook with a column chart, and the run summary.
//
// Every writer is atomic per destination: output goes to a temporary file in
// the destination directory and is renamed into place only on success.
// Failures are wrapped in apperr.ErrExport.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/keyword-trends/internal/apperr"
)

// Paths holds the output file names for one query.
type Paths struct {
	CSV     string
	XLSX    string
	Chart   string
	Summary string
}

// PathsFor returns the output paths in dir for term and the year range.
// ext is the summary file extension ("yaml" or "json").
func PathsFor(dir, term string, start, end int, ext string) Paths {
	base := filepath.Join(dir, FileBase(term, start, end))
	return Paths{
		CSV:     base + "_results.csv",
		XLSX:    base + "_results.xlsx",
		Chart:   base + "_histogram.png",
		Summary: base + "_summary." + ext,
	}
}

// FileBase builds a filesystem-safe name from term and the year range:
// letters, digits, spaces, '-' and '_' are kept, trailing spaces dropped,
// and remaining spaces replaced with '_'. A term with nothing left becomes
// "query".
func FileBase(term string, start, end int) string {
	var b strings.Builder
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
	if strings.Trim(safe, "_") == "" {
		safe = "query"
	}
	return fmt.Sprintf("%s_%d_%d", safe, start, end)
}

// writeAtomic streams write into a temporary sibling of path and renames
// it into place.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return apperr.Export(path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return apperr.Export(path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return apperr.Export(path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Export(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperr.Export(path, err)
	}
	return nil
}
