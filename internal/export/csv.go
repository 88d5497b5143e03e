// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pdiddy/keyword-trends/pkg/types"
)

// CSVHeader is the header row of the tabular export.
var CSVHeader = []string{"year", "paper_count"}

// WriteCSV writes counts to path with a year,paper_count header, one row per
// year in the order given.
func WriteCSV(path string, counts []types.YearCount) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeCSV(w, counts)
	})
}

// EncodeCSV writes the header and rows to w.
func EncodeCSV(w io.Writer, counts []types.YearCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, yc := range counts {
		if err := cw.Write([]string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
