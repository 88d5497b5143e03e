// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

const sheetName = "Counts"

// WriteXLSX writes counts to a workbook at path with the same two columns as
// the CSV and a column chart of papers per year next to the data.
func WriteXLSX(path, term string, counts []types.YearCount) error {
	f, err := buildWorkbook(term, counts)
	if err != nil {
		return apperr.Export(path, err)
	}
	defer f.Close()

	return writeAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func buildWorkbook(term string, counts []types.YearCount) (*excelize.File, error) {
	if len(counts)+1 > excelize.TotalRows {
		return nil, fmt.Errorf("%d years exceed the sheet limit of %d rows", len(counts), excelize.TotalRows-1)
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := []any{CSVHeader[0], CSVHeader[1]}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, yc := range counts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{yc.Year, yc.Count}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row for %d: %w", yc.Year, err)
		}
	}

	if len(counts) == 0 {
		return f, nil
	}

	last := len(counts) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetName, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetName, last),
		}},
		Title:    []excelize.RichTextRun{{Text: ChartTitle(term)}},
		Legend:   excelize.ChartLegend{Position: "none"},
		PlotArea: excelize.ChartPlotArea{ShowVal: true},
	}
	if err := f.AddChart(sheetName, "D2", chart); err != nil {
		f.Close()
		return nil, fmt.Errorf("adding chart: %w", err)
	}
	return f, nil
}

// ChartTitle is the title used for every rendering of the counts.
func ChartTitle(term string) string {
	return fmt.Sprintf("Semantic Scholar Results for %q by Year", term)
}
