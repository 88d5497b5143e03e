// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

func sampleCounts() []types.YearCount {
	return []types.YearCount{
		{Year: 2020, Count: 150},
		{Year: 2021, Count: 0, Failed: true},
		{Year: 2022, Count: 300},
	}
}

func TestFileBase(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"machine learning", "machine_learning_2020_2022"},
		{"C++/Rust?", "CRust_2020_2022"},
		{"deep-learning_v2", "deep-learning_v2_2020_2022"},
		{"trailing   ", "trailing_2020_2022"},
		{"?!*", "query_2020_2022"},
		{"réseaux neuronaux", "réseaux_neuronaux_2020_2022"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, FileBase(tt.term, 2020, 2022))
		})
	}
}

func TestPathsFor(t *testing.T) {
	p := PathsFor("out", "graph nets", 2019, 2021, "json")
	assert.Equal(t, filepath.Join("out", "graph_nets_2019_2021_results.csv"), p.CSV)
	assert.Equal(t, filepath.Join("out", "graph_nets_2019_2021_results.xlsx"), p.XLSX)
	assert.Equal(t, filepath.Join("out", "graph_nets_2019_2021_histogram.png"), p.Chart)
	assert.Equal(t, filepath.Join("out", "graph_nets_2019_2021_summary.json"), p.Summary)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, sampleCounts()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "year,paper_count\n2020,150\n2021,0\n2022,300\n", string(data))
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "year,paper_count\n", string(data))
}

func TestWriteCSVLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(filepath.Join(dir, "out.csv"), sampleCounts()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestWriteCSVUnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := WriteCSV(path, sampleCounts())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrExport))
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, apperr.ExitExport, apperr.ExitCode(err))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, "graph nets", sampleCounts()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"year", "paper_count"},
		{"2020", "150"},
		{"2021", "0"},
		{"2022", "300"},
	}, rows)
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, "nothing", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"year", "paper_count"}}, rows)
}

func TestWriteXLSXUnwritableDestination(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "out.xlsx"), "x", sampleCounts())
	assert.ErrorIs(t, err, apperr.ErrExport)
}

func TestWriteXLSXWorkbookErrorIsExportFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	counts := make([]types.YearCount, excelize.TotalRows)
	err := WriteXLSX(path, "x", counts)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrExport)
	assert.Equal(t, apperr.ExitExport, apperr.ExitCode(err))
	assert.Contains(t, err.Error(), "exceed the sheet limit")
	assert.NoFileExists(t, path)
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, `Semantic Scholar Results for "neural nets" by Year`, ChartTitle("neural nets"))
}

func sampleSummary() types.Summary {
	peak := types.YearCount{Year: 2022, Count: 300}
	return types.Summary{
		RunID:       "run-1",
		Term:        "graph nets",
		StartYear:   2020,
		EndYear:     2022,
		Total:       450,
		Average:     150,
		Peak:        &peak,
		FailedYears: []int{2021},
		Counts:      sampleCounts(),
		CSVFile:     "graph_nets_2020_2022_results.csv",
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	require.NoError(t, WriteSummary(path, sampleSummary(), types.SummaryYAML))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.Summary
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sampleSummary(), got)
	assert.Contains(t, string(data), "total_papers: 450")
}

func TestWriteSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, WriteSummary(path, sampleSummary(), types.SummaryJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 450, raw["total_papers"])
	assert.Equal(t, "graph nets", raw["search_term"])
	peak := raw["peak"].(map[string]any)
	assert.EqualValues(t, 2022, peak["year"])
}

func TestEncodeSummaryUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeSummary(&buf, sampleSummary(), "toml")
	assert.ErrorContains(t, err, `unknown summary format "toml"`)
}

func TestSummaryExt(t *testing.T) {
	assert.Equal(t, "json", SummaryExt(types.SummaryJSON))
	assert.Equal(t, "yaml", SummaryExt(types.SummaryYAML))
	assert.Equal(t, "yaml", SummaryExt(""))
}
