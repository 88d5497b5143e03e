// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for keyword-trends: the
// validated query, per-year counts, the derived summary, and configuration.
package types

// YearCount is the number of papers matching a query in one calendar year.
// A year whose requests all failed carries Count 0 and Failed true.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"paper_count" yaml:"paper_count"`

	// Failed reports that Count is a downgraded zero rather than an
	// observed total. It never appears in the tabular export.
	Failed bool `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Summary is derived once from a completed YearCount sequence.
type Summary struct {
	RunID     string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Term      string `json:"search_term" yaml:"search_term"`
	StartYear int    `json:"start_year" yaml:"start_year"`
	EndYear   int    `json:"end_year" yaml:"end_year"`

	// Total is the sum of all counts.
	Total int `json:"total_papers" yaml:"total_papers"`

	// Average is Total divided by the number of years, 0 when there are none.
	Average float64 `json:"average_papers_per_year" yaml:"average_papers_per_year"`

	// Peak is the first year holding the maximum count, nil when empty.
	Peak *YearCount `json:"peak,omitempty" yaml:"peak,omitempty"`

	// FailedYears lists years recorded as 0 after exhausting retries.
	FailedYears []int `json:"failed_years,omitempty" yaml:"failed_years,omitempty"`

	Counts []YearCount `json:"counts" yaml:"counts"`

	CSVFile   string `json:"csv_file,omitempty" yaml:"csv_file,omitempty"`
	XLSXFile  string `json:"xlsx_file,omitempty" yaml:"xlsx_file,omitempty"`
	ChartFile string `json:"chart_file,omitempty" yaml:"chart_file,omitempty"`
}
