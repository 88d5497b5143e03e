// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Semantic Scholar paper search API. The client
// supports full paged searches and a count-only request used by the
// year-range counter.
package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxLimit is the largest page size the API accepts. Larger requested
// limits are capped to it.
const MaxLimit = 100

// PageRequest describes one page of a paper search.
type PageRequest struct {
	// Query is the free-text search term.
	Query string

	// Year restricts results to a single publication year; 0 means no filter.
	Year int

	// Limit is the page size. Zero or negative selects MaxLimit and values
	// above MaxLimit are capped.
	Limit int

	// Offset is the pagination offset.
	Offset int

	// Fields selects the paper fields returned; nil selects defaultFields.
	Fields []string
}

// EffectiveLimit returns the page size actually sent to the API.
func (r PageRequest) EffectiveLimit() int {
	if r.Limit <= 0 || r.Limit > MaxLimit {
		return MaxLimit
	}
	return r.Limit
}

// Page is one page of search results.
type Page struct {
	// Total is the number of papers matching the request across all pages.
	Total int `json:"total" yaml:"total"`

	Offset int `json:"offset" yaml:"offset"`

	// Next is the offset of the following page, or -1 when this is the last.
	Next int `json:"next" yaml:"next"`

	Papers []Paper `json:"papers" yaml:"papers"`
}

// Paper is the subset of paper metadata decoded from a search page.
type Paper struct {
	PaperID         string `json:"paper_id" yaml:"paper_id"`
	Title           string `json:"title" yaml:"title"`
	Year            int    `json:"year,omitempty" yaml:"year,omitempty"`
	Venue           string `json:"venue,omitempty" yaml:"venue,omitempty"`
	CitationCount   int    `json:"citation_count" yaml:"citation_count"`
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
}

// FormatPage writes papers as a human-readable table to w.
func FormatPage(p Page, w io.Writer) {
	if len(p.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-4s  %-9s  %s\n", "#", "Title", "Year", "Citations", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, paper := range p.Papers {
		year := ""
		if paper.Year > 0 {
			year = fmt.Sprintf("%d", paper.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-4s  %-9d  %s\n",
			p.Offset+i+1, truncate(paper.Title, 60), year, paper.CitationCount, truncate(paper.Venue, 25))
	}

	fmt.Fprintf(w, "\n%d of %d results\n", len(p.Papers), p.Total)
}

// truncate shortens s to at most max display cells without splitting a rune.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "...")
}
