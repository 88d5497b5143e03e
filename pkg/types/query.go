// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"

	"github.com/pdiddy/keyword-trends/internal/apperr"
)

// MinYear is the earliest year accepted for a query.
const MinYear = 1800

// Query is a validated search term and inclusive year range. Construct it
// with NewQuery; the zero value is not a valid query.
type Query struct {
	// Term is the free-text search term, trimmed and non-empty.
	Term string `json:"term" yaml:"term"`

	// StartYear is the first year counted.
	StartYear int `json:"start_year" yaml:"start_year"`

	// EndYear is the last year counted (inclusive).
	EndYear int `json:"end_year" yaml:"end_year"`
}

// NewQuery validates term and the year range against now and returns the
// query. Years must lie in [MinYear, now.Year()+1] with start <= end.
func NewQuery(term string, startYear, endYear int, now time.Time) (Query, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Query{}, apperr.Invalidf("search term cannot be empty")
	}
	if startYear > endYear {
		return Query{}, apperr.Invalidf("start year %d must be less than or equal to end year %d", startYear, endYear)
	}
	if err := ValidateYear(startYear, MinYear, now); err != nil {
		return Query{}, err
	}
	if err := ValidateYear(endYear, startYear, now); err != nil {
		return Query{}, err
	}
	return Query{Term: term, StartYear: startYear, EndYear: endYear}, nil
}

// ValidateYear checks that year lies in [min, MaxYear(now)].
func ValidateYear(year, min int, now time.Time) error {
	max := MaxYear(now)
	if year < min || year > max {
		return apperr.Invalidf("year %d must be between %d and %d", year, min, max)
	}
	return nil
}

// MaxYear is the latest year accepted for a query run at now.
func MaxYear(now time.Time) int {
	return now.Year() + 1
}

// Years returns the number of years in the range.
func (q Query) Years() int {
	return q.EndYear - q.StartYear + 1
}
