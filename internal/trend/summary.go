// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import "github.com/pdiddy/keyword-trends/pkg/types"

// Summarize derives totals from a completed sequence. Average is 0 and Peak
// is nil for an empty sequence; ties for the peak go to the earliest year.
// The caller fills in the query and file fields.
func Summarize(counts []types.YearCount) types.Summary {
	s := types.Summary{Counts: counts}
	for i, yc := range counts {
		s.Total += yc.Count
		if yc.Failed {
			s.FailedYears = append(s.FailedYears, yc.Year)
		}
		if s.Peak == nil || yc.Count > s.Peak.Count {
			peak := counts[i]
			s.Peak = &peak
		}
	}
	if len(counts) > 0 {
		s.Average = float64(s.Total) / float64(len(counts))
	}
	return s
}
