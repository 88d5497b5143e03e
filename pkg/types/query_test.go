// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/keyword-trends/internal/apperr"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		start   int
		end     int
		want    Query
		wantErr string
	}{
		{"valid range", "machine learning", 2020, 2023, Query{"machine learning", 2020, 2023}, ""},
		{"single year", "test", 2021, 2021, Query{"test", 2021, 2021}, ""},
		{"term trimmed", "  blockchain \t", 2018, 2019, Query{"blockchain", 2018, 2019}, ""},
		{"lower bound", "history", 1800, 1801, Query{"history", 1800, 1801}, ""},
		{"next year allowed", "future", 2026, 2027, Query{"future", 2026, 2027}, ""},
		{"empty term", "   ", 2020, 2021, Query{}, "search term cannot be empty"},
		{"start after end", "test", 2023, 2020, Query{}, "less than or equal"},
		{"start too early", "test", 1799, 2020, Query{}, "between 1800"},
		{"end too late", "test", 2020, 2028, Query{}, "between 2020 and 2027"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQuery(tt.term, tt.start, tt.end, fixedNow)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryYears(t *testing.T) {
	q, err := NewQuery("test", 2020, 2022, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Years())
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(2027, MinYear, fixedNow))
	assert.ErrorIs(t, ValidateYear(2028, MinYear, fixedNow), apperr.ErrInvalidInput)
	assert.ErrorIs(t, ValidateYear(2019, 2020, fixedNow), apperr.ErrInvalidInput)
	assert.Equal(t, 2027, MaxYear(fixedNow))
}
