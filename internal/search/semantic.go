// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/keyword-trends/internal/httputil"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// countFields is the smallest field selection the API accepts; a count
// request only needs the total.
const countFields = "year"

var defaultFields = []string{"paperId", "title", "year", "citationCount", "venue", "publicationDate"}

var errMissingTotal = errors.New("response has no total field")

// SemanticScholar queries the Semantic Scholar Graph API. Its configuration
// is fixed at construction.
type SemanticScholar struct {
	client *http.Client
	cfg    types.SearchConfig
}

// NewSemanticScholar returns a client that sends requests through client
// using cfg. A nil client selects one with cfg.Timeout.
func NewSemanticScholar(client *http.Client, cfg types.SearchConfig) *SemanticScholar {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &SemanticScholar{client: client, cfg: cfg}
}

// Name returns the backend identifier.
func (s *SemanticScholar) Name() string { return "semantic_scholar" }

// Count returns the number of papers matching term published in year. It
// requests a single record with a minimal field list so the response carries
// little more than the total.
func (s *SemanticScholar) Count(ctx context.Context, term string, year int) (int, error) {
	page, err := s.Search(ctx, PageRequest{
		Query:  term,
		Year:   year,
		Limit:  1,
		Fields: []string{countFields},
	})
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// Search fetches one page of results. A 429 response yields an error
// matching httputil.ErrRateLimited; any other non-2xx status, transport
// error, or body without a numeric total yields a generic error.
func (s *SemanticScholar) Search(ctx context.Context, r PageRequest) (Page, error) {
	if strings.TrimSpace(r.Query) == "" {
		return Page{}, fmt.Errorf("empty Semantic Scholar query")
	}

	fields := r.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	params := url.Values{
		"query":  {r.Query},
		"limit":  {strconv.Itoa(r.EffectiveLimit())},
		"offset": {strconv.Itoa(r.Offset)},
		"fields": {strings.Join(fields, ",")},
	}
	if r.Year > 0 {
		params.Set("year", strconv.Itoa(r.Year))
	}

	base := semanticAPIBase
	if s.cfg.BaseURL != "" {
		base = s.cfg.BaseURL
	}
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("creating request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("x-api-key", s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return Page{}, fmt.Errorf("Semantic Scholar API returned %w", err)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Page{}, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	if sr.Total == nil {
		return Page{}, fmt.Errorf("parsing Semantic Scholar response: %w", errMissingTotal)
	}
	if *sr.Total < 0 {
		return Page{}, fmt.Errorf("parsing Semantic Scholar response: negative total %d", *sr.Total)
	}

	page := Page{
		Total:  *sr.Total,
		Offset: sr.Offset,
		Next:   -1,
	}
	if sr.Next != nil {
		page.Next = *sr.Next
	}
	for _, p := range sr.Data {
		page.Papers = append(page.Papers, Paper{
			PaperID:         p.PaperID,
			Title:           p.Title,
			Year:            p.Year,
			Venue:           p.Venue,
			CitationCount:   p.CitationCount,
			PublicationDate: p.PublicationDate,
		})
	}
	return page, nil
}

// Semantic Scholar API JSON structures. Total is a pointer so a body
// without the field is told apart from a zero count.
type semanticResponse struct {
	Total  *int            `json:"total"`
	Offset int             `json:"offset"`
	Next   *int            `json:"next"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string `json:"paperId"`
	Title           string `json:"title"`
	Year            int    `json:"year"`
	Venue           string `json:"venue"`
	CitationCount   int    `json:"citationCount"`
	PublicationDate string `json:"publicationDate"`
}
