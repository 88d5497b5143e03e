package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the search API.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "keyword-trends/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the Semantic Scholar client. It is passed
// to the client at construction and never changed afterwards.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL overrides the paper search endpoint (tests, proxies).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits,
	// sent as the x-api-key header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// CounterConfig holds the retry and pacing settings for the year loop.
type CounterConfig struct {
	// MaxAttempts is the number of attempts per year for generic failures (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RetryDelay is the wait between failed attempts (default 5s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// CoolDown is the wait after a rate-limit response (default 60s).
	CoolDown time.Duration `json:"cool_down" yaml:"cool_down"`

	// MaxCoolDowns bounds consecutive rate-limit waits per year (default 10).
	// A negative value removes the bound.
	MaxCoolDowns int `json:"max_cool_downs" yaml:"max_cool_downs"`

	// PauseMin and PauseMax bound the randomized pause between years
	// (default 2s-3s).
	PauseMin time.Duration `json:"pause_min" yaml:"pause_min"`
	PauseMax time.Duration `json:"pause_max" yaml:"pause_max"`
}

// DefaultCounterConfig returns the production retry and pacing settings.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		MaxAttempts:  3,
		RetryDelay:   5 * time.Second,
		CoolDown:     60 * time.Second,
		MaxCoolDowns: 10,
		PauseMin:     2 * time.Second,
		PauseMax:     3 * time.Second,
	}
}

// SummaryFormat selects the encoding of the summary file.
type SummaryFormat string

const (
	SummaryNone SummaryFormat = "none"
	SummaryYAML SummaryFormat = "yaml"
	SummaryJSON SummaryFormat = "json"
)

// OutputConfig controls which artifacts a run produces.
type OutputConfig struct {
	// Dir is the output directory, created if missing.
	Dir string `json:"output_dir" yaml:"output_dir"`

	// Chart enables the PNG bar chart.
	Chart bool `json:"chart" yaml:"chart"`

	// Display enables the terminal rendering of the chart.
	Display bool `json:"display" yaml:"display"`

	// XLSX enables the workbook export.
	XLSX bool `json:"xlsx" yaml:"xlsx"`

	// SummaryFormat selects the summary file encoding (default yaml).
	SummaryFormat SummaryFormat `json:"summary_format" yaml:"summary_format"`

	// MetricsFile, when set, receives Prometheus metrics in textfile format.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`

	// Verbose prints progress and the final summary block.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
