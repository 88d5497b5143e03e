// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keyword-trends/internal/analyze"
	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/internal/logger"
	"github.com/pdiddy/keyword-trends/internal/metrics"
	"github.com/pdiddy/keyword-trends/internal/prompt"
	"github.com/pdiddy/keyword-trends/internal/search"
	"github.com/pdiddy/keyword-trends/internal/secrets"
	"github.com/pdiddy/keyword-trends/internal/trend"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

const defaultTimeout = 30 * time.Second

// options is the resolved flag, environment, and config file state.
type options struct {
	OutputDir     string
	NoChart       bool
	NoDisplay     bool
	Quiet         bool
	APIKey        string
	XLSX          bool
	SummaryFormat string
	MetricsFile   string
	Timeout       time.Duration
	MaxCoolDowns  int
	BaseURL       string
}

func loadOptions() options {
	return options{
		OutputDir:     viper.GetString("output_dir"),
		NoChart:       viper.GetBool("no_chart"),
		NoDisplay:     viper.GetBool("no_display"),
		Quiet:         viper.GetBool("quiet"),
		APIKey:        viper.GetString("api_key"),
		XLSX:          viper.GetBool("xlsx"),
		SummaryFormat: viper.GetString("summary_format"),
		MetricsFile:   viper.GetString("metrics_file"),
		Timeout:       viper.GetDuration("timeout"),
		MaxCoolDowns:  viper.GetInt("max_cooldowns"),
		BaseURL:       viper.GetString("base_url"),
	}
}

// outputConfig converts options to the workflow settings.
func (o options) outputConfig() (types.OutputConfig, error) {
	format, err := parseSummaryFormat(o.SummaryFormat)
	if err != nil {
		return types.OutputConfig{}, err
	}
	return types.OutputConfig{
		Dir:           o.OutputDir,
		Chart:         !o.NoChart,
		Display:       !o.NoDisplay,
		XLSX:          o.XLSX,
		SummaryFormat: format,
		MetricsFile:   o.MetricsFile,
		Verbose:       !o.Quiet,
	}, nil
}

func parseSummaryFormat(s string) (types.SummaryFormat, error) {
	switch f := types.SummaryFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return types.SummaryYAML, nil
	case types.SummaryYAML, types.SummaryJSON, types.SummaryNone:
		return f, nil
	default:
		return "", apperr.Invalidf("unknown summary format %q (want yaml, json, or none)", s)
	}
}

// resolveQuery builds the query from three positional arguments or, with
// fewer, from interactive prompts. Prompt answers override cfg's chart,
// display, directory, and verbosity settings.
func resolveQuery(ctx context.Context, args []string, in io.Reader, out io.Writer, now time.Time, cfg *types.OutputConfig) (types.Query, error) {
	if len(args) == 3 {
		start, err := parseYear("start", args[1])
		if err != nil {
			return types.Query{}, err
		}
		end, err := parseYear("end", args[2])
		if err != nil {
			return types.Query{}, err
		}
		return types.NewQuery(args[0], start, end, now)
	}

	a, err := prompt.New(in, out, now).Ask(ctx)
	if err != nil {
		return types.Query{}, err
	}
	cfg.Chart = a.Chart
	cfg.Display = a.Display
	cfg.Dir = a.OutputDir
	cfg.Verbose = a.Verbose
	return a.Query, nil
}

func parseYear(which, s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperr.Invalidf("%s year %q is not a number", which, s)
	}
	return y, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger.Setup(viper.GetString("log_level"), viper.GetString("log_format"), cmd.ErrOrStderr())

	o := loadOptions()
	cfg, err := o.outputConfig()
	if err != nil {
		return err
	}

	q, err := resolveQuery(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now(), &cfg)
	if err != nil {
		return err
	}

	if o.APIKey, err = resolveAPIKey(o.APIKey); err != nil {
		return err
	}

	ctx := logger.WithRunID(cmd.Context(), logger.NewRunID())
	s, err := execute(ctx, o, q, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nAnalysis complete! Results saved to %s/\n", strings.TrimSuffix(cfg.Dir, "/"))
	logger.FromContext(ctx).Debug("run finished", "total", s.Total, "failed_years", len(s.FailedYears))
	return nil
}

// resolveAPIKey prefers an explicit key and falls back to the secrets dir.
func resolveAPIKey(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	loaded, err := secrets.Load(secrets.DefaultDir)
	if err != nil {
		return "", err
	}
	return secrets.Resolve(explicit, loaded, secrets.SemanticScholarKey), nil
}

func newClient(o options) *search.SemanticScholar {
	return search.NewSemanticScholar(nil, types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   o.Timeout,
			UserAgent: "keyword-trends/" + version,
		},
		BaseURL: o.BaseURL,
		APIKey:  o.APIKey,
	})
}

// execute wires the search client, counter, and metrics for one run.
func execute(ctx context.Context, o options, q types.Query, cfg types.OutputConfig, out io.Writer, counterOpts ...trend.Option) (types.Summary, error) {
	client := newClient(o)

	counterCfg := types.DefaultCounterConfig()
	counterCfg.MaxCoolDowns = o.MaxCoolDowns

	var observer trend.Observer = trend.Quiet{}
	if cfg.Verbose {
		observer = trend.ProgressWriter{W: out}
	}

	m := metrics.New(q.Term)
	opts := append([]trend.Option{
		trend.WithObserver(observer),
		trend.WithRecorder(m),
		trend.WithLogger(logger.WithComponent(logger.FromContext(ctx), "trend")),
	}, counterOpts...)
	counter := trend.NewCounter(client, counterCfg, opts...)

	return analyze.Run(ctx, analyze.Deps{
		Counter: counter,
		Metrics: m,
		Out:     out,
	}, q, cfg)
}
