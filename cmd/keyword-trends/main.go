// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the keyword-trends CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keyword-trends/internal/apperr"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd counts papers for a keyword. With fewer than three positional
// arguments it falls back to interactive prompts.
var rootCmd = &cobra.Command{
	Use:   "keyword-trends [term] [start_year] [end_year]",
	Short: "Count academic papers per year for a keyword",
	Long: `keyword-trends queries the Semantic Scholar paper search API for a keyword,
counts matching papers for each calendar year in an inclusive range, and writes
the counts to a CSV file with an optional bar chart.

Years are counted one at a time with a short randomized pause between them.
Failed requests are retried; a year that cannot be counted is recorded as 0.

Run without arguments to be prompted for the term, years, and options.`,
	Example: `  keyword-trends "machine learning" 2020 2023
  keyword-trends blockchain 2018 2023 --no-chart
  keyword-trends "quantum computing" 2015 2023 --output-dir ./results --xlsx
  keyword-trends`,
	Args:          checkArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

func checkArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 3 {
		return apperr.Invalidf("expected at most 3 arguments (term, start year, end year), got %d", len(args))
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./keyword-trends.yaml or ~/.config/keyword-trends/keyword-trends.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("api-key", "", "Semantic Scholar API key (default: .secrets/semantic-scholar-api-key)")
	pf.Duration("timeout", defaultTimeout, "per-request HTTP timeout")
	pf.String("base-url", "", "override the paper search endpoint")
	_ = pf.MarkHidden("base-url")

	f := rootCmd.Flags()
	f.String("output-dir", ".", "output directory for results")
	f.Bool("no-chart", false, "skip histogram generation")
	f.Bool("no-display", false, "skip displaying the chart in the terminal")
	f.Bool("quiet", false, "suppress progress messages")
	f.Bool("xlsx", false, "also write an Excel workbook with a chart")
	f.String("summary-format", "yaml", "summary file format: yaml, json, or none")
	f.String("metrics-file", "", "write Prometheus metrics in textfile format to this path")
	f.Int("max-cooldowns", 10, "rate-limit waits allowed per year before recording 0 (negative: unlimited)")

	for key, flag := range flagKeys {
		if fl := f.Lookup(flag); fl != nil {
			_ = viper.BindPFlag(key, fl)
		} else {
			_ = viper.BindPFlag(key, pf.Lookup(flag))
		}
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Invalidf("%v", err)
	})
}

// flagKeys maps viper keys to flag names. Keys double as config file keys
// and, upper-cased with the KEYWORD_TRENDS_ prefix, as environment variables.
var flagKeys = map[string]string{
	"log_level":      "log-level",
	"log_format":     "log-format",
	"output_dir":     "output-dir",
	"no_chart":       "no-chart",
	"no_display":     "no-display",
	"quiet":          "quiet",
	"api_key":        "api-key",
	"xlsx":           "xlsx",
	"summary_format": "summary-format",
	"metrics_file":   "metrics-file",
	"timeout":        "timeout",
	"max_cooldowns":  "max-cooldowns",
	"base_url":       "base-url",
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("keyword-trends")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "keyword-trends"))
		}
	}

	viper.SetEnvPrefix("KEYWORD_TRENDS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, apperr.ErrInterrupted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nAnalysis interrupted by user")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(apperr.ExitCode(err))
	}
}
