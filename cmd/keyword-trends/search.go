package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keyword-trends/internal/apperr"
	"github.com/pdiddy/keyword-trends/internal/httputil"
	"github.com/pdiddy/keyword-trends/internal/logger"
	"github.com/pdiddy/keyword-trends/internal/search"
	"github.com/pdiddy/keyword-trends/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "List papers matching a term",
	Long: `Search fetches one page of Semantic Scholar results for a term, optionally
restricted to a single publication year. Use it to inspect what the yearly
counts are made of.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return apperr.Invalidf("search takes exactly one term, got %d arguments", len(args))
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("year", 0, "restrict results to one publication year")
	searchCmd.Flags().Int("limit", 20, "results per page (capped at 100)")
	searchCmd.Flags().Int("offset", 0, "pagination offset")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger.Setup(viper.GetString("log_level"), viper.GetString("log_format"), cmd.ErrOrStderr())

	req := search.PageRequest{Query: strings.TrimSpace(args[0])}
	req.Year, _ = cmd.Flags().GetInt("year")
	req.Limit, _ = cmd.Flags().GetInt("limit")
	req.Offset, _ = cmd.Flags().GetInt("offset")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if req.Query == "" {
		return apperr.Invalidf("search term cannot be empty")
	}

	o := loadOptions()
	var err error
	if o.APIKey, err = resolveAPIKey(o.APIKey); err != nil {
		return err
	}
	return searchPage(cmd.Context(), newClient(o), httputil.ContextSleeper{}, req, jsonOutput, cmd.OutOrStdout())
}

// searchPage fetches one page with the counter's retry policy and prints it.
func searchPage(ctx context.Context, client *search.SemanticScholar, sleeper httputil.Sleeper, req search.PageRequest, jsonOutput bool, w io.Writer) error {
	cfg := types.DefaultCounterConfig()
	policy := httputil.Policy{
		MaxAttempts:  cfg.MaxAttempts,
		RetryDelay:   cfg.RetryDelay,
		CoolDown:     cfg.CoolDown,
		MaxCoolDowns: viper.GetInt("max_cooldowns"),
	}.WithDefaults()

	var page search.Page
	err := httputil.Do(ctx, policy, sleeper, func(e httputil.Event) {
		fmt.Fprintf(w, "warning: %v; waiting %v\n", e.Err, e.Delay)
	}, func(ctx context.Context) error {
		var err error
		page, err = client.Search(ctx, req)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", apperr.ErrInterrupted, ctx.Err())
		}
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	search.FormatPage(page, w)
	return nil
}
