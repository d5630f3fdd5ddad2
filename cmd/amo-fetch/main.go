// Command amo-fetch aggregates Firefox extension metadata from the Mozilla
// Add-ons search API into a single sorted JSON catalog on stdout. Any
// failure aborts the run with a non-zero exit and an empty primary stream.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/amoutil/amo-fetch/pkg/aggregate"
	"github.com/amoutil/amo-fetch/pkg/amo"
	"github.com/amoutil/amo-fetch/pkg/logging"
	"github.com/amoutil/amo-fetch/pkg/metrics"
	"github.com/amoutil/amo-fetch/pkg/pagination"
)

type options struct {
	pages       int
	minUsers    int64
	minUsersSet bool
	verbose     bool
	parallel    int
	pageSize    int
	baseURL     string
	timeout     time.Duration
	prettyLogs  bool
}

func main() {
	// A .env file is optional; flags and real env vars win.
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "amo-fetch",
		Short: "Fetch Firefox extension metadata into a packaging catalog",
		Long: `amo-fetch queries the Mozilla Add-ons search API page by page, keeps
publicly released extensions, and writes one sorted JSON catalog to stdout.
Diagnostics go to stderr; a failed run writes nothing to stdout.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.minUsersSet = cmd.Flags().Changed("min-users")
			return run(opts, out, os.Stderr)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.pages, "pages", 0, "number of pages to fetch (0 fetches all pages)")
	flags.Int64Var(&opts.minUsers, "min-users", 0, "only include addons with more than this many users")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable verbose debug output")
	flags.IntVar(&opts.parallel, "parallel", 4, "number of parallel page requests")
	flags.IntVar(&opts.pageSize, "page-size", 50, "number of results per page")
	flags.StringVar(&opts.baseURL, "base-url", getEnv("AMO_BASE_URL", amo.DefaultBaseURL), "search endpoint base URL")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	flags.BoolVar(&opts.prettyLogs, "pretty-logs", false, "human-readable log output")

	return cmd
}

func run(opts *options, out, diag io.Writer) error {
	logging.Setup(logging.Config{
		Level:  logging.LevelForVerbose(opts.verbose),
		Pretty: opts.prettyLogs,
		Output: diag,
	})

	cfg := amo.DefaultConfig()
	cfg.BaseURL = opts.baseURL
	cfg.PageSize = opts.pageSize
	cfg.Timeout = opts.timeout
	if opts.minUsersSet {
		cfg.MinUsers = &opts.minUsers
	}

	client, err := amo.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	fetcher := pagination.NewFetcher(client, pagination.Config{
		MaxConcurrency: opts.parallel,
		PageLimit:      opts.pages,
	})

	addons, err := fetcher.FetchAll(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Fetch failed")
		return err
	}

	if err := aggregate.Run(addons, out); err != nil {
		log.Error().Err(err).Msg("Aggregation failed")
		return err
	}

	if opts.verbose {
		if err := metrics.Dump(diag); err != nil {
			log.Warn().Err(err).Msg("Metrics dump failed")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
