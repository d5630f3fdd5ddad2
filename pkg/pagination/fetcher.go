package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/amoutil/amo-fetch/pkg/amo"
)

// Prometheus metrics for batch fetching.
var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amo_pages_fetched_total",
		Help: "Total search pages fetched successfully",
	})

	pageFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "amo_page_failures_total",
		Help: "Total page fetches that failed and aborted a run",
	})
)

// PageFetcher is the single-page fetch dependency.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*amo.SearchPage, error)
}

// Config holds batch fetcher configuration.
type Config struct {
	// MaxConcurrency is the number of parallel page requests.
	MaxConcurrency int

	// PageLimit caps the number of pages fetched. Zero fetches every page
	// the API reports; the discovered page_count is always the hard upper
	// bound either way.
	PageLimit int
}

// DefaultConfig returns a modest default suitable for the public API.
func DefaultConfig() Config {
	return Config{MaxConcurrency: 4}
}

// Fetcher orchestrates the two-phase paginated fetch.
type Fetcher struct {
	fetcher PageFetcher
	config  Config
}

// NewFetcher creates a new batch fetcher.
func NewFetcher(fetcher PageFetcher, config Config) *Fetcher {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	return &Fetcher{
		fetcher: fetcher,
		config:  config,
	}
}

// FetchAll fetches page 1 to discover the authoritative page count, fans a
// bounded worker pool over the remaining in-range pages, and returns every
// raw result concatenated in page order. The first failed page aborts the
// whole fetch; in-flight siblings are cancelled and joined before returning.
func (f *Fetcher) FetchAll(ctx context.Context) ([]amo.Addon, error) {
	start := time.Now()

	first, err := f.fetcher.FetchPage(ctx, 1)
	if err != nil {
		pageFailuresTotal.Inc()
		return nil, err
	}
	pagesFetchedTotal.Inc()

	lastPage := first.PageCount
	if f.config.PageLimit > 0 && f.config.PageLimit < lastPage {
		lastPage = f.config.PageLimit
	}
	if lastPage < 1 {
		// An empty result set still reports its single page.
		lastPage = 1
	}

	log.Info().
		Int("page_count", first.PageCount).
		Int("last_page", lastPage).
		Int("count", first.Count).
		Msg("Starting parallel page fetch")

	if lastPage == 1 {
		log.Info().
			Int("pages", 1).
			Int("results", len(first.Results)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single page)")
		return first.Results, nil
	}

	pages := make([][]amo.Addon, lastPage+1)
	pages[1] = first.Results
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.MaxConcurrency)

	for page := 2; page <= lastPage; page++ {
		page := page
		g.Go(func() error {
			// A sibling failure cancels gctx; skip work that has not
			// started yet instead of issuing doomed requests.
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := assertInRange(page, first.PageCount); err != nil {
				return err
			}

			env, err := f.fetcher.FetchPage(gctx, page)
			if err != nil {
				pageFailuresTotal.Inc()
				return err
			}
			pagesFetchedTotal.Inc()

			mu.Lock()
			pages[page] = env.Results
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().
			Err(err).
			Int("last_page", lastPage).
			Msg("Page fetch failed, aborting run")
		return nil, err
	}

	results := make([]amo.Addon, 0, len(first.Results)*lastPage)
	for _, pageResults := range pages[1:] {
		results = append(results, pageResults...)
	}

	log.Info().
		Int("pages", lastPage).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return results, nil
}

// assertInRange guards the pagination invariant: no request may target a
// page beyond the count discovered from page 1.
func assertInRange(page, pageCount int) error {
	if page > pageCount {
		return fmt.Errorf("pagination bug: page %d beyond page_count %d", page, pageCount)
	}
	return nil
}
