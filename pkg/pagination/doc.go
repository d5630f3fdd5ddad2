// Package pagination implements parallel batch fetching of the paginated
// addon search endpoint.
//
// The total page count is only known after the first response, so the fetch
// is inherently two-phase: a synchronous probe of page 1, then a bounded
// worker pool over pages 2..last. The pool is fail-fast: the first page
// failure cancels the remaining work, stragglers are joined, and no partial
// result escapes.
//
// Example usage:
//
//	fetcher := pagination.NewFetcher(client, pagination.Config{MaxConcurrency: 4})
//	addons, err := fetcher.FetchAll(ctx)
package pagination
