// Package amo provides a client for the Mozilla Add-ons search API.
package amo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the production search endpoint.
const DefaultBaseURL = "https://addons.mozilla.org/api/v5/addons/search/"

// Prometheus metrics for search API requests.
var (
	amoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amo_requests_total",
		Help: "Total search API requests by HTTP status",
	}, []string{"status"})

	amoRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "amo_request_duration_seconds",
		Help:    "Search API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)

// Config holds the client configuration. The query fields mirror the search
// endpoint parameters sent on every page request.
type Config struct {
	BaseURL   string
	UserAgent string

	Lang     string
	App      string
	Type     string
	Sort     string
	PageSize int

	// MinUsers, when set, adds users__gt to every request. When nil the
	// parameter is omitted entirely, not sent as a sentinel.
	MinUsers *int64

	// Timeout bounds each page request so the failure model stays
	// deterministic regardless of transport defaults.
	Timeout time.Duration
}

// DefaultConfig returns the query configuration the packaging pipeline uses.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "amo-fetch/1.0",
		Lang:      "en-US",
		App:       "firefox",
		Type:      "extension",
		Sort:      "users",
		PageSize:  50,
		Timeout:   30 * time.Second,
	}
}

// Client fetches single pages of the addon search endpoint.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new search client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive (got %d)", cfg.PageSize)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "amo-client").Logger(),
	}, nil
}

// PageURL builds the full request URL for a page number.
func (c *Client) PageURL(page int) string {
	params := url.Values{}
	params.Set("lang", c.config.Lang)
	params.Set("app", c.config.App)
	params.Set("type", c.config.Type)
	params.Set("sort", c.config.Sort)
	params.Set("page_size", strconv.Itoa(c.config.PageSize))
	params.Set("page", strconv.Itoa(page))
	if c.config.MinUsers != nil {
		params.Set("users__gt", strconv.FormatInt(*c.config.MinUsers, 10))
	}
	return c.config.BaseURL + "?" + params.Encode()
}

// FetchPage performs exactly one request for the given page number and
// decodes the search envelope. Transport errors and non-200 statuses return
// a FetchError, undecodable bodies a MalformedEnvelopeError; both are fatal
// to the caller's run, there is no retry or skip.
func (c *Client) FetchPage(ctx context.Context, page int) (*SearchPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(page), nil)
	if err != nil {
		return nil, &FetchError{Page: page, Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Int("page", page).
		Str("url", req.URL.String()).
		Msg("Fetching page")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	amoRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		amoRequestsTotal.WithLabelValues("transport_error").Inc()
		c.logger.Error().Err(err).Int("page", page).Msg("Page request failed")
		return nil, &FetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	amoRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("page", page).
			Int("status", resp.StatusCode).
			Msg("Unexpected page response status")
		return nil, &FetchError{Page: page, StatusCode: resp.StatusCode}
	}

	var envelope SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("Envelope decode failed")
		return nil, &MalformedEnvelopeError{Page: page, Err: err}
	}

	c.logger.Debug().
		Int("page", page).
		Int("results", len(envelope.Results)).
		Int("page_count", envelope.PageCount).
		Msg("Page fetched")

	return &envelope, nil
}
