// Package testutil provides testing utilities for the AMO fetch pipeline.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// MockAMO is a configurable mock addon search server. Pages are scripted as
// raw JSON result arrays; the server wraps them in a search envelope and
// tracks every request it sees.
type MockAMO struct {
	server *httptest.Server

	mu        sync.Mutex
	pages     []string       // pages[i] is the results array for page i+1
	count     int            // total result count reported in the envelope
	failPages map[int]int    // page -> HTTP status to fail with
	rawBodies map[int]string // page -> verbatim body (for malformed envelopes)
	queries   []url.Values
}

// NewMockAMO creates a mock server with a single empty page.
func NewMockAMO() *MockAMO {
	mock := &MockAMO{
		pages:     []string{"[]"},
		failPages: map[int]int{},
		rawBodies: map[int]string{},
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server URL.
func (m *MockAMO) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAMO) Close() {
	m.server.Close()
}

// SetPages scripts the page contents. Each argument is a JSON array of raw
// search results; page_count follows the number of arguments.
func (m *MockAMO) SetPages(pages ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = pages
}

// SetCount overrides the total count reported in every envelope.
func (m *MockAMO) SetCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count = count
}

// FailPage makes the given page respond with an HTTP error status.
func (m *MockAMO) FailPage(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPages[page] = status
}

// SetRawBody makes the given page respond 200 with a verbatim body,
// bypassing envelope construction.
func (m *MockAMO) SetRawBody(page int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawBodies[page] = body
}

// Queries returns a copy of every query string seen, in arrival order.
func (m *MockAMO) Queries() []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]url.Values(nil), m.queries...)
}

// RequestedPages returns the page numbers requested, in arrival order.
func (m *MockAMO) RequestedPages() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := make([]int, 0, len(m.queries))
	for _, q := range m.queries {
		page, _ := strconv.Atoi(q.Get("page"))
		pages = append(pages, page)
	}
	return pages
}

func (m *MockAMO) handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	m.mu.Lock()
	m.queries = append(m.queries, query)
	status := m.failPages[page]
	rawBody, hasRaw := m.rawBodies[page]
	pageCount := len(m.pages)
	count := m.count
	results := "[]"
	if page <= len(m.pages) {
		results = m.pages[page-1]
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if status != 0 {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"detail": "error on page %d"}`, page)
		return
	}

	if hasRaw {
		w.Write([]byte(rawBody))
		return
	}

	next := "null"
	if page < pageCount {
		next = fmt.Sprintf("%q", m.server.URL+"/?page="+strconv.Itoa(page+1))
	}
	previous := "null"
	if page > 1 {
		previous = fmt.Sprintf("%q", m.server.URL+"/?page="+strconv.Itoa(page-1))
	}

	fmt.Fprintf(w, `{
		"page_size": %s,
		"page_count": %d,
		"count": %d,
		"next": %s,
		"previous": %s,
		"results": %s
	}`, nonEmpty(query.Get("page_size"), "50"), pageCount, count, next, previous, results)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// AddonJSON returns a minimal public addon search result with the given
// slug. The digest is the sha256 of an empty input.
func AddonJSON(slug string) string {
	return fmt.Sprintf(`{
		"slug": %q,
		"guid": "%s@example.com",
		"status": "public",
		"default_locale": "en-US",
		"current_version": {
			"version": "1.0",
			"file": {
				"url": "https://example.org/%s.xpi",
				"hash": "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
				"status": "public"
			}
		}
	}`, slug, slug, slug)
}
