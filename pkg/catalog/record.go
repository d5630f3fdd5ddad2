// Package catalog maps raw search results into the packaging schema
// consumed by downstream install tooling.
package catalog

// Record is one published catalog entry. The five top-level fields are
// required and never empty; Meta holds only the optional keys whose source
// data existed, and is omitted entirely when none did. Records are built
// once and never mutated afterwards.
type Record struct {
	Pname   string         `json:"pname"`
	Version string         `json:"version"`
	URL     string         `json:"url"`
	Hash    string         `json:"hash"`
	AddonID string         `json:"addonId"`
	Meta    map[string]any `json:"meta,omitempty"`
}
