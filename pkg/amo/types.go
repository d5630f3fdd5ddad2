package amo

import (
	"encoding/json"
	"fmt"
)

// SearchPage is one response envelope of the addon search endpoint.
// PageCount from page 1 is authoritative for the whole run.
type SearchPage struct {
	PageSize  int     `json:"page_size"`
	PageCount int     `json:"page_count"`
	Count     int     `json:"count"`
	Next      *string `json:"next"`
	Previous  *string `json:"previous"`
	Results   []Addon `json:"results"`
}

// Addon is one raw, partially untrusted search result. Optional sub-objects
// stay nil when the API omits them; the mapper decides what is required.
type Addon struct {
	Slug             LocaleString               `json:"slug"`
	Status           string                     `json:"status"`
	GUID             string                     `json:"guid"`
	DefaultLocale    string                     `json:"default_locale"`
	CurrentVersion   *Version                   `json:"current_version"`
	Homepage         *Homepage                  `json:"homepage"`
	Summary          LocaleString               `json:"summary"`
	RequiresPayment  *bool                      `json:"requires_payment"`
	Compatibility    map[string]json.RawMessage `json:"compatibility"`
	Categories       json.RawMessage            `json:"categories"`
	Tags             []string                   `json:"tags"`
	HasEula          *bool                      `json:"has_eula"`
	HasPrivacyPolicy *bool                      `json:"has_privacy_policy"`
	Promoted         *Promoted                  `json:"promoted"`
}

// Version is the current_version sub-object.
type Version struct {
	Version string   `json:"version"`
	License *License `json:"license"`
	File    *File    `json:"file"`
}

// License carries the license slug used as an opaque key downstream.
type License struct {
	Slug *string `json:"slug"`
}

// File is the current_version.file sub-object. The permission slices stay
// nil when the key is absent, which is distinct from an empty list.
type File struct {
	URL                 string   `json:"url"`
	Hash                string   `json:"hash"`
	Status              string   `json:"status"`
	Permissions         []string `json:"permissions"`
	HostPermissions     []string `json:"host_permissions"`
	OptionalPermissions []string `json:"optional_permissions"`
}

// Homepage wraps the localized homepage URL.
type Homepage struct {
	URL LocaleString `json:"url"`
}

// Promoted carries the promotion category, if any.
type Promoted struct {
	Category *string `json:"category"`
}

// LocaleString is a text field the API serves either as a plain JSON string
// or as a locale keyed object such as {"en-US": "..."}. The zero value
// represents an absent field.
type LocaleString struct {
	plain  *string
	values map[string]*string
}

// UnmarshalJSON accepts a string, a locale map, or null.
func (ls *LocaleString) UnmarshalJSON(data []byte) error {
	*ls = LocaleString{}

	if string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		ls.plain = &s
		return nil
	}

	var m map[string]*string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("locale field is neither string nor object: %w", err)
	}
	ls.values = m
	return nil
}

// Present reports whether the field carried any value at all.
func (ls LocaleString) Present() bool {
	return ls.plain != nil || ls.values != nil
}

// Lookup returns the value for the given locale. A plain string form
// matches every locale. The second return is false when the locale key is
// absent or its value is null.
func (ls LocaleString) Lookup(locale string) (string, bool) {
	if ls.plain != nil {
		return *ls.plain, true
	}
	v, ok := ls.values[locale]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}
