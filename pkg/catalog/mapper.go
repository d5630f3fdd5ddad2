package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/amoutil/amo-fetch/pkg/amo"
	"github.com/amoutil/amo-fetch/pkg/sri"
)

// Map transforms one eligible raw addon into a catalog Record. This is the
// single place where record-shape guarantees are established: a missing
// required field aborts the entire run, and optional fields land in Meta
// only when the source actually carried them, never as null placeholders.
func Map(a *amo.Addon) (Record, error) {
	locale := a.DefaultLocale
	if locale == "" {
		return Record{}, &MissingFieldError{Path: "default_locale"}
	}

	if !a.Slug.Present() {
		return Record{}, &MissingFieldError{Path: "slug"}
	}
	pname, err := Resolve(a.Slug, locale, "slug")
	if err != nil {
		return Record{}, err
	}

	cv := a.CurrentVersion
	if cv == nil {
		return Record{}, &MissingFieldError{Path: "current_version"}
	}
	if cv.Version == "" {
		return Record{}, &MissingFieldError{Path: "current_version.version"}
	}

	file := cv.File
	if file == nil {
		return Record{}, &MissingFieldError{Path: "current_version.file"}
	}
	if file.URL == "" {
		return Record{}, &MissingFieldError{Path: "current_version.file.url"}
	}
	if file.Hash == "" {
		return Record{}, &MissingFieldError{Path: "current_version.file.hash"}
	}
	hash, err := sri.Encode(file.Hash)
	if err != nil {
		return Record{}, err
	}

	if a.GUID == "" {
		return Record{}, &MissingFieldError{Path: "guid"}
	}

	rec := Record{
		Pname:   pname,
		Version: cv.Version,
		URL:     file.URL,
		Hash:    hash,
		AddonID: a.GUID,
	}

	meta := map[string]any{}

	if a.Homepage != nil && a.Homepage.URL.Present() {
		home, err := Resolve(a.Homepage.URL, locale, "homepage.url")
		if err != nil {
			return Record{}, err
		}
		meta["homepage"] = home
	}

	if a.Summary.Present() {
		desc, err := Resolve(a.Summary, locale, "summary")
		if err != nil {
			return Record{}, err
		}
		meta["description"] = desc
	}

	if cv.License != nil && cv.License.Slug != nil {
		meta["license"] = *cv.License.Slug
	}

	if file.Permissions != nil {
		meta["permissions"] = file.Permissions
	}
	if file.HostPermissions != nil {
		meta["hostPermissions"] = file.HostPermissions
	}
	if file.OptionalPermissions != nil {
		meta["optionalPermissions"] = file.OptionalPermissions
	}

	if a.RequiresPayment != nil {
		meta["requiresPayment"] = *a.RequiresPayment
	}

	if fx, ok := a.Compatibility["firefox"]; ok && !jsonNull(fx) {
		meta["compatibility"] = fx
	}

	if len(a.Categories) > 0 && !jsonNull(a.Categories) {
		meta["categories"] = a.Categories
	}
	if a.Tags != nil {
		meta["tags"] = a.Tags
	}

	if a.HasEula != nil {
		meta["hasEula"] = *a.HasEula
	}
	if a.HasPrivacyPolicy != nil {
		meta["hasPrivacyPolicy"] = *a.HasPrivacyPolicy
	}

	if a.Promoted != nil && a.Promoted.Category != nil {
		meta["promotedCategory"] = *a.Promoted.Category
	}

	if len(meta) > 0 {
		rec.Meta = meta
	}

	return rec, nil
}

func jsonNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
