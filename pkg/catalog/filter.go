package catalog

import "github.com/amoutil/amo-fetch/pkg/amo"

// StatusPublic is the only publication status the pipeline accepts.
const StatusPublic = "public"

// Eligible reports whether both the addon and its current version's file
// are public. Ineligible records are silently excluded; this is the one
// intentional, non-erroneous exclusion in the pipeline.
func Eligible(a *amo.Addon) bool {
	if a.Status != StatusPublic {
		return false
	}
	if a.CurrentVersion == nil || a.CurrentVersion.File == nil {
		return false
	}
	return a.CurrentVersion.File.Status == StatusPublic
}
