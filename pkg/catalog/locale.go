package catalog

import "github.com/amoutil/amo-fetch/pkg/amo"

// Resolve returns the value of a localized field for the record's default
// locale. Path names the field in error reports.
func Resolve(ls amo.LocaleString, locale, path string) (string, error) {
	v, ok := ls.Lookup(locale)
	if !ok {
		return "", &MissingLocaleError{Path: path, Locale: locale}
	}
	return v, nil
}
