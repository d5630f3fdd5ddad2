package catalog

import "fmt"

// MissingFieldError reports a required output field absent from a raw
// record. It fails the entire run, never just the record.
type MissingFieldError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Path)
}

// MissingLocaleError reports a localized field without a value for the
// record's default locale. A well-formed record never does this, so it is a
// hard validation failure rather than a fallback.
type MissingLocaleError struct {
	Path   string
	Locale string
}

// Error implements the error interface.
func (e *MissingLocaleError) Error() string {
	return fmt.Sprintf("field %q has no value for default locale %q", e.Path, e.Locale)
}
