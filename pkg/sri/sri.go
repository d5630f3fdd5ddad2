// Package sri converts labeled hex digests into Subresource Integrity
// strings as consumed by the packaging tooling.
package sri

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// digestSizes maps supported algorithm labels to their raw digest length in
// bytes. The search API serves sha256 in practice; sha512 is accepted with
// the same strict length check.
var digestSizes = map[string]int{
	"sha256": 32,
	"sha512": 64,
}

// MalformedHashError reports a digest string that cannot be re-encoded.
// It is fatal to the whole run; there is no fallback to the raw input.
type MalformedHashError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *MalformedHashError) Error() string {
	return fmt.Sprintf("malformed hash %q: %s", e.Input, e.Reason)
}

// Encode converts a digest of the form "<algorithm>:<hex>" into the SRI
// form "<algorithm>-<base64 of the raw digest bytes>".
func Encode(digest string) (string, error) {
	algo, hexPart, ok := strings.Cut(digest, ":")
	if !ok {
		return "", &MalformedHashError{Input: digest, Reason: "missing algorithm separator"}
	}

	size, known := digestSizes[algo]
	if !known {
		return "", &MalformedHashError{Input: digest, Reason: fmt.Sprintf("unsupported algorithm %q", algo)}
	}

	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return "", &MalformedHashError{Input: digest, Reason: "digest is not valid hex"}
	}

	if len(raw) != size {
		return "", &MalformedHashError{
			Input:  digest,
			Reason: fmt.Sprintf("%s digest must be %d bytes, got %d", algo, size, len(raw)),
		}
	}

	return algo + "-" + base64.StdEncoding.EncodeToString(raw), nil
}
