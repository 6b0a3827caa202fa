package skelz

import (
	"fmt"
	"strings"
)

// digestSeparator marks the digest portion of a canonical reference.
const digestSeparator = "@sha256:"

// Reference is a parsed canonical image reference of the form
// registry/repository@sha256:<hex64>.
//
// References are parsed fresh per operation and never persisted.
type Reference struct {
	host       string
	repository string
	hex        string
}

// ParseReference parses a canonical image reference.
//
// The reference must contain an @sha256: separator followed by exactly
// 64 hex characters. Uppercase hex is normalized to lowercase. Mutable
// tag references are rejected with [ErrInvalidReference].
func ParseReference(s string) (Reference, error) {
	idx := strings.Index(s, digestSeparator)
	if idx < 0 {
		return Reference{}, fmt.Errorf("%w: %q has no %s digest", ErrInvalidReference, s, digestSeparator[1:])
	}

	name := s[:idx]
	hex := strings.ToLower(s[idx+len(digestSeparator):])
	if name == "" {
		return Reference{}, fmt.Errorf("%w: %q has an empty repository", ErrInvalidReference, s)
	}
	if err := validateHex64(hex); err != nil {
		return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, s, err)
	}

	host, repository, ok := strings.Cut(name, "/")
	if !ok {
		return Reference{}, fmt.Errorf("%w: %q has no registry host", ErrInvalidReference, s)
	}

	return Reference{host: host, repository: repository, hex: hex}, nil
}

// validateHex64 checks for exactly 64 lowercase hex characters.
func validateHex64(s string) error {
	if len(s) != 64 {
		return fmt.Errorf("digest must be 64 hex characters, got %d", len(s))
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return fmt.Errorf("digest contains non-hex character %q", r)
		}
	}
	return nil
}

// Host returns the registry host of the reference.
func (r Reference) Host() string { return r.host }

// Repository returns the repository path without the host.
func (r Reference) Repository() string { return r.repository }

// Digest returns the canonical digest string, sha256:<hex64>.
func (r Reference) Digest() string { return "sha256:" + r.hex }

// Name returns the reference without the digest (host/repository).
func (r Reference) Name() string { return r.host + "/" + r.repository }

// String returns the normalized canonical reference.
func (r Reference) String() string {
	return r.host + "/" + r.repository + "@sha256:" + r.hex
}

// ValidateScope checks that the reference host is in the allow-list.
//
// Returns [ErrUnsupportedRegistry] when it is not. Host comparison is
// exact; the allow-list is expected to contain bare hostnames.
func (r Reference) ValidateScope(allowedHosts []string) error {
	for _, h := range allowedHosts {
		if r.host == h {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an allowed evidence source", ErrUnsupportedRegistry, r.host)
}
