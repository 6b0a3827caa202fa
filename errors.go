package skelz

import "errors"

// Sentinel errors.
var (
	// ErrInvalidReference is returned when an image reference is not
	// canonical (missing or malformed @sha256 digest).
	ErrInvalidReference = errors.New("skelz: invalid image reference")

	// ErrUnsupportedRegistry is returned when the reference host is not an
	// allowed evidence source.
	ErrUnsupportedRegistry = errors.New("skelz: unsupported registry")

	// ErrSignerMismatch is returned when the attested signer does not match
	// the expected public key.
	ErrSignerMismatch = errors.New("skelz: signer mismatch")

	// ErrDigestMismatch is returned when the attested digest does not match
	// the digest of the verified reference.
	ErrDigestMismatch = errors.New("skelz: digest mismatch")
)
