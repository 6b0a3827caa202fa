package registry

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrInvalidReference is returned when a reference string is malformed.
	ErrInvalidReference = errors.New("registry: invalid reference")

	// ErrNotFound is returned when a manifest or blob does not exist.
	ErrNotFound = errors.New("registry: not found")

	// ErrUnauthorized is returned when the registry rejects credentials.
	ErrUnauthorized = errors.New("registry: unauthorized")

	// ErrForbidden is returned when the registry denies access.
	ErrForbidden = errors.New("registry: forbidden")

	// ErrPublishFailed is returned when attaching evidence to an image
	// fails. The preceding ledger write is not rolled back; a signed image
	// without discoverable evidence is a valid transient state.
	ErrPublishFailed = errors.New("registry: evidence publish failed")

	// ErrNoEvidenceFound is returned when an image has no valid evidence
	// artifact attached.
	ErrNoEvidenceFound = errors.New("registry: no evidence found")

	// ErrMissingSignatureAnnotation is returned when a selected evidence
	// artifact carries no transaction signature annotation.
	ErrMissingSignatureAnnotation = errors.New("registry: missing signature annotation")
)
