package oras

import (
	"errors"
	"fmt"
	"net/http"

	"oras.land/oras-go/v2/errdef"
	"oras.land/oras-go/v2/registry/remote/errcode"
)

// Sentinel errors. The registry package translates these to its own
// taxonomy at the interface boundary.
var (
	// ErrNotFound is returned when a manifest or blob does not exist.
	ErrNotFound = errors.New("oras: not found")

	// ErrUnauthorized is returned when the registry rejects credentials.
	ErrUnauthorized = errors.New("oras: unauthorized")

	// ErrForbidden is returned when the registry denies access.
	ErrForbidden = errors.New("oras: forbidden")

	// ErrInvalidDescriptor is returned when a descriptor is malformed.
	ErrInvalidDescriptor = errors.New("oras: invalid descriptor")

	// ErrManifestInvalid is returned when a manifest cannot be used.
	ErrManifestInvalid = errors.New("oras: invalid manifest")
)

// mapError maps ORAS transport errors to this package's sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errdef.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	// ORAS wraps HTTP errors, check for specific error types
	var errResp *errcode.ErrorResponse
	if errors.As(err, &errResp) {
		switch errResp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrForbidden, err)
		}
	}
	return err
}
