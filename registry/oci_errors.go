package registry

import (
	"errors"
	"fmt"

	"github.com/skelz-org/skelz/registry/oras"
)

// mapOCIError translates OCI client errors to this package's sentinels.
// Errors from custom OCIClient implementations pass through unchanged.
func mapOCIError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, oras.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, oras.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, oras.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	return err
}
