package skelz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skelz-org/skelz/ledger"
)

// Sign attests the image on the ledger and publishes evidence to its
// registry. Returns the ledger transaction identifier.
//
// The reference must be canonical (carry its digest) and its host must
// be in the allow-list. The ledger write and the evidence publication
// are not atomic: when publication fails the transaction identifier is
// returned alongside the error, and the attestation stands. Callers
// retry the whole pipeline, never individual stages; a retried write
// fails with [ledger.ErrDuplicateAttestation], which callers may treat
// as already attested rather than as a failure.
func (c *Client) Sign(ctx context.Context, imageRef string) (string, error) {
	if c.signer == nil {
		return "", errNotConfigured("ledger signer")
	}
	if c.transport == nil {
		return "", errNotConfigured("registry transport")
	}

	ref, err := ParseReference(imageRef)
	if err != nil {
		return "", err
	}
	if err := ref.ValidateScope(c.allowedHosts); err != nil {
		return "", err
	}

	txID, err := c.signer.Sign(ctx, ref.Digest())
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", ref.Digest(), err)
	}
	c.log().Info("image attested on ledger",
		slog.String("image", ref.String()),
		slog.String("tx", txID))

	if err := c.transport.PublishEvidence(ctx, ref.String(), txID); err != nil {
		// The attestation is on the ledger; only discovery is missing.
		return txID, fmt.Errorf("attested as %s but evidence not published: %w", txID, err)
	}

	return txID, nil
}

// AlreadyAttested reports whether err means the digest was attested by
// an earlier write. Spelled out here because it is the one failure the
// protocol documents as success-equivalent.
func AlreadyAttested(err error) bool {
	return errors.Is(err, ledger.ErrDuplicateAttestation)
}
