package skelz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/skelz-org/skelz/ledger"
	"github.com/skelz-org/skelz/registry"
)

// Stage names one step of the verification pipeline.
type Stage string

const (
	StageValidateReference Stage = "ValidateReference"
	StageDiscoverEvidence  Stage = "DiscoverEvidence"
	StageExtractTxID       Stage = "ExtractTxID"
	StageResolveRecord     Stage = "ResolveRecord"
	StageCompareSigner     Stage = "CompareSigner"
	StageCompareDigest     Stage = "CompareDigest"
)

// StageError is a verification failure tagged with the stage that
// produced it. The pipeline short-circuits at the first failing stage;
// no partial outcome exists.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("skelz: verification failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// stageErr tags an error with its pipeline stage.
func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Verification is the successful outcome of Verify.
type Verification struct {
	// Digest is the attested image digest.
	Digest string

	// Signer is the public key that attested the digest.
	Signer solana.PublicKey

	// TxID is the ledger transaction named by the evidence.
	TxID string

	// Evidence is the authoritative evidence artifact.
	Evidence registry.EvidenceArtifact
}

// Verify re-derives trust from a bare image reference back to a signer
// identity.
//
// The pipeline runs ValidateReference, DiscoverEvidence, ExtractTxID,
// ResolveRecord, CompareSigner, CompareDigest in order and stops at the
// first failure, returning a [*StageError] naming the stage. Signer
// comparison is over canonical public key bytes, not string formatting.
func (c *Client) Verify(ctx context.Context, imageRef, expectedSigner string) (*Verification, error) {
	if c.transport == nil {
		return nil, errNotConfigured("registry transport")
	}
	if c.resolver == nil {
		return nil, errNotConfigured("record resolver")
	}

	// Stage 1: reference format and registry scope.
	ref, err := ParseReference(imageRef)
	if err != nil {
		return nil, stageErr(StageValidateReference, err)
	}
	if err := ref.ValidateScope(c.allowedHosts); err != nil {
		return nil, stageErr(StageValidateReference, err)
	}
	expected, err := solana.PublicKeyFromBase58(expectedSigner)
	if err != nil {
		return nil, stageErr(StageValidateReference,
			fmt.Errorf("expected signer %q is not a valid public key: %w", expectedSigner, err))
	}

	// Stage 2: discover evidence and select the authoritative artifact.
	artifacts, err := c.transport.DiscoverEvidence(ctx, ref.String())
	if err != nil {
		return nil, stageErr(StageDiscoverEvidence, err)
	}
	evidence, err := registry.SelectLatest(artifacts, ref.String())
	if err != nil {
		return nil, stageErr(StageDiscoverEvidence, err)
	}

	// Stage 3: the evidence must name a ledger transaction.
	txID := evidence.TxID()
	if txID == "" {
		return nil, stageErr(StageExtractTxID, registry.ErrMissingSignatureAnnotation)
	}

	// Stage 4: resolve the attestation record.
	record, err := c.resolver.ResolveRecord(ctx, ref.Digest(), txID)
	if err != nil {
		return nil, stageErr(StageResolveRecord, err)
	}

	// Stage 5: the record's signer must be the expected identity.
	if !record.Signer.Equals(expected) {
		return nil, stageErr(StageCompareSigner, fmt.Errorf("%w: attested by %s, expected %s",
			ErrSignerMismatch, record.Signer, expected))
	}

	// Stage 6: the record's digest must match the reference's digest
	// byte for byte.
	if record.Digest != ref.Digest() {
		return nil, stageErr(StageCompareDigest, fmt.Errorf("%w: record has %s, reference has %s",
			ErrDigestMismatch, record.Digest, ref.Digest()))
	}

	c.log().Info("image verified",
		slog.String("image", ref.String()),
		slog.String("signer", record.Signer.String()),
		slog.String("tx", txID))

	return &Verification{
		Digest:   ref.Digest(),
		Signer:   record.Signer,
		TxID:     txID,
		Evidence: evidence,
	}, nil
}

// Ensure the ledger resolvers satisfy RecordResolver.
var (
	_ RecordResolver = (*ledger.DirectResolver)(nil)
	_ RecordResolver = (*ledger.MemoResolver)(nil)
)
