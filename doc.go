// Package skelz binds OCI image digests to attestations anchored on a
// public ledger.
//
// Signing writes a write-once record (image digest + signer public key)
// to a deterministic ledger address, then attaches a small proof artifact
// to the image in its registry so the transaction can be discovered later.
// Verification walks the chain backwards: parse the canonical reference,
// discover the proof artifact via the OCI 1.1 referrers API, resolve the
// ledger record, and compare signer and digest.
//
// The root package exposes the high-level [Client]. Ledger plumbing lives
// in the ledger subpackage, registry plumbing in the registry subpackage.
package skelz
