package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DirectResolver resolves attestation records from the account at the
// derived address. This is the canonical resolution path.
type DirectResolver struct {
	store     *Store
	programID solana.PublicKey
}

// NewDirectResolver creates a resolver over the attestation program.
func NewDirectResolver(client *Client, programID solana.PublicKey) *DirectResolver {
	return &DirectResolver{store: NewStore(client, programID), programID: programID}
}

// ResolveRecord reads the record at the address derived from digest.
// The transaction identifier is not needed on this path.
func (r *DirectResolver) ResolveRecord(ctx context.Context, dgst, _ string) (*AttestationRecord, error) {
	addr, err := DeriveRecordAddress(r.programID, dgst)
	if err != nil {
		return nil, err
	}
	return r.store.Read(ctx, addr)
}

// MemoResolver resolves attestation records from the signature memo
// embedded in the ledger transaction named by the evidence. This is the
// legacy resolution path.
type MemoResolver struct {
	rpc RPC
}

// NewMemoResolver creates a resolver that decodes logged memos.
func NewMemoResolver(rpc RPC) *MemoResolver {
	return &MemoResolver{rpc: rpc}
}

// ResolveRecord fetches the transaction and decodes its signature memo.
// The record signer is the transaction fee payer.
func (r *MemoResolver) ResolveRecord(ctx context.Context, _, txID string) (*AttestationRecord, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction id %q: %v", ErrInvalidMemo, txID, err)
	}

	tx, err := r.rpc.Transaction(ctx, sig)
	if err != nil {
		return nil, err
	}

	memo, signer, err := memoFromTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("resolve memo from %s: %w", txID, err)
	}
	return &AttestationRecord{Digest: memo.Artifact.Digest, Signer: signer}, nil
}
