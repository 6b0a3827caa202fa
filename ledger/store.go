package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
)

// Store is the write-once key/value view of the attestation program.
//
// Write creates the record account at an address iff it is absent; the
// runtime enforces single creation atomically, so no read-then-write
// race exists. Read returns the record unchanged.
type Store struct {
	client    *Client
	programID solana.PublicKey
}

// NewStore creates a store over the given attestation program.
func NewStore(client *Client, programID solana.PublicKey) *Store {
	return &Store{client: client, programID: programID}
}

// Write creates rec at addr and returns the transaction identifier.
//
// Fails with [ErrDuplicateAttestation] if the address already holds a
// record, [ErrUnreachable] on transport failure, and [ErrRejected] on
// other ledger-side failures. The record signer must be the client's
// payer; the program records the transaction signer, not an argument.
func (s *Store) Write(ctx context.Context, addr solana.PublicKey, rec *AttestationRecord) (string, error) {
	if !rec.Signer.IsZero() && !rec.Signer.Equals(s.client.Payer()) {
		return "", fmt.Errorf("%w: record signer %s is not the payer", ErrRejected, rec.Signer)
	}

	data, err := writeRecordInstructionData(rec.Digest)
	if err != nil {
		return "", err
	}

	inst := solana.NewInstruction(s.programID, solana.AccountMetaSlice{
		solana.NewAccountMeta(s.client.Payer(), true, true),
		solana.NewAccountMeta(addr, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, data)

	sig, err := s.client.submit(ctx, []solana.Instruction{inst})
	if err != nil {
		return "", fmt.Errorf("write record at %s: %w", addr, err)
	}
	s.client.log().Info("attestation record written",
		slog.String("address", addr.String()),
		slog.String("digest", rec.Digest))
	return sig.String(), nil
}

// Read returns the record stored at addr.
//
// Fails with [ErrRecordNotFound] if the address holds no account and
// [ErrInvalidRecord] if the account data has a foreign layout.
func (s *Store) Read(ctx context.Context, addr solana.PublicKey) (*AttestationRecord, error) {
	data, err := s.client.rpc.AccountData(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read record at %s: %w", addr, err)
	}
	return DecodeRecord(data)
}
