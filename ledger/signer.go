package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
)

// Mode selects the attestation encoding a Signer writes.
type Mode string

const (
	// ModeRecord writes a dedicated record account at the derived address.
	ModeRecord Mode = "record"

	// ModeMemo logs a JSON signature memo in a generic transaction.
	// Kept for compatibility with attestations made by earlier versions.
	ModeMemo Mode = "memo"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRecord, ModeMemo:
		return Mode(s), nil
	}
	return "", fmt.Errorf("ledger: unknown attestation mode %q", s)
}

// Signer writes attestations for image digests.
type Signer struct {
	client    *Client
	store     *Store
	programID solana.PublicKey
	mode      Mode
}

// NewSigner creates a signing client in the given mode.
func NewSigner(client *Client, programID solana.PublicKey, mode Mode) *Signer {
	return &Signer{
		client:    client,
		store:     NewStore(client, programID),
		programID: programID,
		mode:      mode,
	}
}

// Sign attests the digest on the ledger and returns the transaction
// identifier once it reaches the configured commitment.
//
// In record mode a duplicate attestation fails with
// [ErrDuplicateAttestation]; record creation is atomic, so when
// concurrent signers race on the same digest exactly one write wins.
func (s *Signer) Sign(ctx context.Context, dgst string) (string, error) {
	switch s.mode {
	case ModeMemo:
		return s.signMemo(ctx, dgst)
	default:
		return s.signRecord(ctx, dgst)
	}
}

func (s *Signer) signRecord(ctx context.Context, dgst string) (string, error) {
	addr, err := DeriveRecordAddress(s.programID, dgst)
	if err != nil {
		return "", err
	}
	rec := &AttestationRecord{Digest: dgst, Signer: s.client.Payer()}
	return s.store.Write(ctx, addr, rec)
}

func (s *Signer) signMemo(ctx context.Context, dgst string) (string, error) {
	data, err := EncodeSignatureMemo(NewSignatureMemo(dgst))
	if err != nil {
		return "", err
	}
	sig, err := s.client.submit(ctx, []solana.Instruction{memoInstruction(data)})
	if err != nil {
		return "", fmt.Errorf("publish signature memo: %w", err)
	}
	s.client.log().Info("signature memo published",
		slog.String("signature", sig.String()),
		slog.String("digest", dgst))
	return sig.String(), nil
}

// LoadKeypair reads a Solana keypair file (id.json format).
func LoadKeypair(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair at %s: %w", path, err)
	}
	return key, nil
}
