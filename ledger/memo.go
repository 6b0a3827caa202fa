package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MemoProgramID is the memo program (v2) used by the legacy encoding.
var MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// Memo schema constants.
const (
	memoVersion       = 1
	artifactKindImage = "oci-image"
)

// SignatureMemo is the legacy attestation encoding: a self-describing
// JSON payload logged as memo instruction data instead of a dedicated
// record account.
type SignatureMemo struct {
	Version  uint32       `json:"version"`
	Artifact MemoArtifact `json:"artifact"`
}

// MemoArtifact names the attested artifact inside a memo.
type MemoArtifact struct {
	Kind   string `json:"kind"`
	Digest string `json:"digest"`
}

// NewSignatureMemo builds the current-version memo for an image digest.
func NewSignatureMemo(dgst string) SignatureMemo {
	return SignatureMemo{
		Version:  memoVersion,
		Artifact: MemoArtifact{Kind: artifactKindImage, Digest: dgst},
	}
}

// Validate checks the memo's version and artifact kind.
func (m SignatureMemo) Validate() error {
	if m.Version != memoVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidMemo, m.Version)
	}
	if m.Artifact.Kind != artifactKindImage {
		return fmt.Errorf("%w: unsupported artifact kind %q", ErrInvalidMemo, m.Artifact.Kind)
	}
	return nil
}

// EncodeSignatureMemo serializes a memo for inclusion in a transaction.
func EncodeSignatureMemo(m SignatureMemo) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode signature memo: %w", err)
	}
	return data, nil
}

// DecodeSignatureMemo parses and validates memo instruction data.
func DecodeSignatureMemo(data []byte) (*SignatureMemo, error) {
	var m SignatureMemo
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMemo, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// memoInstruction builds the memo-program instruction carrying the data.
// The memo program takes no accounts; the fee payer is the signer of
// record.
func memoInstruction(data []byte) solana.Instruction {
	return solana.NewInstruction(MemoProgramID, solana.AccountMetaSlice{}, data)
}

// memoFromTransaction extracts the signature memo and the fee payer from
// a fetched transaction.
//
// The first memo-program instruction that decodes as a valid memo wins.
// Returns [ErrMemoNotFound] when the transaction has no memo instruction
// and [ErrInvalidMemo] when memo data is present but malformed.
func memoFromTransaction(tx *solana.Transaction) (*SignatureMemo, solana.PublicKey, error) {
	if len(tx.Message.AccountKeys) == 0 {
		return nil, solana.PublicKey{}, fmt.Errorf("%w: transaction has no account keys", ErrInvalidMemo)
	}
	// Account 0 is the fee payer, which signed the transaction.
	signer := tx.Message.AccountKeys[0]

	var lastErr error
	for _, inst := range tx.Message.Instructions {
		prog, err := tx.Message.Program(inst.ProgramIDIndex)
		if err != nil || !prog.Equals(MemoProgramID) {
			continue
		}
		memo, err := DecodeSignatureMemo(inst.Data)
		if err != nil {
			lastErr = err
			continue
		}
		return memo, signer, nil
	}

	if lastErr != nil {
		return nil, solana.PublicKey{}, lastErr
	}
	return nil, solana.PublicKey{}, ErrMemoNotFound
}
