package ledger

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// AttestationRecord is the on-chain record binding an image digest to the
// public key that attested it. Records are created once and never
// updated or deleted; the ledger owns them after the write.
type AttestationRecord struct {
	// Digest is the canonical image digest, sha256:<hex64>.
	Digest string

	// Signer is the public key that signed the write transaction.
	Signer solana.PublicKey
}

// Anchor-style discriminators identify the account layout and the write
// instruction on the wire.
var (
	recordDiscriminator      = discriminator("account:Signature")
	writeRecordDiscriminator = discriminator("global:write_signature")
)

const discriminatorLen = 8

// discriminator returns the 8-byte prefix for the given namespaced name.
func discriminator(name string) []byte {
	sum := sha256.Sum256([]byte(name))
	return sum[:8]
}

// recordData is the borsh layout following the account discriminator.
type recordData struct {
	Digest string
	Signer solana.PublicKey
}

// EncodeRecord serializes a record as stored in its account.
func EncodeRecord(rec *AttestationRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(recordDiscriminator)
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.Encode(recordData{Digest: rec.Digest, Signer: rec.Signer}); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRecord parses account data into an attestation record.
//
// Returns [ErrInvalidRecord] when the discriminator or layout does not
// match. The data is returned as stored; no normalization is applied.
func DecodeRecord(data []byte) (*AttestationRecord, error) {
	if len(data) < discriminatorLen {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrInvalidRecord, len(data))
	}
	if !bytes.Equal(data[:discriminatorLen], recordDiscriminator) {
		return nil, fmt.Errorf("%w: unexpected account discriminator", ErrInvalidRecord)
	}

	var rd recordData
	if err := bin.NewBorshDecoder(data[discriminatorLen:]).Decode(&rd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return &AttestationRecord{Digest: rd.Digest, Signer: rd.Signer}, nil
}

// writeRecordInstructionData builds the instruction payload for creating
// a record: the instruction discriminator followed by the borsh digest.
func writeRecordInstructionData(dgst string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(writeRecordDiscriminator)
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteString(dgst); err != nil {
		return nil, fmt.Errorf("encode instruction data: %w", err)
	}
	return buf.Bytes(), nil
}
