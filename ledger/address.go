package ledger

import (
	"crypto/sha256"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// recordSeed is the constant domain tag for record addresses.
const recordSeed = "signature"

// DefaultProgramID is the attestation program this module writes records
// through unless configuration overrides it.
var DefaultProgramID = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

// DeriveRecordAddress maps an image digest to its record address.
//
// The address is derived from the seeds ["signature", SHA-256(digest)]
// through the program-derived-address function, so it is reproducible
// from the digest alone and distinct digests map to distinct addresses
// with cryptographically negligible collision probability. Hashing the
// digest string keeps the seed within the 32-byte seed limit.
func DeriveRecordAddress(programID solana.PublicKey, dgst string) (solana.PublicKey, error) {
	sum := sha256.Sum256([]byte(dgst))
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte(recordSeed), sum[:]}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive record address for %s: %w", dgst, err)
	}
	return addr, nil
}
