package ledger

import "errors"

// Sentinel errors for ledger operations.
var (
	// ErrUnreachable is returned when the RPC endpoint cannot be reached.
	ErrUnreachable = errors.New("ledger: rpc unreachable")

	// ErrRejected is returned when the ledger rejects a transaction for a
	// reason other than a duplicate record (insufficient funds, invalid
	// blockhash, program error).
	ErrRejected = errors.New("ledger: transaction rejected")

	// ErrDuplicateAttestation is returned when a record already exists at
	// the target address. Callers may treat this as "already attested".
	ErrDuplicateAttestation = errors.New("ledger: attestation already exists")

	// ErrRecordNotFound is returned when no record exists at an address.
	ErrRecordNotFound = errors.New("ledger: record not found")

	// ErrInvalidRecord is returned when account data does not decode as an
	// attestation record.
	ErrInvalidRecord = errors.New("ledger: invalid record data")

	// ErrMemoNotFound is returned when a transaction carries no signature
	// memo instruction.
	ErrMemoNotFound = errors.New("ledger: no signature memo in transaction")

	// ErrInvalidMemo is returned when memo data does not decode as a
	// signature memo.
	ErrInvalidMemo = errors.New("ledger: invalid signature memo")
)
