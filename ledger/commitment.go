package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
)

// Commitment is the confirmation level a submitted transaction must reach
// before Sign/Write return.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// ParseCommitment validates a commitment string from configuration.
func ParseCommitment(s string) (Commitment, error) {
	switch Commitment(s) {
	case CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized:
		return Commitment(s), nil
	}
	return "", fmt.Errorf("ledger: unknown commitment %q", s)
}

// rank orders commitments by strength.
func (c Commitment) rank() int {
	switch c {
	case CommitmentProcessed:
		return 1
	case CommitmentConfirmed:
		return 2
	case CommitmentFinalized:
		return 3
	}
	return 0
}

// Reached reports whether an observed confirmation status satisfies c.
func (c Commitment) Reached(status rpc.ConfirmationStatusType) bool {
	return Commitment(status).rank() >= c.rank()
}

// asRPC converts to the RPC client's commitment type.
func (c Commitment) asRPC() rpc.CommitmentType {
	switch c {
	case CommitmentProcessed:
		return rpc.CommitmentProcessed
	case CommitmentFinalized:
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}
