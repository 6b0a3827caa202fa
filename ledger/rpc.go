package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// RPC is the narrow ledger surface the store and signing client need.
//
// The production implementation wraps the Solana JSON-RPC client; tests
// substitute function-field mocks.
type RPC interface {
	// LatestBlockhash returns a recent blockhash for transaction building.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// SendTransaction submits a signed transaction and returns its
	// signature. Duplicate record creation surfaces as
	// [ErrDuplicateAttestation].
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// SignatureStatus reports the confirmation status of a submitted
	// transaction. An empty status means the ledger does not know the
	// signature yet.
	SignatureStatus(ctx context.Context, sig solana.Signature) (rpc.ConfirmationStatusType, error)

	// AccountData returns the raw data of the account at addr, or
	// [ErrRecordNotFound] if the account does not exist.
	AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error)

	// Transaction fetches a confirmed transaction by signature.
	Transaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error)
}

// Node is the RPC implementation backed by a Solana JSON-RPC endpoint.
type Node struct {
	client     *rpc.Client
	commitment Commitment
}

// NewNode connects to the given RPC endpoint. Calls observe the given
// commitment level; confirmation waiting is handled by [Client].
func NewNode(endpoint string, commitment Commitment) *Node {
	return &Node{client: rpc.New(endpoint), commitment: commitment}
}

// LatestBlockhash implements RPC.
func (n *Node) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := n.client.GetLatestBlockhash(ctx, n.commitment.asRPC())
	if err != nil {
		return solana.Hash{}, mapRPCError("fetch latest blockhash", err)
	}
	return out.Value.Blockhash, nil
}

// SendTransaction implements RPC.
func (n *Node) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := n.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: n.commitment.asRPC(),
	})
	if err != nil {
		return solana.Signature{}, mapRPCError("send transaction", err)
	}
	return sig, nil
}

// SignatureStatus implements RPC.
func (n *Node) SignatureStatus(ctx context.Context, sig solana.Signature) (rpc.ConfirmationStatusType, error) {
	out, err := n.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return "", mapRPCError("fetch signature status", err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		return "", nil
	}
	status := out.Value[0]
	if status.Err != nil {
		return "", fmt.Errorf("%w: transaction %s failed: %v", ErrRejected, sig, status.Err)
	}
	return status.ConfirmationStatus, nil
}

// AccountData implements RPC.
func (n *Node) AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	out, err := n.client.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: n.commitment.asRPC(),
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account at %s", ErrRecordNotFound, addr)
		}
		return nil, mapRPCError(fmt.Sprintf("fetch account %s", addr), err)
	}
	if out.Value == nil {
		return nil, fmt.Errorf("%w: no account at %s", ErrRecordNotFound, addr)
	}
	return out.Value.Data.GetBinary(), nil
}

// Transaction implements RPC.
func (n *Node) Transaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error) {
	maxVersion := uint64(0)
	out, err := n.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     n.commitment.asRPC(),
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrRecordNotFound, sig)
		}
		return nil, mapRPCError(fmt.Sprintf("fetch transaction %s", sig), err)
	}
	if out == nil || out.Transaction == nil {
		return nil, fmt.Errorf("%w: transaction %s", ErrRecordNotFound, sig)
	}
	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", sig, err)
	}
	return tx, nil
}

// mapRPCError maps JSON-RPC failures to sentinel errors. An error the
// server answered with is a rejection; anything else is a transport
// failure. Account-in-use rejections mean the record already exists.
func mapRPCError(op string, err error) error {
	// The runtime reports a duplicate record as a failed create of an
	// account that is "already in use", either in the error message or in
	// the simulation logs attached to it.
	if strings.Contains(err.Error(), "already in use") {
		return fmt.Errorf("%w: %s: %v", ErrDuplicateAttestation, op, err)
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("%w: %s: %v", ErrRejected, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnreachable, op, err)
}
