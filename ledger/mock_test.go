package ledger

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// mockRPC implements RPC with overridable function fields.
type mockRPC struct {
	latestBlockhashFunc func(ctx context.Context) (solana.Hash, error)
	sendTransactionFunc func(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	signatureStatusFunc func(ctx context.Context, sig solana.Signature) (rpc.ConfirmationStatusType, error)
	accountDataFunc     func(ctx context.Context, addr solana.PublicKey) ([]byte, error)
	transactionFunc     func(ctx context.Context, sig solana.Signature) (*solana.Transaction, error)
}

func (m *mockRPC) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	if m.latestBlockhashFunc != nil {
		return m.latestBlockhashFunc(ctx)
	}
	return solana.Hash{}, nil
}

func (m *mockRPC) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if m.sendTransactionFunc != nil {
		return m.sendTransactionFunc(ctx, tx)
	}
	return solana.Signature{}, errors.New("unexpected SendTransaction call")
}

func (m *mockRPC) SignatureStatus(ctx context.Context, sig solana.Signature) (rpc.ConfirmationStatusType, error) {
	if m.signatureStatusFunc != nil {
		return m.signatureStatusFunc(ctx, sig)
	}
	return rpc.ConfirmationStatusFinalized, nil
}

func (m *mockRPC) AccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	if m.accountDataFunc != nil {
		return m.accountDataFunc(ctx, addr)
	}
	return nil, errors.New("unexpected AccountData call")
}

func (m *mockRPC) Transaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error) {
	if m.transactionFunc != nil {
		return m.transactionFunc(ctx, sig)
	}
	return nil, errors.New("unexpected Transaction call")
}
