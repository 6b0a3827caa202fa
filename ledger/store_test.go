package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreWrite(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	dgst := "sha256:" + strings.Repeat("a", 64)
	addr, err := DeriveRecordAddress(DefaultProgramID, dgst)
	require.NoError(t, err)

	wantSig := solana.Signature{1, 2, 3}
	var sent *solana.Transaction
	mock := &mockRPC{
		sendTransactionFunc: func(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
			sent = tx
			return wantSig, nil
		},
	}

	store := NewStore(NewClient(mock, payer.PrivateKey, CommitmentConfirmed), DefaultProgramID)
	rec := &AttestationRecord{Digest: dgst, Signer: payer.PublicKey()}

	txID, err := store.Write(context.Background(), addr, rec)
	require.NoError(t, err)
	assert.Equal(t, wantSig.String(), txID)

	require.NotNil(t, sent)
	require.Len(t, sent.Message.Instructions, 1)

	inst := sent.Message.Instructions[0]
	prog, err := sent.Message.Program(inst.ProgramIDIndex)
	require.NoError(t, err)
	assert.Equal(t, DefaultProgramID, prog)
	assert.Equal(t, writeRecordDiscriminator, []byte(inst.Data[:discriminatorLen]))

	// Account 0 is the fee payer; the record account and the system
	// program ride along in the key table.
	assert.Equal(t, payer.PublicKey(), sent.Message.AccountKeys[0])
	assert.Contains(t, sent.Message.AccountKeys, addr)
	assert.Contains(t, sent.Message.AccountKeys, solana.SystemProgramID)
}

func TestStoreWriteDuplicate(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	dgst := "sha256:" + strings.Repeat("b", 64)
	addr, err := DeriveRecordAddress(DefaultProgramID, dgst)
	require.NoError(t, err)

	mock := &mockRPC{
		sendTransactionFunc: func(context.Context, *solana.Transaction) (solana.Signature, error) {
			return solana.Signature{}, mapRPCError("send transaction",
				errSim("Allocate: account Address { address: ... } already in use"))
		},
	}

	store := NewStore(NewClient(mock, payer.PrivateKey, CommitmentConfirmed), DefaultProgramID)
	rec := &AttestationRecord{Digest: dgst, Signer: payer.PublicKey()}

	// First write wins on the ledger; a retry on the same address fails.
	_, err = store.Write(context.Background(), addr, rec)
	assert.ErrorIs(t, err, ErrDuplicateAttestation)
}

func TestStoreWriteForeignSigner(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	other := solana.NewWallet()
	store := NewStore(NewClient(&mockRPC{}, payer.PrivateKey, CommitmentConfirmed), DefaultProgramID)

	dgst := "sha256:" + strings.Repeat("c", 64)
	addr, err := DeriveRecordAddress(DefaultProgramID, dgst)
	require.NoError(t, err)

	_, err = store.Write(context.Background(), addr, &AttestationRecord{
		Digest: dgst,
		Signer: other.PublicKey(),
	})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestStoreRead(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	dgst := "sha256:" + strings.Repeat("d", 64)
	rec := &AttestationRecord{Digest: dgst, Signer: payer.PublicKey()}
	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	addr, err := DeriveRecordAddress(DefaultProgramID, dgst)
	require.NoError(t, err)

	mock := &mockRPC{
		accountDataFunc: func(_ context.Context, got solana.PublicKey) ([]byte, error) {
			assert.Equal(t, addr, got)
			return data, nil
		},
	}

	store := NewStore(NewClient(mock, payer.PrivateKey, CommitmentConfirmed), DefaultProgramID)
	got, err := store.Read(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestStoreReadNotFound(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	mock := &mockRPC{
		accountDataFunc: func(context.Context, solana.PublicKey) ([]byte, error) {
			return nil, ErrRecordNotFound
		},
	}

	store := NewStore(NewClient(mock, payer.PrivateKey, CommitmentConfirmed), DefaultProgramID)
	_, err := store.Read(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// errSim wraps a raw string as an error for rpc failure simulation.
type errSim string

func (e errSim) Error() string { return string(e) }
