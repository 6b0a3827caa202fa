package ledger

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureMemoRoundTrip(t *testing.T) {
	t.Parallel()

	dgst := "sha256:" + strings.Repeat("a", 64)
	memo := NewSignatureMemo(dgst)

	data, err := EncodeSignatureMemo(memo)
	require.NoError(t, err)

	got, err := DecodeSignatureMemo(data)
	require.NoError(t, err)
	assert.Equal(t, memo, *got)
	assert.Equal(t, dgst, got.Artifact.Digest)
}

func TestDecodeSignatureMemoErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: "free-form memo text",
		},
		{
			name: "unsupported version",
			data: `{"version":2,"artifact":{"kind":"oci-image","digest":"sha256:aa"}}`,
		},
		{
			name: "unsupported kind",
			data: `{"version":1,"artifact":{"kind":"tarball","digest":"sha256:aa"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeSignatureMemo([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidMemo)
		})
	}
}

func TestMemoFromTransaction(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	dgst := "sha256:" + strings.Repeat("b", 64)

	data, err := EncodeSignatureMemo(NewSignatureMemo(dgst))
	require.NoError(t, err)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{memoInstruction(data)},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)

	memo, signer, err := memoFromTransaction(tx)
	require.NoError(t, err)
	assert.Equal(t, dgst, memo.Artifact.Digest)
	assert.Equal(t, payer.PublicKey(), signer)
}

func TestMemoFromTransactionNoMemo(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	inst := solana.NewInstruction(solana.SystemProgramID, solana.AccountMetaSlice{}, []byte{0})

	tx, err := solana.NewTransaction(
		[]solana.Instruction{inst},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)

	_, _, err = memoFromTransaction(tx)
	assert.ErrorIs(t, err, ErrMemoNotFound)
}

func TestMemoFromTransactionMalformedMemo(t *testing.T) {
	t.Parallel()

	payer := solana.NewWallet()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{memoInstruction([]byte("not a signature memo"))},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)

	_, _, err = memoFromTransaction(tx)
	assert.ErrorIs(t, err, ErrInvalidMemo)
}
