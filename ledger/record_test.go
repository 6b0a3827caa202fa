package ledger

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PublicKey()
	rec := &AttestationRecord{
		Digest: "sha256:" + strings.Repeat("1", 64),
		Signer: signer,
	}

	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestDecodeRecordErrors(t *testing.T) {
	t.Parallel()

	rec := &AttestationRecord{
		Digest: "sha256:" + strings.Repeat("2", 64),
		Signer: solana.NewWallet().PublicKey(),
	}
	valid, err := EncodeRecord(rec)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "too short",
			data: valid[:4],
		},
		{
			name: "wrong discriminator",
			data: append(discriminator("account:Other"), valid[discriminatorLen:]...),
		},
		{
			name: "truncated payload",
			data: valid[:len(valid)-8],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeRecord(tt.data)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestWriteRecordInstructionData(t *testing.T) {
	t.Parallel()

	dgst := "sha256:" + strings.Repeat("3", 64)
	data, err := writeRecordInstructionData(dgst)
	require.NoError(t, err)

	require.Greater(t, len(data), discriminatorLen)
	assert.Equal(t, writeRecordDiscriminator, data[:discriminatorLen])
	assert.Contains(t, string(data[discriminatorLen:]), dgst)
}
