package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
)

// defaultConfirmInterval is the poll interval while waiting for a
// transaction to reach the target commitment.
const defaultConfirmInterval = 500 * time.Millisecond

// Client submits signed transactions and waits for confirmation.
//
// It carries the payer identity and the target commitment; Store and
// Signer compose it with the two attestation encodings.
type Client struct {
	rpc             RPC
	payer           solana.PrivateKey
	commitment      Commitment
	confirmInterval time.Duration
	logger          *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithConfirmInterval sets the confirmation poll interval.
func WithConfirmInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.confirmInterval = d }
}

// NewClient creates a ledger client for the given RPC endpoint, payer
// key, and commitment level.
func NewClient(rpc RPC, payer solana.PrivateKey, commitment Commitment, opts ...ClientOption) *Client {
	c := &Client{
		rpc:             rpc,
		payer:           payer,
		commitment:      commitment,
		confirmInterval: defaultConfirmInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Payer returns the public key of the signing identity.
func (c *Client) Payer() solana.PublicKey { return c.payer.PublicKey() }

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// submit builds, signs, and sends a transaction with the given
// instructions, then waits until it reaches the target commitment.
// The returned signature is the transaction identifier.
func (c *Client) submit(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	blockhash, err := c.rpc.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(c.payer.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if c.payer.PublicKey().Equals(key) {
			return &c.payer
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	c.log().Debug("transaction submitted", slog.String("signature", sig.String()))

	if err := c.confirm(ctx, sig); err != nil {
		return solana.Signature{}, err
	}
	c.log().Info("transaction confirmed",
		slog.String("signature", sig.String()),
		slog.String("commitment", string(c.commitment)))
	return sig, nil
}

// confirm polls the signature status until the target commitment is
// reached or ctx expires. Submission is irreversible once confirmed;
// there is no local undo.
func (c *Client) confirm(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.confirmInterval)
	defer ticker.Stop()

	for {
		status, err := c.rpc.SignatureStatus(ctx, sig)
		if err != nil {
			return err
		}
		if status != "" && c.commitment.Reached(status) {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: confirm %s: %v", ErrUnreachable, sig, ctx.Err())
		case <-ticker.C:
		}
	}
}
