package main

import (
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/skelz-org/skelz"
	"github.com/skelz-org/skelz/config"
	"github.com/skelz-org/skelz/ledger"
	"github.com/skelz-org/skelz/registry"
	"github.com/skelz-org/skelz/registry/oras"
)

// ledgerSetup holds the pieces built from configuration for one
// invocation.
type ledgerSetup struct {
	node       *ledger.Node
	commitment ledger.Commitment
	mode       ledger.Mode
	programID  solana.PublicKey
}

// newLedgerSetup validates ledger configuration and connects the node.
func newLedgerSetup(cfg *config.Config) (*ledgerSetup, error) {
	commitment, err := ledger.ParseCommitment(cfg.Commitment)
	if err != nil {
		return nil, err
	}
	mode, err := ledger.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	programID := ledger.DefaultProgramID
	if cfg.ProgramID != "" {
		programID, err = solana.PublicKeyFromBase58(cfg.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("parse program_id %q: %w", cfg.ProgramID, err)
		}
	}

	return &ledgerSetup{
		node:       ledger.NewNode(cfg.RPCURL, commitment),
		commitment: commitment,
		mode:       mode,
		programID:  programID,
	}, nil
}

// newRegistryClient builds the evidence client from configuration.
// Credentials fall back to the docker credential store when the config
// carries none.
func newRegistryClient(cfg *config.Config) *registry.Client {
	var orasOpts []oras.Option
	if cfg.RegistryUsername != "" && cfg.RegistryToken != "" {
		orasOpts = append(orasOpts, oras.WithCredentials(cfg.RegistryUsername, cfg.RegistryToken))
	} else {
		orasOpts = append(orasOpts, oras.WithDockerConfig())
	}

	return registry.New(
		registry.WithOrasOptions(orasOpts...),
		registry.WithNetwork(cfg.Network()),
		registry.WithLogger(slog.Default()),
	)
}

// newSignerClient builds the high-level client for the sign path.
func newSignerClient(cfg *config.Config) (*skelz.Client, error) {
	setup, err := newLedgerSetup(cfg)
	if err != nil {
		return nil, err
	}

	payer, err := ledger.LoadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	lc := ledger.NewClient(setup.node, payer, setup.commitment, ledger.WithLogger(slog.Default()))
	signer := ledger.NewSigner(lc, setup.programID, setup.mode)

	return skelz.NewClient(
		skelz.WithSigner(signer),
		skelz.WithTransport(newRegistryClient(cfg)),
		skelz.WithLogger(slog.Default()),
	), nil
}

// newVerifierClient builds the high-level client for the verify path.
// Verification needs no keypair; the resolver variant follows the
// configured attestation mode.
func newVerifierClient(cfg *config.Config) (*skelz.Client, error) {
	setup, err := newLedgerSetup(cfg)
	if err != nil {
		return nil, err
	}

	var resolver skelz.RecordResolver
	if setup.mode == ledger.ModeMemo {
		resolver = ledger.NewMemoResolver(setup.node)
	} else {
		lc := ledger.NewClient(setup.node, nil, setup.commitment)
		resolver = ledger.NewDirectResolver(lc, setup.programID)
	}

	return skelz.NewClient(
		skelz.WithResolver(resolver),
		skelz.WithTransport(newRegistryClient(cfg)),
		skelz.WithLogger(slog.Default()),
	), nil
}

// loadConfig loads configuration with optional flag overrides.
func loadConfig(opts *rootOptions, rpcURL, keypair string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	if rpcURL != "" {
		cfg.RPCURL = rpcURL
	}
	if keypair != "" {
		cfg.KeypairPath = config.ExpandTilde(keypair)
	}
	return cfg, nil
}
