package skelz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/skelz-org/skelz/ledger"
	"github.com/skelz-org/skelz/registry"
)

// DefaultAllowedHosts lists the registry hosts accepted as canonical
// evidence sources.
var DefaultAllowedHosts = []string{"ghcr.io"}

// LedgerSigner writes an attestation for a digest and returns the
// transaction identifier. Implemented by [ledger.Signer].
type LedgerSigner interface {
	Sign(ctx context.Context, dgst string) (string, error)
}

// RecordResolver resolves the attestation record for a digest, given the
// transaction identifier named by the evidence. Implemented by
// [ledger.DirectResolver] (canonical) and [ledger.MemoResolver] (legacy).
type RecordResolver interface {
	ResolveRecord(ctx context.Context, dgst, txID string) (*ledger.AttestationRecord, error)
}

// RegistryTransport publishes and discovers evidence artifacts.
// Implemented by [registry.Client]; the protocol core has no direct
// dependency on any particular registry tooling.
type RegistryTransport interface {
	PublishEvidence(ctx context.Context, imageRef, txID string) error
	DiscoverEvidence(ctx context.Context, imageRef string) ([]registry.EvidenceArtifact, error)
}

// Client ties the ledger and registry halves into the sign and verify
// pipelines. Each invocation runs as one sequential pipeline; no state
// is shared across invocations.
type Client struct {
	signer       LedgerSigner
	resolver     RecordResolver
	transport    RegistryTransport
	allowedHosts []string
	logger       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSigner sets the ledger signing client. Required for Sign.
func WithSigner(signer LedgerSigner) Option {
	return func(c *Client) { c.signer = signer }
}

// WithResolver sets the record resolver. Required for Verify.
func WithResolver(resolver RecordResolver) Option {
	return func(c *Client) { c.resolver = resolver }
}

// WithTransport sets the registry transport. Required for both paths.
func WithTransport(transport RegistryTransport) Option {
	return func(c *Client) { c.transport = transport }
}

// WithAllowedHosts replaces the registry host allow-list.
func WithAllowedHosts(hosts ...string) Option {
	return func(c *Client) { c.allowedHosts = hosts }
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{allowedHosts: DefaultAllowedHosts}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// errNotConfigured reports a missing collaborator.
func errNotConfigured(what string) error {
	return errors.New("skelz: client has no " + what + " configured")
}

var (
	_ LedgerSigner      = (*ledger.Signer)(nil)
	_ RegistryTransport = (*registry.Client)(nil)
)
