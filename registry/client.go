package registry

import (
	"log/slog"
	"time"

	"github.com/skelz-org/skelz/registry/oras"
)

// Client publishes and discovers evidence artifacts.
type Client struct {
	oci     OCIClient
	network string
	tool    string
	logger  *slog.Logger
	now     func() time.Time

	// orasOpts are options passed through to the ORAS client when no
	// custom OCIClient is provided.
	orasOpts []oras.Option
}

// Option configures a Client.
type Option func(*Client)

// WithOCIClient sets a custom OCI client implementation.
func WithOCIClient(oci OCIClient) Option {
	return func(c *Client) { c.oci = oci }
}

// WithNetwork sets the ledger network label recorded in evidence.
func WithNetwork(network string) Option {
	return func(c *Client) { c.network = network }
}

// WithTool sets the tool identifier recorded in evidence.
func WithTool(tool string) Option {
	return func(c *Client) { c.tool = tool }
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithOrasOptions passes options to the default ORAS client. Ignored
// when a custom OCIClient is provided.
func WithOrasOptions(opts ...oras.Option) Option {
	return func(c *Client) { c.orasOpts = append(c.orasOpts, opts...) }
}

// New creates an evidence client with the given options.
//
// If no OCIClient is provided via WithOCIClient, a default ORAS-based
// client is created using any pass-through options.
func New(opts ...Option) *Client {
	c := &Client{
		network: DefaultNetwork,
		tool:    DefaultTool,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.oci == nil {
		orasOpts := c.orasOpts
		if c.logger != nil {
			orasOpts = append(orasOpts, oras.WithLogger(c.logger))
		}
		c.oci = oras.New(orasOpts...)
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
