package oras

import (
	"log/slog"

	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

// Option configures a Client.
type Option func(*Client)

// WithPlainHTTP uses HTTP instead of HTTPS, for local test registries.
func WithPlainHTTP(plainHTTP bool) Option {
	return func(c *Client) { c.plainHTTP = plainHTTP }
}

// WithUserAgent sets the User-Agent header for registry requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithAnonymous skips credential lookup entirely.
func WithAnonymous() Option {
	return func(c *Client) { c.anonymous = true }
}

// WithCredentials uses a fixed username/token pair for all hosts.
func WithCredentials(username, token string) Option {
	return func(c *Client) {
		c.static = &auth.Credential{Username: username, Password: token}
	}
}

// WithDockerConfig reads credentials from the docker credential store
// (~/.docker/config.json and configured helpers).
func WithDockerConfig() Option {
	return func(c *Client) {
		store, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
		if err != nil {
			// Fall back to anonymous when no docker config is readable.
			c.anonymous = true
			return
		}
		c.credStore = store
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}
