// Package oras provides the ORAS-backed OCI client used for evidence
// publication and discovery.
//
// It wraps oras-go to handle authentication (static credentials, docker
// config, or anonymous) and maps transport errors to the registry
// package's sentinels.
package oras

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/retry"
)

// Client provides generic OCI registry operations over ORAS.
type Client struct {
	plainHTTP  bool
	userAgent  string
	anonymous  bool
	credStore  credentials.Store
	static     *auth.Credential
	authClient *auth.Client
	logger     *slog.Logger
}

// New creates an OCI client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: "skelz/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	// Shared auth client so tokens are reused across requests.
	c.authClient = &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
		Credential: func(ctx context.Context, hostport string) (auth.Credential, error) {
			switch {
			case c.anonymous:
				return auth.EmptyCredential, nil
			case c.static != nil:
				return *c.static, nil
			case c.credStore != nil:
				return c.credStore.Get(ctx, hostport)
			}
			return auth.EmptyCredential, nil
		},
		Header: http.Header{
			"User-Agent": []string{c.userAgent},
		},
	}

	return c
}

// repository creates a Repository for the given repo reference.
func (c *Client) repository(repoRef string) (*remote.Repository, error) {
	repo, err := remote.NewRepository(repoRef)
	if err != nil {
		return nil, fmt.Errorf("parse reference %q: %w", repoRef, err)
	}

	repo.PlainHTTP = c.plainHTTP
	repo.Client = c.authClient

	return repo, nil
}

// Resolve resolves a tag or digest to a descriptor.
func (c *Client) Resolve(ctx context.Context, repoRef, ref string) (ocispec.Descriptor, error) {
	repo, err := c.repository(repoRef)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	desc, err := repo.Resolve(ctx, ref)
	if err != nil {
		return ocispec.Descriptor{}, mapError(err)
	}

	return desc, nil
}

// PushBlob pushes a blob to the repository.
//
// The descriptor must contain the pre-computed digest and size. Content
// is streamed from r, which must provide exactly desc.Size bytes.
func (c *Client) PushBlob(ctx context.Context, repoRef string, desc *ocispec.Descriptor, r io.Reader) error {
	if err := validateDescriptor(desc); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: content reader is nil", ErrInvalidDescriptor)
	}

	repo, err := c.repository(repoRef)
	if err != nil {
		return err
	}

	if err := repo.Blobs().Push(ctx, *desc, r); err != nil {
		return mapError(err)
	}

	return nil
}

// PushManifestByDigest pushes an untagged manifest, referenced only by
// digest, as OCI 1.1 referrer artifacts are. ORAS updates the referrers
// index transparently for registries without native referrers support.
func (c *Client) PushManifestByDigest(ctx context.Context, repoRef string, manifest *ocispec.Manifest) (ocispec.Descriptor, error) {
	if manifest == nil {
		return ocispec.Descriptor{}, fmt.Errorf("%w: manifest is nil", ErrManifestInvalid)
	}
	repo, err := c.repository(repoRef)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("marshal manifest: %w", err)
	}

	desc := ocispec.Descriptor{
		MediaType:    ocispec.MediaTypeImageManifest,
		ArtifactType: manifest.ArtifactType,
		Digest:       digest.FromBytes(manifestJSON),
		Size:         int64(len(manifestJSON)),
		Annotations:  manifest.Annotations,
	}

	if err := repo.Manifests().Push(ctx, desc, bytes.NewReader(manifestJSON)); err != nil {
		return ocispec.Descriptor{}, mapError(err)
	}

	c.log().Debug("manifest pushed", slog.String("digest", desc.Digest.String()))
	return desc, nil
}

// Referrers lists descriptors of artifacts referencing the subject.
func (c *Client) Referrers(ctx context.Context, repoRef string, subject ocispec.Descriptor, artifactType string) ([]ocispec.Descriptor, error) {
	repo, err := c.repository(repoRef)
	if err != nil {
		return nil, err
	}

	var out []ocispec.Descriptor
	err = repo.Referrers(ctx, subject, artifactType, func(referrers []ocispec.Descriptor) error {
		out = append(out, referrers...)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	return out, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// validateDescriptor checks that a descriptor is valid for use.
func validateDescriptor(desc *ocispec.Descriptor) error {
	if desc == nil {
		return fmt.Errorf("%w: descriptor is nil", ErrInvalidDescriptor)
	}
	if desc.Size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidDescriptor, desc.Size)
	}
	if desc.Digest == "" {
		return fmt.Errorf("%w: empty digest", ErrInvalidDescriptor)
	}
	if err := desc.Digest.Validate(); err != nil {
		return fmt.Errorf("%w: invalid digest %q: %v", ErrInvalidDescriptor, desc.Digest, err)
	}
	return nil
}
