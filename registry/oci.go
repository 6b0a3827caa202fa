package registry

import (
	"context"
	"io"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// OCIClient defines the registry operations evidence handling needs.
//
// This interface abstracts the low-level OCI operations, allowing
// different implementations (ORAS-based, mock for testing).
type OCIClient interface {
	// Resolve resolves a reference (tag or digest) to a descriptor.
	Resolve(ctx context.Context, repoRef, ref string) (ocispec.Descriptor, error)

	// PushBlob pushes a blob to the repository.
	// The descriptor must contain the pre-computed digest and size.
	PushBlob(ctx context.Context, repoRef string, desc *ocispec.Descriptor, r io.Reader) error

	// PushManifestByDigest pushes a manifest without a tag, referenced
	// only by digest, as OCI 1.1 referrer artifacts are.
	PushManifestByDigest(ctx context.Context, repoRef string, manifest *ocispec.Manifest) (ocispec.Descriptor, error)

	// Referrers lists descriptors of artifacts that reference the subject,
	// optionally filtered by artifact type.
	Referrers(ctx context.Context, repoRef string, subject ocispec.Descriptor, artifactType string) ([]ocispec.Descriptor, error)
}
