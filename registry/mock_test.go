package registry

import (
	"context"
	"errors"
	"io"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// mockOCIClient implements OCIClient with overridable function fields.
type mockOCIClient struct {
	resolveFunc              func(ctx context.Context, repoRef, ref string) (ocispec.Descriptor, error)
	pushBlobFunc             func(ctx context.Context, repoRef string, desc *ocispec.Descriptor, r io.Reader) error
	pushManifestByDigestFunc func(ctx context.Context, repoRef string, manifest *ocispec.Manifest) (ocispec.Descriptor, error)
	referrersFunc            func(ctx context.Context, repoRef string, subject ocispec.Descriptor, artifactType string) ([]ocispec.Descriptor, error)
}

func (m *mockOCIClient) Resolve(ctx context.Context, repoRef, ref string) (ocispec.Descriptor, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, repoRef, ref)
	}
	return ocispec.Descriptor{}, errors.New("unexpected Resolve call")
}

func (m *mockOCIClient) PushBlob(ctx context.Context, repoRef string, desc *ocispec.Descriptor, r io.Reader) error {
	if m.pushBlobFunc != nil {
		return m.pushBlobFunc(ctx, repoRef, desc, r)
	}
	return errors.New("unexpected PushBlob call")
}

func (m *mockOCIClient) PushManifestByDigest(ctx context.Context, repoRef string, manifest *ocispec.Manifest) (ocispec.Descriptor, error) {
	if m.pushManifestByDigestFunc != nil {
		return m.pushManifestByDigestFunc(ctx, repoRef, manifest)
	}
	return ocispec.Descriptor{}, errors.New("unexpected PushManifestByDigest call")
}

func (m *mockOCIClient) Referrers(ctx context.Context, repoRef string, subject ocispec.Descriptor, artifactType string) ([]ocispec.Descriptor, error) {
	if m.referrersFunc != nil {
		return m.referrersFunc(ctx, repoRef, subject, artifactType)
	}
	return nil, errors.New("unexpected Referrers call")
}
