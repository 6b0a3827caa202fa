//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/skelz-org/skelz/registry"
	"github.com/skelz-org/skelz/registry/oras"
)

// --- Registry Container Setup ---

var (
	registryOnce sync.Once
	registryAddr string
	registryErr  error
)

// getRegistry returns the shared registry address, starting the container if needed.
// The container is shared across all tests for performance.
func getRegistry(tb testing.TB) string {
	tb.Helper()

	if os.Getenv("SKIP_DOCKER_TESTS") == "1" {
		tb.Skip("SKIP_DOCKER_TESTS is set")
	}

	registryOnce.Do(func() {
		ctx := context.Background()
		registryAddr, registryErr = startRegistryContainer(ctx)
	})

	if registryErr != nil {
		tb.Fatalf("start registry container: %v", registryErr)
	}

	return registryAddr
}

// startRegistryContainer starts a registry:2 container and returns the host:port address.
func startRegistryContainer(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "registry:2",
		ExposedPorts: []string{"5000/tcp"},
		WaitingFor:   wait.ForHTTP("/v2/").WithPort("5000/tcp").WithStatusCodeMatcher(isOKStatus),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start registry container: %w", err)
	}

	// Container cleanup is handled by the testcontainers Reaper.

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve registry host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5000/tcp")
	if err != nil {
		return "", fmt.Errorf("resolve registry port: %w", err)
	}

	return fmt.Sprintf("%s:%s", host, port.Port()), nil
}

func isOKStatus(status int) bool {
	return status >= 200 && status < 300
}

// --- Test Client Factory ---

// newEvidenceClient creates an evidence client for the local test registry.
func newEvidenceClient(tb testing.TB, opts ...registry.Option) *registry.Client {
	tb.Helper()

	// Always use plain HTTP for the local registry.
	allOpts := append([]registry.Option{
		registry.WithOrasOptions(oras.WithPlainHTTP(true), oras.WithAnonymous()),
	}, opts...)

	return registry.New(allOpts...)
}

// newOCIClient creates a raw OCI client for seeding test images.
func newOCIClient() *oras.Client {
	return oras.New(oras.WithPlainHTTP(true), oras.WithAnonymous())
}

// --- Test Image Helpers ---

// pushTestImage pushes a minimal image manifest to repo and returns its
// canonical reference (name@sha256:<hex>). The layer content is varied
// per test so every image gets a distinct digest.
func pushTestImage(tb testing.TB, registryAddr, repo string, layerContent []byte) string {
	tb.Helper()

	ctx := context.Background()
	oci := newOCIClient()
	repoRef := fmt.Sprintf("%s/%s", registryAddr, repo)

	layerDesc := ocispec.Descriptor{
		MediaType: ocispec.MediaTypeImageLayerGzip,
		Digest:    digest.FromBytes(layerContent),
		Size:      int64(len(layerContent)),
	}
	require.NoError(tb, oci.PushBlob(ctx, repoRef, &layerDesc, bytes.NewReader(layerContent)))

	configDesc := ocispec.DescriptorEmptyJSON
	require.NoError(tb, oci.PushBlob(ctx, repoRef, &configDesc, bytes.NewReader(configDesc.Data)))

	manifest := ocispec.Manifest{
		Versioned: specs.Versioned{SchemaVersion: 2},
		MediaType: ocispec.MediaTypeImageManifest,
		Config:    configDesc,
		Layers:    []ocispec.Descriptor{layerDesc},
	}

	desc, err := oci.PushManifestByDigest(ctx, repoRef, &manifest)
	require.NoError(tb, err)

	return fmt.Sprintf("%s@%s", repoRef, desc.Digest)
}
