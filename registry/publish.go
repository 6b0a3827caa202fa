package registry

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	orasregistry "oras.land/oras-go/v2/registry"
)

// PublishEvidence attaches ledger-proof evidence for txID to the image.
//
// The proof blob, an empty config, and an untagged referrer manifest
// with the image as subject are pushed in that order. The manifest
// carries the required annotations: signature, original-image, created,
// and tool. Failures surface as [ErrPublishFailed] and are not retried;
// the ledger write that preceded publication stands either way.
func (c *Client) PublishEvidence(ctx context.Context, imageRef, txID string) error {
	ref, err := parseCanonicalRef(imageRef)
	if err != nil {
		return err
	}
	repoRef := ref.Registry + "/" + ref.Repository

	// Resolve the image manifest so the referrer can point at it.
	subject, err := c.oci.Resolve(ctx, repoRef, ref.Reference)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrPublishFailed, imageRef, mapOCIError(err))
	}

	payload, err := EncodeProofEvidence(ProofEvidence{
		Network: c.network,
		TxHash:  txID,
		Tool:    c.tool,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	blobDesc := ocispec.Descriptor{
		MediaType: ArtifactType,
		Digest:    digest.FromBytes(payload),
		Size:      int64(len(payload)),
	}
	if err := c.oci.PushBlob(ctx, repoRef, &blobDesc, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("%w: push proof blob: %v", ErrPublishFailed, mapOCIError(err))
	}

	configDesc, err := c.pushEmptyConfig(ctx, repoRef)
	if err != nil {
		return fmt.Errorf("%w: push config: %v", ErrPublishFailed, err)
	}

	manifest := ocispec.Manifest{
		Versioned:    specs.Versioned{SchemaVersion: 2},
		MediaType:    ocispec.MediaTypeImageManifest,
		ArtifactType: ArtifactType,
		Config:       configDesc,
		Layers:       []ocispec.Descriptor{blobDesc},
		Subject:      &subject,
		Annotations: map[string]string{
			AnnotationSignature:       txID,
			AnnotationOriginalImage:   imageRef,
			ocispec.AnnotationCreated: c.now().UTC().Format(time.RFC3339),
			AnnotationTool:            c.tool,
		},
	}

	desc, err := c.oci.PushManifestByDigest(ctx, repoRef, &manifest)
	if err != nil {
		return fmt.Errorf("%w: push evidence manifest: %v", ErrPublishFailed, mapOCIError(err))
	}

	c.log().Info("evidence published",
		slog.String("image", imageRef),
		slog.String("evidence", desc.Digest.String()),
		slog.String("tx", txID))
	return nil
}

// pushEmptyConfig pushes the empty JSON blob used as artifact config.
func (c *Client) pushEmptyConfig(ctx context.Context, repoRef string) (ocispec.Descriptor, error) {
	desc := ocispec.DescriptorEmptyJSON
	if err := c.oci.PushBlob(ctx, repoRef, &desc, bytes.NewReader(desc.Data)); err != nil {
		return ocispec.Descriptor{}, err
	}
	return desc, nil
}

// parseCanonicalRef parses an image reference that must carry a digest.
func parseCanonicalRef(imageRef string) (orasregistry.Reference, error) {
	ref, err := orasregistry.ParseReference(imageRef)
	if err != nil {
		return orasregistry.Reference{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	if _, err := ref.Digest(); err != nil {
		return orasregistry.Reference{}, fmt.Errorf("%w: %q must include a digest", ErrInvalidReference, imageRef)
	}
	return ref, nil
}
