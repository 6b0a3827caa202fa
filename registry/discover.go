package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// DiscoverEvidence lists evidence artifacts attached to the image.
//
// All referrers with the evidence artifact type are returned, including
// ones published for other references of the same manifest; filtering to
// the authoritative artifact is [SelectLatest]'s job.
func (c *Client) DiscoverEvidence(ctx context.Context, imageRef string) ([]EvidenceArtifact, error) {
	ref, err := parseCanonicalRef(imageRef)
	if err != nil {
		return nil, err
	}
	repoRef := ref.Registry + "/" + ref.Repository

	subject, err := c.oci.Resolve(ctx, repoRef, ref.Reference)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", imageRef, mapOCIError(err))
	}

	descs, err := c.oci.Referrers(ctx, repoRef, subject, ArtifactType)
	if err != nil {
		return nil, fmt.Errorf("list referrers of %s: %w", imageRef, mapOCIError(err))
	}

	artifacts := make([]EvidenceArtifact, 0, len(descs))
	for _, desc := range descs {
		artifacts = append(artifacts, evidenceFromDescriptor(repoRef, desc))
	}

	c.log().Debug("evidence discovered",
		slog.String("image", imageRef),
		slog.Int("count", len(artifacts)))
	return artifacts, nil
}

// SelectLatest returns the authoritative evidence artifact for the image.
//
// Artifacts survive filtering when their artifact type matches, their
// original-image annotation equals imageRef exactly, and they carry a
// signature annotation. Survivors are ordered by descending created
// timestamp; a missing or unparseable timestamp sorts as the oldest
// possible instant rather than excluding the artifact. Equal timestamps
// are broken by descending artifact digest, which is deterministic and
// independent of registry listing order. Returns [ErrNoEvidenceFound]
// when nothing survives filtering.
func SelectLatest(artifacts []EvidenceArtifact, imageRef string) (EvidenceArtifact, error) {
	var candidates []EvidenceArtifact
	for _, a := range artifacts {
		if a.ArtifactType != ArtifactType {
			continue
		}
		if a.Annotations[AnnotationOriginalImage] != imageRef {
			continue
		}
		if a.TxID() == "" {
			continue
		}
		candidates = append(candidates, a)
	}

	if len(candidates) == 0 {
		return EvidenceArtifact{}, fmt.Errorf("%w: %s", ErrNoEvidenceFound, imageRef)
	}

	sort.Slice(candidates, func(i, j int) bool {
		ti, tj := candidates[i].CreatedAt(), candidates[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return candidates[i].Digest > candidates[j].Digest
	})

	return candidates[0], nil
}
