package registry

import (
	"encoding/json"
	"fmt"
	"time"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// ProofEvidence is the payload stored in the evidence blob. It points
// from the registry back to the ledger transaction that attested the
// image.
type ProofEvidence struct {
	Network string `json:"network"`
	TxHash  string `json:"tx_hash"`
	Tool    string `json:"tool"`
}

// EncodeProofEvidence serializes the evidence blob.
func EncodeProofEvidence(p ProofEvidence) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode proof evidence: %w", err)
	}
	return data, nil
}

// DecodeProofEvidence parses an evidence blob.
func DecodeProofEvidence(data []byte) (*ProofEvidence, error) {
	var p ProofEvidence
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode proof evidence: %w", err)
	}
	return &p, nil
}

// EvidenceArtifact describes one evidence referrer attached to an image.
// Zero or more may exist for an image (re-signing creates new ones); the
// most recent valid one is authoritative.
type EvidenceArtifact struct {
	// Reference addresses the artifact manifest (name@digest).
	Reference string

	// Digest is the artifact manifest digest.
	Digest string

	// Size is the manifest size in bytes.
	Size int64

	// MediaType is the manifest media type.
	MediaType string

	// ArtifactType identifies the artifact kind.
	ArtifactType string

	// Annotations holds the evidence metadata: signature, original-image,
	// created, tool.
	Annotations map[string]string
}

// TxID returns the ledger transaction identifier from the annotations,
// or the empty string if absent.
func (a EvidenceArtifact) TxID() string {
	return a.Annotations[AnnotationSignature]
}

// CreatedAt returns the parsed creation timestamp. Artifacts with a
// missing or unparseable timestamp report the zero instant so they sort
// as oldest rather than being excluded.
func (a EvidenceArtifact) CreatedAt() time.Time {
	created, ok := a.Annotations[ocispec.AnnotationCreated]
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return time.Time{}
	}
	return t
}

// evidenceFromDescriptor converts a referrer descriptor to an
// EvidenceArtifact attached under the given image name.
func evidenceFromDescriptor(name string, desc ocispec.Descriptor) EvidenceArtifact {
	return EvidenceArtifact{
		Reference:    name + "@" + desc.Digest.String(),
		Digest:       desc.Digest.String(),
		Size:         desc.Size,
		MediaType:    desc.MediaType,
		ArtifactType: desc.ArtifactType,
		Annotations:  desc.Annotations,
	}
}
