package skelz

import (
	"context"
	"errors"

	"github.com/skelz-org/skelz/ledger"
	"github.com/skelz-org/skelz/registry"
)

// mockSigner implements LedgerSigner with an overridable function field.
type mockSigner struct {
	signFunc func(ctx context.Context, dgst string) (string, error)
}

func (m *mockSigner) Sign(ctx context.Context, dgst string) (string, error) {
	if m.signFunc != nil {
		return m.signFunc(ctx, dgst)
	}
	return "", errors.New("unexpected Sign call")
}

// mockResolver implements RecordResolver with an overridable function field.
type mockResolver struct {
	resolveFunc func(ctx context.Context, dgst, txID string) (*ledger.AttestationRecord, error)
}

func (m *mockResolver) ResolveRecord(ctx context.Context, dgst, txID string) (*ledger.AttestationRecord, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, dgst, txID)
	}
	return nil, errors.New("unexpected ResolveRecord call")
}

// mockTransport implements RegistryTransport with overridable function
// fields.
type mockTransport struct {
	publishFunc  func(ctx context.Context, imageRef, txID string) error
	discoverFunc func(ctx context.Context, imageRef string) ([]registry.EvidenceArtifact, error)
}

func (m *mockTransport) PublishEvidence(ctx context.Context, imageRef, txID string) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, imageRef, txID)
	}
	return errors.New("unexpected PublishEvidence call")
}

func (m *mockTransport) DiscoverEvidence(ctx context.Context, imageRef string) ([]registry.EvidenceArtifact, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, imageRef)
	}
	return nil, errors.New("unexpected DiscoverEvidence call")
}
