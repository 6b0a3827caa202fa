package registry

// Media types and annotation keys for evidence artifacts.
const (
	// ArtifactType identifies ledger-proof evidence as an OCI 1.1
	// artifact type. It doubles as the media type of the proof blob.
	ArtifactType = "application/vnd.skelz.proof.v1+json"

	// AnnotationSignature carries the ledger transaction identifier.
	AnnotationSignature = "skelz.signature"

	// AnnotationOriginalImage carries the canonical reference of the
	// signed image, exactly as it was signed.
	AnnotationOriginalImage = "skelz.original-image"

	// AnnotationTool names the tool that produced the evidence.
	AnnotationTool = "skelz.tool"
)

// DefaultTool identifies this tool in proof payloads and annotations.
const DefaultTool = "skelz-cli@v1.0.0"

// DefaultNetwork is the ledger network label recorded in proof payloads
// when none is configured.
const DefaultNetwork = "solana-devnet"
