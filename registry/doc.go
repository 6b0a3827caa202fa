// Package registry publishes and discovers ledger-proof evidence
// artifacts in OCI registries.
//
// Evidence is a small JSON blob naming the ledger transaction, attached
// to the signed image as an OCI 1.1 referrer artifact. Publication and
// discovery go through the narrow [OCIClient] interface; the oras
// subpackage provides the production implementation.
package registry
