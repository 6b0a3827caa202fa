// Package ledger anchors attestation records on Solana.
//
// A record lives in a program-derived account whose address is a pure
// function of the image digest, giving a write-once key/value store: the
// runtime rejects a second creation at an occupied address, so concurrent
// signers of the same digest race safely without external locking.
//
// Two encodings coexist. The record mode writes a {digest, signer}
// account through the attestation program. The legacy memo mode logs a
// self-describing JSON payload through the memo program; [MemoResolver]
// recovers it from the transaction during verification.
package ledger
