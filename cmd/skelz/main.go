// Command skelz signs OCI images on the Solana ledger and verifies the
// resulting attestations.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
