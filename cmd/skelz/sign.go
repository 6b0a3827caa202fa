package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skelz-org/skelz"
	"github.com/skelz-org/skelz/internal/dockercli"
)

func newSignCmd(opts *rootOptions) *cobra.Command {
	var (
		rpcURL  string
		keypair string
	)

	cmd := &cobra.Command{
		Use:   "sign <reference>",
		Short: "Attest an image on the ledger and attach evidence to it",
		Long: "Sign writes an attestation record for the image digest to the " +
			"ledger, then attaches a proof artifact to the image in its " +
			"registry. The reference should be canonical " +
			"(ghcr.io/org/repo@sha256:...); a tag reference is resolved " +
			"through the local docker daemon.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, rpcURL, keypair)
			if err != nil {
				return err
			}

			imageRef := args[0]
			if !strings.Contains(imageRef, "@sha256:") {
				resolved, err := dockercli.New().InspectDigest(cmd.Context(), imageRef)
				if err != nil {
					return err
				}
				imageRef = resolved
			}

			client, err := newSignerClient(cfg)
			if err != nil {
				return err
			}

			txID, err := client.Sign(cmd.Context(), imageRef)
			if skelz.AlreadyAttested(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already attested\n", imageRef)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "signature=%s\nevidence attached to %s\n", txID, imageRef)
			return nil
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "RPC URL (overrides config and env)")
	cmd.Flags().StringVar(&keypair, "keypair", "", "path to the signing keypair (overrides config and env)")

	return cmd
}
