package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelz-org/skelz"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	var rpcURL string

	cmd := &cobra.Command{
		Use:   "verify <reference> <expected-signer>",
		Short: "Verify an image attestation against an expected signer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, rpcURL, "")
			if err != nil {
				return err
			}

			client, err := newVerifierClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.Verify(cmd.Context(), args[0], args[1])
			if err != nil {
				var stageErr *skelz.StageError
				if errors.As(err, &stageErr) {
					return fmt.Errorf("verification failed at %s: %w", stageErr.Stage, stageErr.Err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Verified\ndigest=%s\nsigner=%s\ntx=%s\n",
				result.Digest, result.Signer, result.TxID)
			return nil
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "RPC URL (overrides config and env)")

	return cmd
}
