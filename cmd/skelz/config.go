package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelz-org/skelz/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(
		newConfigInitCmd(opts),
		newConfigGetCmd(opts),
		newConfigSetCmd(opts),
	)
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		force   bool
		cluster string
		rpcURL  string
		keypair string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a configuration file (TOML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if cluster != "" {
				cfg.Cluster = cluster
				cfg.RPCURL = config.ClusterRPCURL(cluster)
			}
			if rpcURL != "" {
				cfg.RPCURL = rpcURL
			}
			if keypair != "" {
				cfg.KeypairPath = config.ExpandTilde(keypair)
			}

			path := opts.configPath
			if output != "" {
				path = config.ExpandTilde(output)
			}

			if err := config.Save(path, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\ncluster=%s\nrpc_url=%s\nkeypair_path=%s\n",
				path, cfg.Cluster, cfg.RPCURL, cfg.KeypairPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path for the config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing file if present")
	cmd.Flags().StringVar(&cluster, "cluster", "", "cluster shortcut: devnet|testnet|mainnet-beta|localnet")
	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "RPC URL (overrides cluster default)")
	cmd.Flags().StringVar(&keypair, "keypair", "", "path to the signing keypair (id.json)")

	return cmd
}

func newConfigGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get current config settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if errors.Is(err, config.ErrNotFound) {
				// First use: materialize the defaults so later get/set
				// operate on a real file.
				cfg = config.Default()
				if serr := config.Save(opts.configPath, cfg, true); serr != nil {
					return serr
				}
			} else if err != nil {
				return err
			}

			if len(args) == 1 {
				value, err := cfg.Value(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			for _, key := range config.Keys {
				value, _ := cfg.Value(key)
				if value != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %q\n", key, value)
				}
			}
			return nil
		},
	}
}

func newConfigSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.SetValue(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(opts.configPath, cfg, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", args[0])
			return nil
		},
	}
}
