package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelz-org/skelz/config"
	"github.com/skelz-org/skelz/internal/dockercli"
)

func newRegistryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Registry operations",
	}
	cmd.AddCommand(newRegistryLoginCmd(opts))
	return cmd
}

func newRegistryLoginCmd(opts *rootOptions) *cobra.Command {
	var (
		registryHost string
		username     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log into a container registry using config or env credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(opts.configPath)
			if err != nil {
				return err
			}

			user := cfg.RegistryUsername
			if username != "" {
				user = username
			}
			if user == "" || cfg.RegistryToken == "" {
				return errors.New("registry credentials not configured; set registry_username/registry_token or GHCR_USERNAME/GHCR_TOKEN")
			}

			if err := dockercli.New().Login(cmd.Context(), registryHost, user, cfg.RegistryToken); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s login: success\n", registryHost)
			return nil
		},
	}

	cmd.Flags().StringVar(&registryHost, "registry", "ghcr.io", "registry hostname")
	cmd.Flags().StringVar(&username, "username", "", "username override")

	return cmd
}
