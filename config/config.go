// Package config loads and saves the skelz configuration file.
//
// Configuration lives in a TOML file under the XDG config directory.
// Environment variables override file values; command-line flags, when
// present, override both. The resulting Config value is constructed once
// per invocation and passed down explicitly; no component re-reads
// configuration on its own.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel errors.
var (
	// ErrExists is returned when initializing over an existing file
	// without force.
	ErrExists = errors.New("config: file exists")

	// ErrNotFound is returned when the configuration file is absent.
	ErrNotFound = errors.New("config: file not found")

	// ErrUnknownKey is returned for get/set on an unrecognized key.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Config holds everything an invocation needs: where the ledger is, who
// signs, and how to reach the registry.
type Config struct {
	Cluster          string `mapstructure:"cluster"`
	RPCURL           string `mapstructure:"rpc_url"`
	KeypairPath      string `mapstructure:"keypair_path"`
	Commitment       string `mapstructure:"commitment"`
	Mode             string `mapstructure:"mode"`
	ProgramID        string `mapstructure:"program_id"`
	RegistryUsername string `mapstructure:"registry_username"`
	RegistryToken    string `mapstructure:"registry_token"`
}

// Keys lists the configuration keys in file order.
var Keys = []string{
	"cluster",
	"rpc_url",
	"keypair_path",
	"commitment",
	"mode",
	"program_id",
	"registry_username",
	"registry_token",
}

// Default returns the built-in configuration: devnet, confirmed
// commitment, record mode, keypair under the config directory.
func Default() *Config {
	return &Config{
		Cluster:     "devnet",
		RPCURL:      ClusterRPCURL("devnet"),
		KeypairPath: filepath.Join(configDir(), "id.json"),
		Commitment:  "confirmed",
		Mode:        "record",
	}
}

// DefaultPath returns the default configuration file location,
// $XDG_CONFIG_HOME/skelz/config.toml.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// configDir resolves the skelz config directory from XDG_CONFIG_HOME,
// falling back to ~/.config.
func configDir() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "skelz")
}

// newViper builds a viper instance with defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")

	def := Default()
	v.SetDefault("cluster", def.Cluster)
	v.SetDefault("rpc_url", def.RPCURL)
	v.SetDefault("keypair_path", def.KeypairPath)
	v.SetDefault("commitment", def.Commitment)
	v.SetDefault("mode", def.Mode)
	v.SetDefault("program_id", def.ProgramID)

	// Ledger-specific and registry-specific environment overrides.
	_ = v.BindEnv("rpc_url", "SOLANA_RPC_URL")
	_ = v.BindEnv("keypair_path", "SOLANA_KEYPAIR")
	_ = v.BindEnv("registry_username", "GHCR_USERNAME")
	_ = v.BindEnv("registry_token", "GHCR_TOKEN")

	return v
}

// Load reads the configuration file at path with env overrides applied.
// Returns [ErrNotFound] when the file does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parse config at %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config at %s: %w", path, err)
	}
	cfg.KeypairPath = ExpandTilde(cfg.KeypairPath)
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults (still with
// env overrides) when the file is absent.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	v := newViper()
	var def Config
	if uerr := v.Unmarshal(&def); uerr != nil {
		return nil, fmt.Errorf("decode default config: %w", uerr)
	}
	def.KeypairPath = ExpandTilde(def.KeypairPath)
	return &def, nil
}

// Save writes cfg to path as TOML. Refuses to overwrite an existing file
// with [ErrExists] unless force is set.
func Save(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("cluster", cfg.Cluster)
	v.Set("rpc_url", cfg.RPCURL)
	v.Set("keypair_path", cfg.KeypairPath)
	v.Set("commitment", cfg.Commitment)
	v.Set("mode", cfg.Mode)
	v.Set("program_id", cfg.ProgramID)
	if cfg.RegistryUsername != "" {
		v.Set("registry_username", cfg.RegistryUsername)
	}
	if cfg.RegistryToken != "" {
		v.Set("registry_token", cfg.RegistryToken)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config to %s: %w", path, err)
	}
	return nil
}

// Value returns the configuration value for key.
func (c *Config) Value(key string) (string, error) {
	switch key {
	case "cluster":
		return c.Cluster, nil
	case "rpc_url":
		return c.RPCURL, nil
	case "keypair_path":
		return c.KeypairPath, nil
	case "commitment":
		return c.Commitment, nil
	case "mode":
		return c.Mode, nil
	case "program_id":
		return c.ProgramID, nil
	case "registry_username":
		return c.RegistryUsername, nil
	case "registry_token":
		return c.RegistryToken, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// SetValue updates the configuration value for key.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "cluster":
		c.Cluster = value
	case "rpc_url":
		c.RPCURL = value
	case "keypair_path":
		c.KeypairPath = ExpandTilde(value)
	case "commitment":
		c.Commitment = value
	case "mode":
		c.Mode = value
	case "program_id":
		c.ProgramID = value
	case "registry_username":
		c.RegistryUsername = value
	case "registry_token":
		c.RegistryToken = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// Network returns the ledger network label recorded in evidence,
// solana-<cluster>.
func (c *Config) Network() string {
	return "solana-" + c.Cluster
}

// ClusterRPCURL maps a cluster shortcut to its default RPC endpoint.
func ClusterRPCURL(cluster string) string {
	switch cluster {
	case "mainnet", "mainnet-beta":
		return "https://api.mainnet-beta.solana.com"
	case "testnet":
		return "https://api.testnet.solana.com"
	case "localnet", "local":
		return "http://127.0.0.1:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}

// ExpandTilde expands a leading ~/ to the user's home directory.
func ExpandTilde(path string) string {
	if after, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, after)
		}
	}
	return path
}
