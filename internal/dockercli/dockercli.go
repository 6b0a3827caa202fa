// Package dockercli shells out to the local docker binary for the two
// operations that have no registry API equivalent: reading the pulled
// digest of a local image and logging into a registry.
package dockercli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrExternalTool is returned when the docker helper exits non-zero or
// produces unusable output.
var ErrExternalTool = errors.New("dockercli: external tool failed")

// runFunc executes a command and returns stdout. Tests substitute it.
type runFunc func(ctx context.Context, stdin string, name string, args ...string) (string, error)

// CLI wraps the docker binary.
type CLI struct {
	bin string
	run runFunc
}

// New creates a docker CLI wrapper.
func New() *CLI {
	return &CLI{bin: "docker", run: runCommand}
}

func runCommand(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s: %s", ErrExternalTool, name, msg)
	}
	return stdout.String(), nil
}

// InspectDigest returns the canonical repo@sha256:<hex> for a local
// image via docker inspect.
//
// The expected output is a bracketed list of repo digests; the digest is
// taken from the first @ match up to the closing bracket. The image must
// be pulled and carry a digest.
func (c *CLI) InspectDigest(ctx context.Context, image string) (string, error) {
	out, err := c.run(ctx, "", c.bin, "inspect", "--format={{.RepoDigests}}", image)
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", image, err)
	}

	return parseRepoDigests(strings.TrimSpace(out), image)
}

// parseRepoDigests extracts repo@sha256:<hex> from docker inspect output
// of the form [repo@sha256:<hex> ...].
func parseRepoDigests(out, image string) (string, error) {
	if out == "" || out == "[]" {
		return "", fmt.Errorf("%w: no digest for image %s; pull it first", ErrExternalTool, image)
	}

	idx := strings.Index(out, "@sha256:")
	if idx < 0 {
		return "", fmt.Errorf("%w: cannot parse digest from %q", ErrExternalTool, out)
	}

	// Walk back to the start of the repo name (after the opening bracket
	// or a separating space).
	start := strings.LastIndexAny(out[:idx], "[ ") + 1
	rest := out[start:]
	if end := strings.IndexAny(rest, " ]"); end >= 0 {
		rest = rest[:end]
	}
	return rest, nil
}

// Login performs a non-interactive docker login, passing the token on
// stdin.
func (c *CLI) Login(ctx context.Context, registryHost, username, token string) error {
	if _, err := c.run(ctx, token, c.bin, "login", registryHost, "-u", username, "--password-stdin"); err != nil {
		return fmt.Errorf("login to %s: %w", registryHost, err)
	}
	return nil
}
