package dockercli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoDigests(t *testing.T) {
	t.Parallel()

	hex := strings.Repeat("a", 64)

	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "single digest",
			out:  "[ghcr.io/acme/app@sha256:" + hex + "]",
			want: "ghcr.io/acme/app@sha256:" + hex,
		},
		{
			name: "multiple digests takes first",
			out:  "[ghcr.io/acme/app@sha256:" + hex + " docker.io/acme/app@sha256:" + strings.Repeat("b", 64) + "]",
			want: "ghcr.io/acme/app@sha256:" + hex,
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
		{
			name:    "no repo digests",
			out:     "[]",
			wantErr: true,
		},
		{
			name:    "no digest marker",
			out:     "[ghcr.io/acme/app:latest]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseRepoDigests(tt.out, "ghcr.io/acme/app")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrExternalTool)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectDigest(t *testing.T) {
	t.Parallel()

	hex := strings.Repeat("c", 64)
	cli := &CLI{
		bin: "docker",
		run: func(_ context.Context, stdin, name string, args ...string) (string, error) {
			assert.Empty(t, stdin)
			assert.Equal(t, "docker", name)
			assert.Equal(t, []string{"inspect", "--format={{.RepoDigests}}", "ghcr.io/acme/app:v1"}, args)
			return "[ghcr.io/acme/app@sha256:" + hex + "]\n", nil
		},
	}

	got, err := cli.InspectDigest(context.Background(), "ghcr.io/acme/app:v1")
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/acme/app@sha256:"+hex, got)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	cli := &CLI{
		bin: "docker",
		run: func(_ context.Context, stdin, name string, args ...string) (string, error) {
			assert.Equal(t, "ghp_secret", stdin)
			assert.Equal(t, []string{"login", "ghcr.io", "-u", "octocat", "--password-stdin"}, args)
			return "Login Succeeded\n", nil
		},
	}

	require.NoError(t, cli.Login(context.Background(), "ghcr.io", "octocat", "ghp_secret"))
}
