package gitclient

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotePrefix(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		want    string
		invalid bool
	}{
		{
			name:   "github remote",
			remote: "https://github.com/kubernetes/kubernetes.git",
			want:   "github.com/kubernetes/kubernetes",
		},
		{
			name:   "sigs remote",
			remote: "https://github.com/kubernetes-sigs/reference-docs.git",
			want:   "github.com/kubernetes-sigs/reference-docs",
		},
		{
			name:    "ssh remote rejected",
			remote:  "git@github.com:kubernetes/kubernetes.git",
			invalid: true,
		},
		{
			name:    "missing .git suffix",
			remote:  "https://github.com/kubernetes/kubernetes",
			invalid: true,
		},
		{
			name:    "http rejected",
			remote:  "http://github.com/kubernetes/kubernetes.git",
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemotePrefix(tt.remote)
			if tt.invalid {
				var invalidErr *InvalidRemoteError
				require.Error(t, err)
				assert.True(t, errors.As(err, &invalidErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoPath(t *testing.T) {
	got, err := RepoPath("https://github.com/kubernetes/kubernetes.git")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "github.com", "kubernetes", "kubernetes"), got)
}

func TestRepoPathInvalidRemote(t *testing.T) {
	_, err := RepoPath("git@github.com:org/repo.git")
	assert.Error(t, err)
}

func TestClassifyCloneError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		as   any
	}{
		{"auth", errors.New("authentication required"), new(*AuthError)},
		{"not found", errors.New("repository does not exist"), new(*NotFoundError)},
		{"timeout", errors.New("read tcp: i/o timeout"), new(*NetworkTimeoutError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := classifyCloneError("https://x.git", tt.err)
			assert.True(t, errors.As(wrapped, tt.as), "expected %T", tt.as)
		})
	}

	plain := classifyCloneError("https://x.git", errors.New("disk full"))
	assert.ErrorContains(t, plain, "failed to clone repository")
}
