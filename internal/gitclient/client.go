// Package gitclient performs the shallow, single-branch clones a sync run
// needs, and derives the conventional source-layout path each remote is
// cloned under.
package gitclient

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/refsync/internal/logfields"
)

// remotePattern is the only accepted remote shape. The captured prefix
// (e.g. github.com/kubernetes/kubernetes) becomes both the clone path under
// src/ and the base of absolutized links.
var remotePattern = regexp.MustCompile(`^https://(?P<prefix>.*)\.git$`)

// RemotePrefix extracts the host/org/repo prefix from an HTTPS remote URL.
func RemotePrefix(remote string) (string, error) {
	m := remotePattern.FindStringSubmatch(remote)
	if m == nil {
		return "", &InvalidRemoteError{URL: remote}
	}
	return m[1], nil
}

// RepoPath derives the clone path relative to the working directory,
// mirroring a GOPATH source layout so generate-commands find the tree where
// they expect it.
func RepoPath(remote string) (string, error) {
	prefix, err := RemotePrefix(remote)
	if err != nil {
		return "", err
	}
	return filepath.Join("src", filepath.FromSlash(prefix)), nil
}

// Client clones repositories into a working directory.
type Client struct {
	workDir string
}

// NewClient creates a new git client rooted at the given working directory.
func NewClient(workDir string) *Client { return &Client{workDir: workDir} }

// Clone performs a depth-1, single-branch clone of remote into the repo's
// derived path under the working directory and returns the absolute clone
// directory.
func (c *Client) Clone(ctx context.Context, remote, branch string) (string, error) {
	repoPath, err := RepoPath(remote)
	if err != nil {
		return "", err
	}
	cloneDir := filepath.Join(c.workDir, repoPath)
	slog.Debug("Cloning repository", logfields.Remote(remote), logfields.Branch(branch), logfields.Path(cloneDir))

	if err := os.RemoveAll(cloneDir); err != nil {
		return "", fmt.Errorf("failed to remove existing directory: %w", err)
	}

	cloneOptions := &git.CloneOptions{
		URL:          remote,
		Depth:        1,
		SingleBranch: true,
		Progress:     os.Stdout,
	}
	if branch != "" {
		cloneOptions.ReferenceName = plumbing.ReferenceName("refs/heads/" + branch)
	}

	repository, err := git.PlainCloneContext(ctx, cloneDir, false, cloneOptions)
	if err != nil {
		return "", classifyCloneError(remote, err)
	}
	if ref, herr := repository.Head(); herr == nil {
		slog.Info("Repository cloned", logfields.Remote(remote), slog.String("commit", ref.Hash().String()[:8]), logfields.Path(cloneDir))
	} else {
		slog.Info("Repository cloned", logfields.Remote(remote), logfields.Path(cloneDir))
	}
	return cloneDir, nil
}

// classifyCloneError wraps underlying go-git errors into typed failures so
// callers can distinguish them without string parsing.
func classifyCloneError(url string, err error) error {
	l := strings.ToLower(err.Error())
	if strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password") {
		return &AuthError{Op: "clone", URL: url, Err: err}
	}
	if strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist") {
		return &NotFoundError{Op: "clone", URL: url, Err: err}
	}
	if strings.Contains(l, "timeout") || strings.Contains(l, "i/o timeout") {
		return &NetworkTimeoutError{Op: "clone", URL: url, Err: err}
	}
	return fmt.Errorf("failed to clone repository %s: %w", url, err)
}
