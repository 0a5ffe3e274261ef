package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/refsync/internal/config"
	"git.home.luguber.info/inful/refsync/internal/gitclient"
)

type fakeCloner struct {
	calls   int
	cloneFn func(remote, branch string) (string, error)
}

func (f *fakeCloner) Clone(_ context.Context, remote, branch string) (string, error) {
	f.calls++
	return f.cloneFn(remote, branch)
}

type fakeGenerator struct {
	calls   int
	lastDir string
	lastEnv map[string]string
	err     error
}

func (f *fakeGenerator) Run(_ context.Context, dir, _ string, env map[string]string) error {
	f.calls++
	f.lastDir = dir
	f.lastEnv = env
	return f.err
}

// populatedClone returns a cloner that lays out a fake repository checkout.
func populatedClone(t *testing.T, workDir string) *fakeCloner {
	t.Helper()
	return &fakeCloner{cloneFn: func(remote, _ string) (string, error) {
		repoPath, err := gitclient.RepoPath(remote)
		if err != nil {
			return "", err
		}
		cloneDir := filepath.Join(workDir, repoPath)
		docsDir := filepath.Join(cloneDir, "docs")
		if err := os.MkdirAll(docsDir, 0o755); err != nil {
			return "", err
		}
		content := "# Page\nSee [guide](guide.md).\n"
		return cloneDir, os.WriteFile(filepath.Join(docsDir, "page.md"), []byte(content), 0o644)
	}}
}

func TestRunHappyPath(t *testing.T) {
	workDir := t.TempDir()
	docRoot := t.TempDir()
	cloner := populatedClone(t, workDir)
	gen := &fakeGenerator{}

	s := NewWithDependencies(Options{Release: "1.17.0", WorkDir: workDir, DocRoot: docRoot}, cloner, gen)
	result := s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{{
		Name:            "repo",
		Remote:          "https://github.com/org/repo.git",
		Branch:          "master",
		GenerateCommand: "make docs",
		Files:           []config.FileDirective{{Src: "docs/*.md", Dst: "reference/"}},
	}}})

	assert.Equal(t, Result{ReposProcessed: 1, ReposFailed: 0, FilesWritten: 1}, result)
	assert.Equal(t, 1, cloner.calls)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "1.17.0", gen.lastEnv["K8S_RELEASE"])
	assert.Equal(t, workDir, gen.lastEnv["GOPATH"])
	assert.Equal(t, docRoot, gen.lastEnv["K8S_WEBROOT"])
	assert.FileExists(t, filepath.Join(docRoot, "reference", "page.md"))
}

func TestRunInvalidRemoteSkipsCloneAndContinues(t *testing.T) {
	workDir := t.TempDir()
	cloner := populatedClone(t, workDir)
	gen := &fakeGenerator{}

	s := NewWithDependencies(Options{WorkDir: workDir, DocRoot: t.TempDir()}, cloner, gen)
	result := s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{
		{
			Name:   "bad",
			Remote: "git@github.com:org/bad.git",
			Branch: "master",
		},
		{
			Name:   "good",
			Remote: "https://github.com/org/good.git",
			Branch: "master",
			Files:  []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}},
		},
	}})

	assert.Equal(t, 2, result.ReposProcessed)
	assert.Equal(t, 1, result.ReposFailed)
	assert.Equal(t, 1, result.FilesWritten)
	assert.Equal(t, 1, cloner.calls, "no clone may be attempted for the invalid remote")
}

func TestRunMissingRequiredFieldsSkipsRepo(t *testing.T) {
	cloner := &fakeCloner{cloneFn: func(string, string) (string, error) {
		return "", errors.New("must not be called")
	}}

	s := NewWithDependencies(Options{WorkDir: t.TempDir(), DocRoot: t.TempDir()}, cloner, &fakeGenerator{})
	result := s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{
		{Remote: "https://github.com/org/repo.git", Branch: "master"}, // no name
		{Name: "x", Branch: "master"},                                 // no remote
		{Name: "y", Remote: "https://github.com/org/y.git"},           // no branch
	}})

	assert.Equal(t, 3, result.ReposFailed)
	assert.Zero(t, cloner.calls)
}

func TestRunCloneFailureIsNonFatal(t *testing.T) {
	workDir := t.TempDir()
	failing := 0
	cloner := populatedClone(t, workDir)
	inner := cloner.cloneFn
	cloner.cloneFn = func(remote, branch string) (string, error) {
		if remote == "https://github.com/org/broken.git" {
			failing++
			return "", errors.New("connection refused")
		}
		return inner(remote, branch)
	}

	s := NewWithDependencies(Options{WorkDir: workDir, DocRoot: t.TempDir()}, cloner, &fakeGenerator{})
	result := s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{
		{Name: "broken", Remote: "https://github.com/org/broken.git", Branch: "master",
			Files: []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}}},
		{Name: "ok", Remote: "https://github.com/org/ok.git", Branch: "master",
			Files: []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}}},
	}})

	assert.Equal(t, 1, failing)
	assert.Equal(t, 1, result.ReposFailed)
	assert.Equal(t, 1, result.FilesWritten)
}

func TestRunGenerateFailureSkipsFileCopy(t *testing.T) {
	workDir := t.TempDir()
	docRoot := t.TempDir()
	cloner := populatedClone(t, workDir)
	gen := &fakeGenerator{err: errors.New("make: *** [docs] Error 2")}

	s := NewWithDependencies(Options{WorkDir: workDir, DocRoot: docRoot}, cloner, gen)
	result := s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{{
		Name:            "repo",
		Remote:          "https://github.com/org/repo.git",
		Branch:          "master",
		GenerateCommand: "make docs",
		Files:           []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}},
	}}})

	assert.Equal(t, 1, result.ReposFailed)
	assert.Zero(t, result.FilesWritten)
	entries, err := os.ReadDir(docRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed generate-command must skip the repo's file copies")
}

func TestRunSkipsGeneratorWhenUnconfigured(t *testing.T) {
	workDir := t.TempDir()
	cloner := populatedClone(t, workDir)
	gen := &fakeGenerator{}

	s := NewWithDependencies(Options{WorkDir: workDir, DocRoot: t.TempDir()}, cloner, gen)
	s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{{
		Name:   "repo",
		Remote: "https://github.com/org/repo.git",
		Branch: "master",
		Files:  []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}},
	}}})

	assert.Zero(t, gen.calls)
}

func TestRunAbsolutizesWhenFlagSet(t *testing.T) {
	workDir := t.TempDir()
	docRoot := t.TempDir()
	cloner := populatedClone(t, workDir)

	s := NewWithDependencies(Options{WorkDir: workDir, DocRoot: docRoot}, cloner, &fakeGenerator{})
	s.Run(context.Background(), &config.Config{Repos: []config.RepoSpec{{
		Name:             "repo",
		Remote:           "https://github.com/org/repo.git",
		Branch:           "master",
		GenAbsoluteLinks: true,
		Files:            []config.FileDirective{{Src: "docs/*.md", Dst: "out/"}},
	}}})

	data, err := os.ReadFile(filepath.Join(docRoot, "out", "page.md"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[guide](github.com/org/repo/tree/master/docs/guide.md)")
	assert.NotContains(t, content, "# Page")
}
