// Package syncer drives one sync run: for each configured repository, clone,
// optionally generate, then import the configured files into the
// documentation tree.
//
// Repositories are processed sequentially in input order. A failing
// repository is logged and skipped; it never aborts the batch.
package syncer

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/refsync/internal/config"
	"git.home.luguber.info/inful/refsync/internal/generator"
	"git.home.luguber.info/inful/refsync/internal/gitclient"
	"git.home.luguber.info/inful/refsync/internal/importer"
	"git.home.luguber.info/inful/refsync/internal/logfields"
	"git.home.luguber.info/inful/refsync/internal/mdlinks"
)

// Cloner clones one remote and returns the clone directory.
type Cloner interface {
	Clone(ctx context.Context, remote, branch string) (string, error)
}

// Generator runs a repository's generate-command.
type Generator interface {
	Run(ctx context.Context, dir, command string, env map[string]string) error
}

// Options fix the run-wide paths and release version.
type Options struct {
	Release string // normalized release version
	WorkDir string // clone root, exposed to generators as GOPATH
	DocRoot string // destination documentation root
}

// Result summarizes a run.
type Result struct {
	ReposProcessed int
	ReposFailed    int
	FilesWritten   int
}

// Syncer orchestrates the per-repository pipeline.
type Syncer struct {
	opts     Options
	cloner   Cloner
	gen      Generator
	importer *importer.Importer
}

// New creates a syncer wired to the real git client and shell runner.
func New(opts Options) *Syncer {
	return &Syncer{
		opts:     opts,
		cloner:   gitclient.NewClient(opts.WorkDir),
		gen:      generator.Runner{},
		importer: importer.New(opts.DocRoot),
	}
}

// NewWithDependencies creates a syncer with explicit collaborators (tests).
func NewWithDependencies(opts Options, cloner Cloner, gen Generator) *Syncer {
	return &Syncer{
		opts:     opts,
		cloner:   cloner,
		gen:      gen,
		importer: importer.New(opts.DocRoot),
	}
}

// Run processes every configured repository in order and returns the
// summary. Individual repository failures are logged and counted, not
// returned: the run itself still completes.
func (s *Syncer) Run(ctx context.Context, cfg *config.Config) Result {
	var result Result
	for _, repo := range cfg.Repos {
		result.ReposProcessed++
		written, err := s.syncRepo(ctx, repo)
		if err != nil {
			slog.Error("Skipping repository", logfields.Repository(repo.Name), logfields.Error(err))
			result.ReposFailed++
			continue
		}
		result.FilesWritten += written
	}
	return result
}

// syncRepo runs the clone → generate → import pipeline for one repository.
func (s *Syncer) syncRepo(ctx context.Context, repo config.RepoSpec) (int, error) {
	if err := repo.Validate(); err != nil {
		return 0, err
	}

	prefix, err := gitclient.RemotePrefix(repo.Remote)
	if err != nil {
		return 0, err
	}

	slog.Info("Cloning repository", logfields.Repository(repo.Name), logfields.Remote(repo.Remote), logfields.Branch(repo.Branch))
	cloneDir, err := s.cloner.Clone(ctx, repo.Remote, repo.Branch)
	if err != nil {
		return 0, err
	}

	if repo.GenerateCommand != "" {
		env := generator.BuildEnv(s.opts.Release, s.opts.WorkDir, s.opts.DocRoot)
		slog.Info("Generating docs", logfields.Repository(repo.Name))
		if err := s.gen.Run(ctx, cloneDir, repo.GenerateCommand, env); err != nil {
			return 0, err
		}
	}

	written := 0
	for _, directive := range repo.Files {
		paths := s.importer.ImportWithOptions(cloneDir, directive, importer.Options{
			AbsoluteLinks: repo.GenAbsoluteLinks,
			RemotePrefix:  prefix,
		})
		written += len(paths)
		s.reportLinks(paths, repo.GenAbsoluteLinks)
	}
	return written, nil
}

// reportLinks logs a per-file link summary and flags links that stayed
// relative after an absolutize pass.
func (s *Syncer) reportLinks(paths []string, absolutized bool) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		report := mdlinks.Summarize(data)
		slog.Debug("Link summary", logfields.Dst(path),
			slog.Int("links", report.Total), slog.Int("relative", report.Relative))
		if absolutized && report.Relative > 0 {
			slog.Warn("Relative links remain after absolutize pass",
				logfields.Dst(path), slog.Int("relative", report.Relative))
		}
	}
}
