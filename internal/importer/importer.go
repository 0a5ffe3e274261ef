// Package importer copies files selected by a repository's file directives
// from the clone into the documentation tree, applying the configured link
// rewrites on the way.
package importer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/refsync/internal/config"
	"git.home.luguber.info/inful/refsync/internal/logfields"
	"git.home.luguber.info/inful/refsync/internal/rewrite"
)

// Options control the rewrites applied while importing one repository.
type Options struct {
	// AbsoluteLinks enables the absolutize pass (plus leading-heading strip).
	AbsoluteLinks bool
	// RemotePrefix is the repository's URL prefix, e.g.
	// github.com/kubernetes/kubernetes. Links absolutize against its
	// /tree/master browsable tree.
	RemotePrefix string
}

// Importer writes imported files under a fixed documentation root.
type Importer struct {
	docRoot string
}

// New creates an importer rooted at the documentation tree.
func New(docRoot string) *Importer { return &Importer{docRoot: docRoot} }

// Import processes one file directive against a cloned repository and
// returns the destination paths actually written. Failures on individual
// files are logged and skipped; the directive never aborts the run.
//
// A Dst ending in "/" is a directory and each match keeps its base name.
// Otherwise Dst is the literal output path; when the glob matches several
// files they all land on the same path and the last match wins.
func (im *Importer) Import(cloneDir string, directive config.FileDirective) []string {
	return im.ImportWithOptions(cloneDir, directive, Options{})
}

// ImportWithOptions is Import with link-rewrite options.
func (im *Importer) ImportWithOptions(cloneDir string, directive config.FileDirective, opts Options) []string {
	pattern := filepath.Join(cloneDir, directive.Src)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		slog.Error("Bad glob pattern", logfields.Src(directive.Src), logfields.Error(err))
		return nil
	}
	if len(matches) == 0 {
		slog.Warn("Glob matched no files", logfields.Src(directive.Src), logfields.Path(pattern))
		return nil
	}

	var written []string
	for _, match := range matches {
		// Globs do not dive into subdirectories; a matched directory is
		// skipped, not copied.
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			slog.Warn("Skipping non-regular path", logfields.Path(match))
			continue
		}

		data, err := os.ReadFile(match)
		if err != nil {
			slog.Error("Failed to read source file", logfields.Path(match), logfields.Error(err))
			continue
		}
		content := string(data)

		dst := im.resolveDst(directive.Dst, match)

		if opts.AbsoluteLinks {
			content = rewrite.AbsolutizeLinks(content, opts.RemotePrefix+"/tree/master", subPath(cloneDir, match))
			content = rewrite.StripLeadingHeading(content)
		}
		if filepath.Base(dst) == "kubectl.md" {
			slog.Info("Processing kubectl links", logfields.Dst(dst))
			content = rewrite.RewriteKubectlLinks(content)
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			slog.Error("Failed to create destination directory", logfields.Dst(dst), logfields.Error(err))
			continue
		}
		slog.Info("Writing doc", logfields.Dst(dst))
		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			slog.Error("Failed to write target file", logfields.Dst(dst), logfields.Error(err))
			continue
		}
		written = append(written, dst)
	}
	return written
}

// resolveDst computes the output path for one matched source file.
func (im *Importer) resolveDst(dst, src string) string {
	if strings.HasSuffix(dst, "/") {
		return filepath.Join(im.docRoot, dst, filepath.Base(src))
	}
	return filepath.Join(im.docRoot, dst)
}

// subPath is the source file's directory relative to the clone root, in
// slash form for URL joining. Empty for files at the repository root.
func subPath(cloneDir, match string) string {
	rel, err := filepath.Rel(cloneDir, filepath.Dir(match))
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
