package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refsync/internal/config"
	"git.home.luguber.info/inful/refsync/internal/logfields"
	"git.home.luguber.info/inful/refsync/internal/preflight"
	"git.home.luguber.info/inful/refsync/internal/syncer"
	"git.home.luguber.info/inful/refsync/internal/workspace"
)

// exitPrereq is the exit code for preflight, configuration, or workspace
// failures: cases where no partial run is possible. Per-repo and per-file
// errors are logged and still exit 0.
const exitPrereq = 2

var CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Root    string `short:"r" help:"Documentation root (default: parent of the executable's directory)"`

	Sync struct {
		Config  string `arg:"" help:"Configuration file path (e.g. reference.yml)"`
		Release string `arg:"" help:"Release version, e.g. 1.17.0"`
	} `cmd:"" default:"withargs" help:"Import generated reference docs into the documentation tree"`

	Check struct{} `cmd:"" help:"Verify required external tools are installed"`

	Init struct {
		Config string `arg:"" optional:"" default:"reference.yml" help:"Path for the example configuration file"`
		Force  bool   `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write an example configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "sync <config> <release>":
		os.Exit(runSync())
	case "check":
		os.Exit(runCheck())
	case "init", "init <config>":
		if err := config.Init(CLI.Init.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
		slog.Info("Wrote example configuration", logfields.Path(CLI.Init.Config))
	}
}

func runCheck() int {
	findings := preflight.Check()
	if len(findings) == 0 {
		slog.Info("All prerequisites found")
		return 0
	}
	for _, f := range findings {
		slog.Error("Missing prerequisite", slog.String("tool", f.Tool),
			slog.String("message", f.Message), slog.String("see", f.RemedyURL))
	}
	return exitPrereq
}

func runSync() int {
	// Every prerequisite is checked before any repository work so a user
	// missing several tools fixes them in one pass.
	if code := runCheck(); code != 0 {
		return code
	}

	release := config.NormalizeRelease(CLI.Sync.Release)
	if release != CLI.Sync.Release {
		slog.Info("Release normalized", logfields.Release(release))
	}
	slog.Info("Starting docs sync",
		slog.String("config", CLI.Sync.Config), logfields.Release(release))

	docRoot, err := resolveDocRoot(CLI.Root)
	if err != nil {
		slog.Error("Failed to resolve documentation root", logfields.Error(err))
		return exitPrereq
	}
	slog.Info("Documentation root", logfields.Path(docRoot))

	cfg, err := config.Load(CLI.Sync.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		return exitPrereq
	}

	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		slog.Error("Failed to create working directory", logfields.Error(err))
		return exitPrereq
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s := syncer.New(syncer.Options{
		Release: release,
		WorkDir: ws.Path(),
		DocRoot: docRoot,
	})
	result := s.Run(runCtx, cfg)

	slog.Info("Docs sync completed",
		slog.Int("repositories", result.ReposProcessed),
		slog.Int("failed", result.ReposFailed),
		slog.Int("files_written", result.FilesWritten))

	fmt.Printf("\nCompleted docs update. Now run the following to commit:\n\n"+
		"  git add .\n"+
		"  git commit -m <comment>\n"+
		"  git push\n\n"+
		"Delete the working directory %s when done.\n", ws.Path())

	return 0
}

// resolveDocRoot returns the destination documentation root. Without an
// override the tool assumes it lives in a direct subdirectory of the site
// checkout, mirroring the update-imported-docs/ layout.
func resolveDocRoot(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(filepath.Dir(resolved)), nil
}
