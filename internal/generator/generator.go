// Package generator executes the configured generate-command of a repository.
//
// Commands come straight from the configuration and are deliberately run
// through a shell: the reference generators are invoked with pipelines and
// `&&` chains. The execution boundary is a single call taking the command
// string and an explicit environment map, so nothing outside this package
// concatenates shell text.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// Env names injected ahead of every generate-command.
const (
	EnvRelease = "K8S_RELEASE"
	EnvGopath  = "GOPATH"
	EnvRoot    = "K8S_ROOT"
	EnvWebroot = "K8S_WEBROOT"
)

// BuildEnv assembles the variables a generate-command expects: the release
// being documented, the working directory as GOPATH, the kubernetes source
// tree under it, and the documentation root.
func BuildEnv(release, workDir, docRoot string) map[string]string {
	return map[string]string{
		EnvRelease: release,
		EnvGopath:  workDir,
		EnvRoot:    filepath.Join(workDir, "src", "k8s.io", "kubernetes"),
		EnvWebroot: docRoot,
	}
}

// Runner executes shell commands with injected environment variables.
type Runner struct{}

// Run executes command via `sh -c` in dir with env appended to the process
// environment. Stdout and stderr pass through so generator progress is
// visible to the user.
func (Runner) Run(ctx context.Context, dir, command string, env map[string]string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), flattenEnv(env)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running generate-command", "dir", dir, "command", command)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("generate-command failed: %w", err)
	}
	return nil
}

// flattenEnv renders the map as KEY=VALUE pairs in stable order.
func flattenEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+env[k])
	}
	return pairs
}
