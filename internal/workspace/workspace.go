package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/refsync/internal/logfields"
)

// Manager handles the working directory for one sync run.
type Manager struct {
	baseDir string
	workDir string
}

// NewManager creates a workspace manager. An empty baseDir selects the
// platform default: /tmp on darwin (the system temp dir there lives under
// a long /var/folders path that GOPATH-based tooling trips over), the
// system temp directory elsewhere.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		if runtime.GOOS == "darwin" {
			baseDir = "/tmp"
		} else {
			baseDir = os.TempDir()
		}
	}
	return &Manager{baseDir: baseDir}
}

// Create creates a uniquely named working directory under the base directory.
func (m *Manager) Create() error {
	timestamp := time.Now().Format("20060102-150405")
	workDir := filepath.Join(m.baseDir, fmt.Sprintf("refsync-%s-%s", timestamp, uuid.NewString()[:8]))

	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	m.workDir = workDir
	slog.Info("Created working directory", logfields.Path(workDir))
	return nil
}

// Path returns the path to the working directory.
func (m *Manager) Path() string {
	return m.workDir
}

// Cleanup removes the working directory. The sync run never calls this; it
// exists so tests can reclaim space.
func (m *Manager) Cleanup() error {
	if m.workDir == "" {
		return nil
	}
	if err := os.RemoveAll(m.workDir); err != nil {
		return fmt.Errorf("failed to cleanup working directory: %w", err)
	}
	m.workDir = ""
	return nil
}
