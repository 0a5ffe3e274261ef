package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration: the ordered list of
// source repositories to import reference documentation from.
type Config struct {
	Repos []RepoSpec `yaml:"repos"`
}

// RepoSpec represents one source repository plus its file-copy directives.
type RepoSpec struct {
	Name             string          `yaml:"name"`
	Remote           string          `yaml:"remote"`
	Branch           string          `yaml:"branch"`
	GenerateCommand  string          `yaml:"generate-command,omitempty"`
	GenAbsoluteLinks bool            `yaml:"gen-absolute-links,omitempty"`
	Files            []FileDirective `yaml:"files"`
}

// FileDirective maps a glob pattern inside the cloned repository to a
// destination path under the documentation root. A Dst ending in "/" is a
// directory; the source file's base name is appended on copy.
type FileDirective struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing environment wins and the
	// first file found is the only one loaded.
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Repos == nil {
		return nil, fmt.Errorf("config %s has no 'repos' key", configPath)
	}

	return &config, nil
}

// Validate reports the missing required fields of a single repo entry.
// Per-repo validation stays out of Load so one bad entry cannot abort the
// whole run.
func (r RepoSpec) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("repo missing name")
	}
	if r.Remote == "" {
		return fmt.Errorf("repo %s missing remote", r.Name)
	}
	if r.Branch == "" {
		return fmt.Errorf("repo %s missing branch", r.Name)
	}
	return nil
}

// NormalizeRelease appends a ".0" patch component to a four-character
// "major.minor" release string (e.g. "1.17" becomes "1.17.0"). Any other
// length passes through unchanged.
func NormalizeRelease(release string) string {
	if len(release) == 4 {
		return release + ".0"
	}
	return release
}
