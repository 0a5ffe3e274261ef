package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Repos: []RepoSpec{
			{
				Name:            "reference-docs",
				Remote:          "https://github.com/kubernetes-sigs/reference-docs.git",
				Branch:          "master",
				GenerateCommand: "cd gen-compdocs && make comp",
				Files: []FileDirective{
					{
						Src: "gen-compdocs/build/kube-apiserver.md",
						Dst: "content/en/docs/reference/command-line-tools-reference/",
					},
					{
						Src: "gen-compdocs/build/kubectl.md",
						Dst: "content/en/docs/reference/kubectl/kubectl.md",
					},
				},
			},
			{
				Name:             "kubernetes",
				Remote:           "https://github.com/kubernetes/kubernetes.git",
				Branch:           "release-1.17",
				GenAbsoluteLinks: true,
				Files: []FileDirective{
					{
						Src: "README.md",
						Dst: "content/en/docs/imported/",
					},
				},
			},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
