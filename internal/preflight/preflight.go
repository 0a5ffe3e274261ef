// Package preflight verifies external prerequisites before any repository
// work begins. All checks run to completion so a user missing several tools
// sees every remediation at once instead of fixing and re-running one at a
// time.
package preflight

import "os/exec"

// Finding describes one missing prerequisite and how to remedy it.
type Finding struct {
	Tool      string
	Message   string
	RemedyURL string
}

// lookPath is swappable for tests.
var lookPath = exec.LookPath

// Check inspects the environment and returns one Finding per missing
// prerequisite. An empty slice means the run may proceed.
func Check() []Finding {
	checks := []struct {
		tool      string
		message   string
		remedyURL string
	}{
		{
			tool:      "git",
			message:   "git must be installed; generate-commands and repository tooling rely on it",
			remedyURL: "https://git-scm.com/downloads",
		},
		{
			tool:      "go",
			message:   "Go must be installed; the reference generators are Go commands",
			remedyURL: "https://golang.org/doc/install",
		},
	}

	var findings []Finding
	for _, c := range checks {
		if _, err := lookPath(c.tool); err != nil {
			findings = append(findings, Finding{
				Tool:      c.tool,
				Message:   c.message,
				RemedyURL: c.remedyURL,
			})
		}
	}
	return findings
}
