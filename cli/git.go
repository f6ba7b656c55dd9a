package cli

// This file contains Git integration utilities for retrieving
// repository information.

import (
	"fmt"
	"os/exec"
	"strings"
)

// getGitInfo returns the commit and branch of the repository containing dir.
func (a *App) getGitInfo(dir string) (commit, branch string, err error) {
	// Get current commit hash
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git commit: %w", err)
	}
	commit = strings.TrimSpace(string(output))

	// Get current branch
	cmd = exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err = cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git branch: %w", err)
	}
	branch = strings.TrimSpace(string(output))

	return commit, branch, nil
}
