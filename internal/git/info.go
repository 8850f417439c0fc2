// Package git resolves repository identity for a working directory. Used to
// enrich audit events; every lookup degrades to directory-name fallbacks
// outside a repository.
package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

type Info struct {
	Repository string
	Branch     string
}

// GetInfo resolves the repository name and current branch for workingDir.
func GetInfo(workingDir string) *Info {
	info := &Info{
		Repository: filepath.Base(workingDir),
		Branch:     "unknown",
	}

	out, err := exec.Command("git", "-C", workingDir, "rev-parse", "--is-inside-work-tree").Output()
	if err != nil || strings.TrimSpace(string(out)) != "true" {
		return info
	}

	// rev-parse --git-common-dir names the shared .git even from a
	// worktree checkout.
	if out, err := exec.Command("git", "-C", workingDir, "rev-parse", "--git-common-dir").Output(); err == nil {
		info.Repository = filepath.Base(filepath.Dir(strings.TrimSpace(string(out))))
	} else if out, err := exec.Command("git", "-C", workingDir, "rev-parse", "--show-toplevel").Output(); err == nil {
		info.Repository = filepath.Base(strings.TrimSpace(string(out)))
	}

	if out, err := exec.Command("git", "-C", workingDir, "rev-parse", "--abbrev-ref", "HEAD").Output(); err == nil {
		if branch := strings.TrimSpace(string(out)); branch != "" {
			info.Branch = branch
		}
	}

	return info
}
