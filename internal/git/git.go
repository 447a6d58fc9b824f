// Package git provides the git operations behind branch creation.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// IsInsideWorkTree reports whether the working directory is in a git repo.
func IsInsideWorkTree() bool {
	_, err := runGit("rev-parse", "--is-inside-work-tree")
	return err == nil
}

// CurrentBranch returns the current branch name.
func CurrentBranch() (string, error) {
	output, err := runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// LocalBranches returns all local branch names.
func LocalBranches() ([]string, error) {
	output, err := runGit("branch", "--list", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return parseBranches(output), nil
}

// parseBranches splits one-branch-per-line output, dropping blank lines.
func parseBranches(output string) []string {
	var branches []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		branches = append(branches, line)
	}
	return branches
}

// BranchExists checks if a local branch exists.
func BranchExists(name string) bool {
	_, err := runGit("rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

// CreateOrCheckout checks out the named branch, creating it from base if it
// does not exist yet. It reports whether the branch already existed.
func CreateOrCheckout(name, base string) (bool, error) {
	if BranchExists(name) {
		_, err := runGit("checkout", name)
		return true, err
	}

	_, err := runGit("checkout", "-b", name, base)
	return false, err
}

// runGit executes a git command and returns the output.
func runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}
