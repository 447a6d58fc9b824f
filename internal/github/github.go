// Package github wraps gh CLI invocations for issue access.
package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// Issue is a GitHub issue as returned by `gh issue list --json`.
// Issues are identified by Number and never mutated after decoding.
type Issue struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Labels []Label `json:"labels"`
	URL    string  `json:"url"`
}

// LabelNames returns the label names joined for display.
func (i Issue) LabelNames() string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// Installed checks whether the gh CLI is available.
func Installed() bool {
	_, err := runGh("--version")
	return err == nil
}

// Authenticated checks whether the gh CLI has valid credentials.
func Authenticated() bool {
	_, err := runGh("auth", "status")
	return err == nil
}

// FetchIssues lists open issues assigned to assignee, capped at limit.
// The assignee "@me" means the authenticated user.
func FetchIssues(assignee string, limit int) ([]Issue, error) {
	output, err := runGh("issue", "list",
		"--assignee", assignee,
		"--state", "open",
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,labels,url")
	if err != nil {
		return nil, err
	}
	return decodeIssues([]byte(output))
}

// decodeIssues parses the JSON array produced by gh.
func decodeIssues(data []byte) ([]Issue, error) {
	var issues []Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("malformed issue list: %w", err)
	}
	return issues, nil
}

// runGh executes a gh command and returns its stdout.
func runGh(args ...string) (string, error) {
	cmd := exec.Command("gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("gh %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}
