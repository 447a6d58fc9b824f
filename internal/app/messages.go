package app

import (
	"ib/internal/github"
)

// Message types for the bubbletea app. Each message reports the
// completion of exactly one external call; every phase transition is
// triggered by a single message or a single key press.

// PrereqCheckedMsg is sent when the prerequisite check completes.
type PrereqCheckedMsg struct {
	Err error
}

// CurrentBranchMsg is sent when the current branch has been read.
type CurrentBranchMsg struct {
	Name string
	Err  error
}

// IssuesLoadedMsg is sent when the issue fetch completes.
type IssuesLoadedMsg struct {
	Issues    []github.Issue
	FromCache bool
	Err       error
}

// BranchesLoadedMsg is sent when the local branch listing completes.
type BranchesLoadedMsg struct {
	Branches []string
	Err      error
}

// BranchCreatedMsg is sent when branch creation completes.
type BranchCreatedMsg struct {
	Name           string
	AlreadyExisted bool
	Err            error
}
