package app

import (
	"errors"

	"ib/internal/cache"
	"ib/internal/git"
	"ib/internal/github"
)

// Backend abstracts the external git and gh calls so the workflow state
// machine can be driven by deterministic fakes in tests.
type Backend interface {
	// CheckPrerequisites verifies the working tree, the gh CLI, and its
	// authentication. The returned error carries the user-facing message
	// for the first failed precondition.
	CheckPrerequisites() error

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)

	// LocalBranches lists local branch names.
	LocalBranches() ([]string, error)

	// FetchIssues returns open issues for assignee, capped at limit,
	// and reports whether they came from the cache.
	FetchIssues(assignee string, limit int) ([]github.Issue, bool, error)

	// CreateOrCheckout checks out the named branch, creating it from
	// base if needed, and reports whether it already existed.
	CreateOrCheckout(name, base string) (bool, error)
}

// CLIBackend implements Backend with git and gh subprocess calls plus
// the on-disk issue cache.
type CLIBackend struct {
	cache *cache.Store
}

// NewCLIBackend returns the production backend.
func NewCLIBackend() *CLIBackend {
	return &CLIBackend{cache: cache.NewStore()}
}

func (b *CLIBackend) CheckPrerequisites() error {
	if !git.IsInsideWorkTree() {
		return errors.New("Not a git repository. Run `git init` or `git clone` first.")
	}
	if !github.Installed() {
		return errors.New("gh CLI is not installed. Install it from https://cli.github.com/")
	}
	if !github.Authenticated() {
		return errors.New("Not logged in to gh CLI. Run `gh auth login` first.")
	}
	return nil
}

func (b *CLIBackend) CurrentBranch() (string, error) {
	return git.CurrentBranch()
}

func (b *CLIBackend) LocalBranches() ([]string, error) {
	return git.LocalBranches()
}

func (b *CLIBackend) FetchIssues(assignee string, limit int) ([]github.Issue, bool, error) {
	return b.cache.Fetch(assignee, limit, github.FetchIssues)
}

func (b *CLIBackend) CreateOrCheckout(name, base string) (bool, error) {
	return git.CreateOrCheckout(name, base)
}
