// Package git wraps the repository operations twig needs behind a small
// interface so the selector and use-cases can be tested against a fake.
package git

// Branch is a snapshot of one local branch.
type Branch struct {
	// Name is the short name, e.g. "main" or "feature/login".
	Name string
	// IsCurrent marks the branch HEAD points at. False on every branch
	// when HEAD is detached or unborn.
	IsCurrent bool
}

// Service is the full surface twig requires from a repository. No ordering
// is promised by ListBranches; the app layer sorts.
type Service interface {
	// ListBranches returns every local branch. An empty repository
	// yields an empty slice, not an error.
	ListBranches() ([]Branch, error)

	// CurrentBranch returns the short name of the branch HEAD points
	// at, or "" when HEAD is detached or unborn.
	CurrentBranch() (string, error)

	// HasUncommittedChanges reports whether any tracked file holds
	// staged or unstaged modifications. Untracked files do not count:
	// a checkout never overwrites them.
	HasUncommittedChanges() (bool, error)

	// Checkout makes the named local branch current, updating HEAD,
	// the index, and the working tree. It returns ErrDirtyWorkingTree
	// or ErrBranchNotFound without touching repository state.
	Checkout(name string) error
}
