package git

import "emperror.dev/errors"

// Error kinds surfaced by Service implementations. Callers match them with
// errors.Is; implementations may wrap them with extra context.
var (
	// ErrNotARepository indicates the working directory is not inside a
	// git repository. Fatal: reported before the selector starts.
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoBranches indicates the repository has no local branches yet.
	ErrNoBranches = errors.New("repository has no local branches")

	// ErrDirtyWorkingTree indicates uncommitted changes, staged or not,
	// that a checkout would overwrite. The switch is refused; nothing
	// is mutated.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrBranchNotFound indicates no local branch exists with the
	// requested name.
	ErrBranchNotFound = errors.New("branch not found")
)
