package git

// MockGit implements the Service interface for testing. It keeps branch
// state in memory and records every call so tests can assert what was,
// and was not, invoked.
type MockGit struct {
	// Branches is the fake repository state. Checkout mutates the
	// IsCurrent flags in place.
	Branches []Branch

	// Dirty marks the working tree as holding uncommitted changes:
	// HasUncommittedChanges reports it and Checkout refuses with
	// ErrDirtyWorkingTree.
	Dirty bool

	// Forced errors, returned instead of the default behavior.
	ListErr     error
	CurrentErr  error
	StatusErr   error
	CheckoutErr error

	// Ops records calls in order, e.g. "Checkout:feature/login".
	Ops []string
}

// NewMockGit creates a mock with a clean tree and a current main branch.
func NewMockGit(names ...string) *MockGit {
	m := &MockGit{}
	if len(names) == 0 {
		names = []string{"main"}
	}
	for i, name := range names {
		m.Branches = append(m.Branches, Branch{Name: name, IsCurrent: i == 0})
	}
	return m
}

func (m *MockGit) track(op string) {
	m.Ops = append(m.Ops, op)
}

// Called reports whether op was recorded.
func (m *MockGit) Called(op string) bool {
	for _, o := range m.Ops {
		if o == op {
			return true
		}
	}
	return false
}

func (m *MockGit) ListBranches() ([]Branch, error) {
	m.track("ListBranches")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]Branch, len(m.Branches))
	copy(out, m.Branches)
	return out, nil
}

func (m *MockGit) CurrentBranch() (string, error) {
	m.track("CurrentBranch")
	if m.CurrentErr != nil {
		return "", m.CurrentErr
	}
	for _, b := range m.Branches {
		if b.IsCurrent {
			return b.Name, nil
		}
	}
	return "", nil
}

func (m *MockGit) HasUncommittedChanges() (bool, error) {
	m.track("HasUncommittedChanges")
	if m.StatusErr != nil {
		return false, m.StatusErr
	}
	return m.Dirty, nil
}

func (m *MockGit) Checkout(name string) error {
	m.track("Checkout:" + name)
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}
	if m.Dirty {
		return ErrDirtyWorkingTree
	}
	found := false
	for i := range m.Branches {
		if m.Branches[i].Name == name {
			found = true
			break
		}
	}
	if !found {
		return ErrBranchNotFound
	}
	for i := range m.Branches {
		m.Branches[i].IsCurrent = m.Branches[i].Name == name
	}
	return nil
}

var _ Service = (*MockGit)(nil)
