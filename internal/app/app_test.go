package app

import (
	"testing"

	"emperror.dev/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazywolf132/twig/internal/git"
)

func TestListBranches_SortsByName(t *testing.T) {
	g := &git.MockGit{Branches: []git.Branch{
		{Name: "zoo"},
		{Name: "feature/login"},
		{Name: "main", IsCurrent: true},
	}}

	branches, err := ListBranches(g)
	require.NoError(t, err)

	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"feature/login", "main", "zoo"}, names)
}

func TestListBranches_EmptyRepository(t *testing.T) {
	_, err := ListBranches(&git.MockGit{})
	require.ErrorIs(t, err, git.ErrNoBranches)
}

func TestListBranches_Error(t *testing.T) {
	boom := errors.New("boom")

	_, err := ListBranches(&git.MockGit{ListErr: boom})
	require.ErrorIs(t, err, boom)
}

func TestSwitchBranch_CleanTree(t *testing.T) {
	g := git.NewMockGit("main", "feature/login")

	require.NoError(t, SwitchBranch(g, "feature/login"))
	assert.True(t, g.Called("Checkout:feature/login"))

	current, err := g.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature/login", current)
}

func TestSwitchBranch_DirtyTreeRefused(t *testing.T) {
	g := git.NewMockGit("main", "feature/login")
	g.Dirty = true

	err := SwitchBranch(g, "feature/login")
	require.ErrorIs(t, err, git.ErrDirtyWorkingTree)

	assert.False(t, g.Called("Checkout:feature/login"),
		"a dirty tree must refuse the switch before checkout")

	current, err := g.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", current)
}

func TestSwitchBranch_MissingBranch(t *testing.T) {
	g := git.NewMockGit("main")

	err := SwitchBranch(g, "ghost")
	require.ErrorIs(t, err, git.ErrBranchNotFound)
	assert.Contains(t, err.Error(), "cannot switch to 'ghost'")
}

func TestSwitchBranch_StatusError(t *testing.T) {
	boom := errors.New("boom")
	g := git.NewMockGit("main", "feature/login")
	g.StatusErr = boom

	err := SwitchBranch(g, "feature/login")
	require.ErrorIs(t, err, boom)
	assert.False(t, g.Called("Checkout:feature/login"))
}
