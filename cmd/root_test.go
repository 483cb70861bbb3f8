package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazywolf132/twig/cmd"
	"github.com/crazywolf132/twig/internal/git"
)

// seedRepo builds a repository with master and feature/login branches and
// master checked out.
func seedRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature/login"),
		Create: true,
	})
	require.NoError(t, err)
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("master"),
	})
	require.NoError(t, err)

	return dir, repo
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := cmd.NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func head(t *testing.T, repo *gogit.Repository) string {
	t.Helper()
	ref, err := repo.Head()
	require.NoError(t, err)
	return ref.Name().Short()
}

func TestRoot_DirectSwitch(t *testing.T) {
	dir, repo := seedRepo(t)
	t.Chdir(dir)

	out, err := execute(t, "feature/login")
	require.NoError(t, err)
	assert.Contains(t, out, "Switched to branch 'feature/login'")
	assert.Equal(t, "feature/login", head(t, repo))
}

func TestRoot_DirectSwitchDirtyTree(t *testing.T) {
	dir, repo := seedRepo(t)
	t.Chdir(dir)
	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("edited\n"), 0o644)
	require.NoError(t, err)

	_, err = execute(t, "feature/login")
	require.ErrorIs(t, err, git.ErrDirtyWorkingTree)
	assert.Equal(t, "master", head(t, repo), "a refused switch must not move HEAD")
}

func TestRoot_DirectSwitchMissingBranch(t *testing.T) {
	dir, _ := seedRepo(t)
	t.Chdir(dir)

	_, err := execute(t, "ghost")
	require.ErrorIs(t, err, git.ErrBranchNotFound)
}

func TestRoot_OutsideRepository(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "main")
	require.ErrorIs(t, err, git.ErrNotARepository)
	assert.Contains(t, err.Error(), "twig must run inside a git repository")
}

func TestRoot_SelectorNeedsTerminal(t *testing.T) {
	dir, _ := seedRepo(t)
	t.Chdir(dir)

	// Under go test stdout is a pipe, so the selector refuses to start.
	_, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "twig")
}
