package git

import (
	"io"
	"os"
	"path"

	"emperror.dev/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/sirupsen/logrus"
)

// Repo is a Service backed by a repository on disk. All operations go
// through go-git; the git binary is never shelled out to.
type Repo struct {
	repo *gogit.Repository
	wt   *gogit.Worktree
	root string
}

var _ Service = (*Repo)(nil)

// Open finds the repository containing dir, walking up parent directories
// the way the git binary does. It returns ErrNotARepository when dir is
// not inside one.
func Open(dir string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotARepository
		}
		return nil, errors.Wrap(err, "failed to open repository")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "repository has no working tree")
	}

	root := wt.Filesystem.Root()
	logrus.WithField("root", root).Debug("opened repository")

	return &Repo{repo: repo, wt: wt, root: root}, nil
}

// Root returns the absolute path of the working tree.
func (r *Repo) Root() string {
	return r.root
}

func (r *Repo) ListBranches() ([]Branch, error) {
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Branches()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read branch refs")
	}

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		branches = append(branches, Branch{
			Name:      name,
			IsCurrent: name == current,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to iterate branch refs")
	}
	return branches, nil
}

func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		// A freshly initialised repository has no commits, so HEAD
		// resolves to nothing.
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to resolve HEAD")
	}
	if !head.Name().IsBranch() {
		logrus.WithField("head", head.Hash().String()).Debug("HEAD is detached")
		return "", nil
	}
	return head.Name().Short(), nil
}

func (r *Repo) HasUncommittedChanges() (bool, error) {
	status, err := r.wt.Status()
	if err != nil {
		return false, errors.Wrap(err, "failed to read worktree status")
	}
	for file, st := range status {
		if st.Staging == gogit.Untracked && st.Worktree == gogit.Untracked {
			continue
		}
		if st.Staging == gogit.Unmodified && st.Worktree == gogit.Unmodified {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"path":     file,
			"staging":  string(st.Staging),
			"worktree": string(st.Worktree),
		}).Debug("uncommitted change")
		return true, nil
	}
	return false, nil
}

// Checkout makes the named local branch current. The branch is resolved
// and the tree verified clean before anything is touched, so a refused
// switch leaves HEAD, the index, and every file as they were.
func (r *Repo) Checkout(name string) error {
	branch := plumbing.NewBranchReferenceName(name)
	ref, err := r.repo.Reference(branch, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return ErrBranchNotFound
		}
		return errors.Wrapf(err, "failed to resolve %q", name)
	}

	dirty, err := r.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if dirty {
		return ErrDirtyWorkingTree
	}

	if err := r.switchTo(ref); err != nil {
		if errors.Is(err, ErrDirtyWorkingTree) {
			return err
		}
		logrus.WithError(err).WithField("branch", name).Debug("checkout failed")
		return errors.Wrapf(err, "failed to checkout %q", name)
	}
	logrus.WithField("branch", name).Debug("checked out branch")
	return nil
}

// switchTo applies the file changes between the HEAD commit and the branch
// commit, points HEAD at the branch, and resets the index to its tree.
// go-git's Worktree.Checkout is avoided: its merge reset moves HEAD before
// validating and deletes untracked files.
func (r *Repo) switchTo(ref *plumbing.Reference) error {
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return err
	}
	target, err := commit.Tree()
	if err != nil {
		return err
	}
	current, err := r.headTree()
	if err != nil {
		return err
	}

	changes, err := object.DiffTree(current, target)
	if err != nil {
		return err
	}
	if err := r.applyChanges(changes); err != nil {
		return err
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, ref.Name())
	if err := r.repo.Storer.SetReference(head); err != nil {
		return err
	}
	// Index only: the files already match the target tree.
	return r.wt.Reset(&gogit.ResetOptions{Mode: gogit.MixedReset, Commit: commit.Hash})
}

// headTree returns the tree of the current HEAD commit, or nil right after
// init when HEAD has no commit yet.
func (r *Repo) headTree() (*object.Tree, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

// applyChanges edits the worktree file by file. An untracked file sitting
// on a path the branch wants refuses the whole switch before anything is
// touched. Deletions run before writes so a path can flip between file
// and directory.
func (r *Repo) applyChanges(changes object.Changes) error {
	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return err
		}
		if action != merkletrie.Insert || ch.To.TreeEntry.Mode == filemode.Submodule {
			continue
		}
		if _, err := r.wt.Filesystem.Lstat(ch.To.Name); err == nil {
			logrus.WithField("path", ch.To.Name).Debug("untracked file in the way")
			return ErrDirtyWorkingTree
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return err
		}
		if action != merkletrie.Delete && action != merkletrie.Modify {
			continue
		}
		if ch.From.TreeEntry.Mode == filemode.Submodule {
			continue
		}
		if err := r.removePath(ch.From.Name); err != nil {
			return err
		}
	}

	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return err
		}
		if action != merkletrie.Insert && action != merkletrie.Modify {
			continue
		}
		if err := r.writeEntry(ch.To.Name, ch.To.TreeEntry); err != nil {
			return err
		}
	}
	return nil
}

// removePath deletes a file and prunes directories the deletion emptied.
func (r *Repo) removePath(name string) error {
	if err := r.wt.Filesystem.Remove(name); err != nil && !os.IsNotExist(err) {
		return err
	}
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if err := r.wt.Filesystem.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

func (r *Repo) writeEntry(name string, entry object.TreeEntry) error {
	if entry.Mode == filemode.Submodule {
		return r.wt.Filesystem.MkdirAll(name, 0o755)
	}

	blob, err := r.repo.BlobObject(entry.Hash)
	if err != nil {
		return err
	}
	rd, err := blob.Reader()
	if err != nil {
		return err
	}
	defer rd.Close()

	if entry.Mode == filemode.Symlink {
		link, err := io.ReadAll(rd)
		if err != nil {
			return err
		}
		return r.wt.Filesystem.Symlink(string(link), name)
	}

	perm, err := entry.Mode.ToOSFileMode()
	if err != nil {
		return err
	}
	f, err := r.wt.Filesystem.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rd); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
