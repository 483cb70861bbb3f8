package app

import (
	"emperror.dev/errors"
	"github.com/crazywolf132/fstr"
	"github.com/crazywolf132/twig/internal/git"
)

// SwitchBranch checks out the named branch. The working tree is inspected
// first: when uncommitted changes exist the switch is refused with
// git.ErrDirtyWorkingTree and no repository state is touched.
func SwitchBranch(g git.Service, name string) error {
	dirty, err := g.HasUncommittedChanges()
	if err != nil {
		return errors.WithMessage(err, "failed to inspect working tree")
	}
	if dirty {
		return git.ErrDirtyWorkingTree
	}
	if err := g.Checkout(name); err != nil {
		return errors.WithMessage(err, fstr.F("cannot switch to '{}'", name))
	}
	return nil
}
