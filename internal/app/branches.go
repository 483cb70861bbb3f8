package app

import (
	"sort"

	"emperror.dev/errors"
	"github.com/crazywolf132/twig/internal/git"
)

// ListBranches returns the repository's local branches sorted by name.
// A repository without local branches yields git.ErrNoBranches.
func ListBranches(g git.Service) ([]git.Branch, error) {
	branches, err := g.ListBranches()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to list branches")
	}
	if len(branches) == 0 {
		return nil, git.ErrNoBranches
	}
	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}
