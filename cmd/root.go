package cmd

import (
	"fmt"
	"os"
	"strings"

	"emperror.dev/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/crazywolf132/twig/internal/app"
	"github.com/crazywolf132/twig/internal/config"
	"github.com/crazywolf132/twig/internal/git"
	"github.com/crazywolf132/twig/internal/ui"
	"github.com/crazywolf132/twig/internal/update"
	"github.com/crazywolf132/twig/internal/version"
)

// NewRootCmd builds the twig command tree. Tests construct their own
// instance so no state leaks between runs.
func NewRootCmd() *cobra.Command {
	var cfg *config.Settings

	root := &cobra.Command{
		Use:   "twig [branch]",
		Short: "Interactive git branch switcher",
		Long: `Twig lists the repository's local branches in a small terminal UI.
Pick one with j/k or the arrow keys and press enter to check it out,
or pass a branch name to switch directly without the UI.

Switching is refused while the working tree has uncommitted changes, so
a checkout never overwrites local work.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			config.SetupLogging(cfg)
			if cfg.NoColor {
				ui.DisableColors()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cfg == nil || cfg.NoUpdateCheck {
				return
			}
			// Only nag humans, never scripts or pipes.
			if !term.IsTerminal(int(os.Stderr.Fd())) {
				return
			}
			if notice := update.Notice(version.Get()); notice != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Yellow(notice))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := git.Open(".")
			if err != nil {
				if errors.Is(err, git.ErrNotARepository) {
					return errors.WithMessage(err, "twig must run inside a git repository")
				}
				return err
			}
			if len(args) == 1 {
				return switchDirect(cmd, repo, args[0])
			}
			return runSelector(cmd, repo)
		},
		ValidArgsFunction: completeBranches,
	}

	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs twig.
func Execute() error {
	return NewRootCmd().Execute()
}

func switchDirect(cmd *cobra.Command, repo *git.Repo, name string) error {
	if err := app.SwitchBranch(repo, name); err != nil {
		return err
	}
	printSwitched(cmd, name)
	return nil
}

func runSelector(cmd *cobra.Command, repo *git.Repo) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("standard output is not a terminal (pass a branch name to switch directly)")
	}

	branches, err := app.ListBranches(repo)
	if err != nil && !errors.Is(err, git.ErrNoBranches) {
		return err
	}

	p := tea.NewProgram(ui.New(repo, repo.Root(), branches), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "selector failed")
	}
	if m, ok := final.(ui.Model); ok && m.Switched() != "" {
		printSwitched(cmd, m.Switched())
	}
	return nil
}

func printSwitched(cmd *cobra.Command, name string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to branch '%s'\n", ui.Green("✓"), name)
}

// completeBranches feeds shell completion for the branch argument.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repo, err := git.Open(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := app.ListBranches(repo)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		if toComplete == "" || strings.HasPrefix(b.Name, toComplete) {
			names = append(names, b.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
