package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crazywolf132/twig/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the twig version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "twig %s\n", version.Get())
		},
	}
}
