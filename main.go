package main

import (
	"fmt"
	"os"

	"github.com/crazywolf132/twig/cmd"
	"github.com/crazywolf132/twig/internal/ui"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Red("✗"), err)
		os.Exit(1)
	}
}
