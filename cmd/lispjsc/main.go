// Command lispjsc is a small demonstration CLI over internal/compiler: it
// exists to exercise the compiler core from the command line rather than
// only from tests, following the root-command-plus-subcommand-files shape
// of cmd/aleutian in the jinterlante1206-AleutianLocal example (one
// package-level *cobra.Command var per file, wired together in init()).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lispjsc",
	Short: "A demo driver for the lispjs-to-JavaScript compiler core",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
