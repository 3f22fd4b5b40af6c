package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/querido/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐ ┬ ┬┌─┐┬─┐┬┌┬┐┌─┐
  │─┼┐│ │├┤ ├┬┘│ │││ │
  └─┘└└─┘└─┘┴└─┴─┴┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "querido",
		Short: "Compile tagged GraphQL-style literals into typed artifacts",
		Long: `querido finds data\`...\` literals in your source tree, validates
their selections against a schema, and writes a typed artifact file for
each one into the configured output directory.

  • One-shot compile for CI and build pipelines
  • A watch mode that recompiles on save and pushes browser/editor reload
  • A language-server mode for inline diagnostics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		compileCmd(),
		watchCmd(),
		lspCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
