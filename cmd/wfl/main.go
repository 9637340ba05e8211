// Command wfl is the WFL interpreter's command-line entry point: run a
// script, scaffold a new project interactively, or launch the
// language server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagInit bool
	flagLint string
	flagFix  string
	flagLSP  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "wfl [path]",
		Version: Version,
		Short:   "WFL, a natural-language programming language",
		Long: `wfl runs WebFirst Language programs: a natural-language syntax with
a static type checker, a cooperative async runtime, and an embedded
pattern-matching engine.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case flagLSP:
				return runLSP(cmd.Context())
			case flagInit:
				dir := "."
				if len(args) > 0 {
					dir = args[0]
				}
				return runInit(dir)
			case flagLint != "":
				return fmt.Errorf("wfl --lint is not implemented in this build")
			case flagFix != "":
				return fmt.Errorf("wfl --fix is not implemented in this build")
			case len(args) == 1:
				return runScript(args[0])
			default:
				return cmd.Help()
			}
		},
	}

	rootCmd.Flags().BoolVar(&flagInit, "init", false, "interactive configuration wizard")
	rootCmd.Flags().StringVar(&flagLint, "lint", "", "lint a WFL source file (not implemented)")
	rootCmd.Flags().StringVar(&flagFix, "fix", "", "auto-fix a WFL source file (not implemented)")
	rootCmd.Flags().BoolVar(&flagLSP, "lsp", false, "launch the language server over stdio")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
