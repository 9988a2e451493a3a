// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-19
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// isoserve · Go CLI Scaffold
//
// Wraps a Cobra root command with the pieces every isoserve binary
// shares: a built-in `version` sub-command, quiet error handling and
// a single exit path.
//
// Example:
//
//   func main() {
//           root := tooling.NewRoot("isoserve", "Serve a directory")
//           root.RunE = run
//           tooling.Execute(root)
//   }
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is reported by the `version` sub-command.
var Version = "v0.2.0"

// NewRoot returns a root command with the `version` sub-command attached.
// Errors are left to Execute so they are printed exactly once.
func NewRoot(use, short string) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the " + use + " version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", use, Version)
		},
	})
	return root
}

// Execute runs root and exits non-zero on error. Typically called from main().
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
