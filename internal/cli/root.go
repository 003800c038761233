// Package cli implements the chameleon command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is reported by the version command.
var Version = "dev"

// loggedError marks an error that was already written to the logger.
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chameleon",
		Short: "cluster labeled geographic points",
		Long: `
chameleon groups geographic points with a two-phase hierarchical algorithm:
a k-nearest-neighbor graph is partitioned into many small clusters, which are
then merged pairwise by relative interconnectivity and closeness until the
requested number remains. Point labels are only used to name and score the
resulting clusters.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// Execute runs the command line and exits with status 1 on failure.
func Execute(version string) {
	Version = version

	if err := newRootCmd().Execute(); err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
