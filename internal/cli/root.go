// Package cli implements reviewctl, a terminal client for the code reviewer.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Review a code snippet with the AI code reviewer",
		Long:          "reviewctl sends a code snippet to the AI code reviewer, either through a running server or in-process, and prints the markdown review.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newReviewCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print reviewctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reviewctl version %s\n", version)
		},
	})
	return root
}

// Run executes reviewctl against the process streams and returns an exit code.
func Run(args []string) int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "error: %v\n", err)
		if isUsageError(err) {
			return ExitUsageError
		}
		return ExitRuntimeError
	}
	return ExitSuccess
}
