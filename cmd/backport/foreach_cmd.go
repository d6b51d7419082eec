package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newForeachCmd() *cobra.Command {
	var opts foreachOptions

	cmd := &cobra.Command{
		Use:     "foreach -r <range> -- <command>",
		Short:   "Run a shell command on every commit of a range",
		GroupID: GroupCore,
		Long: `Check out every commit of a range in order, oldest first, and run a
shell command against it. The command is evaluated with sh -c in the
repository directory; its output is streamed and appended to a log file.

A failing command aborts the run unless --keep-going is set. The branch
checked out before the run is restored on every exit path, including
interrupts.`,
		Example: `  backport foreach -r v9.0.0..HEAD -- make check
  backport foreach -r v9.0.0..HEAD -- ./scripts/checkpatch.pl HEAD
  backport foreach -r v9.0.0..HEAD -k -- grep -r TODO hw/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Cobra handles -- specially - ArgsLenAtDash returns index where -- appeared
			dashIdx := cmd.ArgsLenAtDash()

			var cmdArgs []string
			if dashIdx == -1 {
				cmdArgs = args
			} else {
				if dashIdx != 0 {
					return fmt.Errorf("unexpected arguments before --: %v", args[:dashIdx])
				}
				cmdArgs = args[dashIdx:]
			}
			if len(cmdArgs) == 0 {
				return fmt.Errorf("no command specified (use -- before command)")
			}

			return runForeach(cmd.Context(), opts, cmdArgs)
		},
	}

	cmd.Flags().StringVarP(&opts.rangeExpr, "range", "r", "", "Commit range to iterate (required)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Directory for the command log (default current directory)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Command log file name (default foreach.log)")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "Continue past failing commits")
	cmd.MarkFlagRequired("range")

	return cmd
}
