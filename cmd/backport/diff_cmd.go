package main

import (
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:     "diff",
		Short:   "Compare backported commits against upstream",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Compare each commit of a downstream range against its upstream
counterpart, matched by exact subject line.

Per commit the report shows a badge ([----] identical, [NNNN] the
functional difference count, [down] no upstream match) and flags for
functional (F) and contextual (C) differences. Pairs above the
sensitivity threshold are queued for the external diff viewer, and
replay commands are printed so single pairs can be reopened later.

The working tree is never touched; the comparison is read-only.`,
		Example: `  backport diff -u origin/master              # compare origin/master..HEAD
  backport diff -u v9.1.0 -r v9.0.0..HEAD     # explicit downstream range
  backport diff -S 1                          # also view contextual drift
  backport diff --summary                     # report only, no viewer
  backport diff --pick                        # choose pairs interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.upstream, "upstream", "u", "", "Upstream ref to match subjects against")
	cmd.Flags().StringVarP(&opts.rangeExpr, "range", "r", "", "Downstream range (default <upstream>..HEAD)")
	cmd.Flags().IntVarP(&opts.sensitivity, "sensitivity", "S", -1, "Viewing threshold: 0 functional, 1 +contextual, 2 all matched")
	cmd.Flags().StringVarP(&opts.tool, "tool", "t", "", "Diff viewer to launch on queued pairs")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Report only, skip the viewer")
	cmd.Flags().BoolVar(&opts.noPause, "no-pause", false, "Do not ask between viewer launches")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "Pick the pairs to view interactively")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the replay commands to the clipboard")

	return cmd
}
