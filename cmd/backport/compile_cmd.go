package main

import (
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var opts compileOptions

	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Build every commit of a range",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Check out every commit of a range in order, oldest first, and build
it with make clean (failures ignored), ./configure and make. All build
output is appended to a log file.

The first failing commit aborts the run unless --keep-going is set. The
branch checked out before the run is restored on every exit path,
including interrupts.`,
		Example: `  backport compile -r v9.0.0..HEAD
  backport compile -r v9.0.0..HEAD -c '--target-list=x86_64-softmmu'
  backport compile -r v9.0.0..HEAD -m '-j8' --skip-configure
  backport compile -r v9.0.0..HEAD --clean -k    # scrub tree, keep going`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.rangeExpr, "range", "r", "", "Commit range to build (required)")
	cmd.Flags().StringVarP(&opts.configureOpts, "configure-opts", "c", "", "Options passed to ./configure")
	cmd.Flags().StringVarP(&opts.makeOpts, "make-opts", "m", "", "Options passed to make")
	cmd.Flags().BoolVar(&opts.skipConfigure, "skip-configure", false, "Skip the configure step")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Reset and scrub the tree before every commit (destructive)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Directory for the build log (default current directory)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Build log file name (default build.log)")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "Continue past failing commits")
	cmd.MarkFlagRequired("range")

	return cmd
}
