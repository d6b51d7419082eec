package main

import (
	"context"

	"github.com/lbergmann/backport/internal/iterate"
	"github.com/lbergmann/backport/internal/log"
	"github.com/lbergmann/backport/internal/output"
	"github.com/lbergmann/backport/internal/run"
)

type foreachOptions struct {
	rangeExpr string
	logDir    string
	logFile   string
	keepGoing bool
}

func runForeach(ctx context.Context, opts foreachOptions, cmdArgs []string) error {
	if err := requireRepo(ctx); err != nil {
		return err
	}

	eff, err := effectiveConfig(ctx)
	if err != nil {
		return err
	}
	if opts.logDir == "" {
		opts.logDir = eff.LogDir
	}
	if opts.logFile == "" {
		opts.logFile = eff.LogFile
	}

	runOpts := run.Options{
		Command: run.Join(cmdArgs),
		LogDir:  opts.logDir,
		LogFile: opts.logFile,
	}

	out := output.FromContext(ctx)
	runner, err := run.New(workDir, runOpts, out.Writer())
	if err != nil {
		return err
	}
	defer runner.Close()

	l := log.FromContext(ctx)
	l.Printf("Logging command output to %s\n", runOpts.LogPath())
	l.Debug("foreach", "command", runOpts.Command, "range", opts.rangeExpr)

	return iterate.Run(ctx, iterate.Options{
		Dir:       workDir,
		Range:     opts.rangeExpr,
		KeepGoing: opts.keepGoing,
	}, runner.Step)
}
