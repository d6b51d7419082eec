package main

import (
	"context"

	"github.com/lbergmann/backport/internal/build"
	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/iterate"
	"github.com/lbergmann/backport/internal/log"
)

type compileOptions struct {
	rangeExpr     string
	configureOpts string
	makeOpts      string
	skipConfigure bool
	clean         bool
	logDir        string
	logFile       string
	keepGoing     bool
}

func runCompile(ctx context.Context, opts compileOptions) error {
	if err := requireRepo(ctx); err != nil {
		return err
	}

	eff, err := effectiveConfig(ctx)
	if err != nil {
		return err
	}
	if opts.configureOpts == "" {
		opts.configureOpts = eff.ConfigureOpts
	}
	if opts.makeOpts == "" {
		opts.makeOpts = eff.MakeOpts
	}
	if opts.logDir == "" {
		opts.logDir = eff.LogDir
	}
	if opts.logFile == "" {
		opts.logFile = eff.LogFile
	}

	// Flags given on the first run become the repo's defaults.
	if err := config.Seed(ctx, workDir, config.KeyConfigureOpts, opts.configureOpts); err != nil {
		return err
	}
	if err := config.Seed(ctx, workDir, config.KeyMakeOpts, opts.makeOpts); err != nil {
		return err
	}

	buildOpts := build.Options{
		ConfigureOpts: opts.configureOpts,
		MakeOpts:      opts.makeOpts,
		SkipConfigure: opts.skipConfigure,
		Scrub:         opts.clean,
		LogDir:        opts.logDir,
		LogFile:       opts.logFile,
	}

	runner, err := build.New(workDir, buildOpts)
	if err != nil {
		return err
	}
	defer runner.Close()

	l := log.FromContext(ctx)
	l.Printf("Logging build output to %s\n", buildOpts.LogPath())

	return iterate.Run(ctx, iterate.Options{
		Dir:       workDir,
		Range:     opts.rangeExpr,
		KeepGoing: opts.keepGoing,
	}, runner.Step)
}
