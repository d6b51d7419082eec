// Package build runs the per-commit configure/make steps of the
// compile command and collects their output in a log file.
package build

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/lbergmann/backport/internal/git"
	"github.com/lbergmann/backport/internal/log"
)

// Options configures the build steps.
type Options struct {
	ConfigureOpts string // free-form options passed to ./configure
	MakeOpts      string // free-form options passed to make
	SkipConfigure bool
	Scrub         bool   // reset --hard + clean before every commit (destructive, opt-in)
	LogDir        string // "" means current directory
	LogFile       string
}

// LogPath resolves the log file location from Options.
func (o Options) LogPath() string {
	name := o.LogFile
	if name == "" {
		name = "build.log"
	}
	return filepath.Join(o.LogDir, name)
}

// Runner executes the build steps for each commit of a range.
type Runner struct {
	dir           string
	opts          Options
	configureArgs []string
	makeArgs      []string
	logf          *os.File
}

// New parses the free-form option strings and opens the log file for
// appending.
func New(dir string, opts Options) (*Runner, error) {
	configureArgs, err := shellquote.Split(opts.ConfigureOpts)
	if err != nil {
		return nil, fmt.Errorf("invalid configure options: %v", err)
	}
	makeArgs, err := shellquote.Split(opts.MakeOpts)
	if err != nil {
		return nil, fmt.Errorf("invalid make options: %v", err)
	}

	logf, err := os.OpenFile(opts.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Runner{
		dir:           dir,
		opts:          opts,
		configureArgs: configureArgs,
		makeArgs:      makeArgs,
		logf:          logf,
	}, nil
}

// Close closes the log file.
func (r *Runner) Close() error {
	return r.logf.Close()
}

// Step builds one checked-out commit: optional scrub, a clean step whose
// failure is ignored (no previous build is fine), configure, make. The
// first failing step aborts the commit.
func (r *Runner) Step(ctx context.Context, hash string) error {
	l := log.FromContext(ctx)

	fmt.Fprintf(r.logf, "\n=== %s (%s) ===\n", hash, time.Now().Format(time.RFC3339))

	if r.opts.Scrub {
		if err := git.ResetHard(ctx, r.dir); err != nil {
			return err
		}
		if err := git.Clean(ctx, r.dir); err != nil {
			return err
		}
	}

	// A missing previous build is not an error.
	if err := r.step(ctx, "make", "clean"); err != nil {
		l.Debug("make clean failed, ignoring", "commit", hash)
	}

	if !r.opts.SkipConfigure {
		if err := r.step(ctx, "./configure", r.configureArgs...); err != nil {
			return fmt.Errorf("configure: %w", err)
		}
	}

	if err := r.step(ctx, "make", r.makeArgs...); err != nil {
		return fmt.Errorf("make: %w", err)
	}

	return nil
}

func (r *Runner) step(ctx context.Context, name string, args ...string) error {
	fmt.Fprintf(r.logf, "--- %s %s\n", name, shellquote.Join(args...))

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = r.dir
	c.Stdout = r.logf
	c.Stderr = r.logf
	return c.Run()
}
