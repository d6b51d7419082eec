// Package iterate implements the shared walk-checkout-act loop used by
// the compile and foreach commands: resolve a commit range, check out
// each commit in order, run an action, and always put the working tree
// back where it started.
package iterate

import (
	"context"
	"errors"
	"fmt"

	"github.com/lbergmann/backport/internal/git"
	"github.com/lbergmann/backport/internal/log"
)

// ErrInterrupted reports that the run was cancelled by the user.
// Interruption is not a failure: no per-commit error is printed and the
// working tree is still restored.
var ErrInterrupted = errors.New("interrupted")

// Action runs against a single checked-out commit.
type Action func(ctx context.Context, hash string) error

// Options configures a range iteration.
type Options struct {
	Dir       string
	Range     string
	KeepGoing bool // continue past action failures instead of aborting
}

// Run walks the range oldest first. A checkout failure is always fatal.
// An action failure prints the commit's stat summary and aborts unless
// KeepGoing is set. The original branch or commit is restored on every
// exit path, including cancellation.
func Run(ctx context.Context, opts Options, action Action) (err error) {
	commits, err := git.RevList(ctx, opts.Dir, opts.Range)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return fmt.Errorf("range %q contains no commits", opts.Range)
	}

	l := log.FromContext(ctx)
	l.Debug("iterating range", "range", opts.Range, "commits", len(commits))

	guard, err := git.NewGuard(ctx, opts.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if restoreErr := guard.Restore(ctx); restoreErr != nil {
			l.Printf("Warning: could not restore %s: %v\n", guard.Ref(), restoreErr)
		}
	}()

	var failures int
	for i, hash := range commits {
		if ctx.Err() != nil {
			return ErrInterrupted
		}

		short := hash
		if s, err := git.ShortHash(ctx, opts.Dir, hash); err == nil {
			short = s
		}
		l.Printf("[%d/%d] %s\n", i+1, len(commits), short)

		if err := git.Checkout(ctx, opts.Dir, hash); err != nil {
			if ctx.Err() != nil {
				return ErrInterrupted
			}
			return err
		}

		if err := action(ctx, hash); err != nil {
			if ctx.Err() != nil {
				// User interrupted a long step: not a failure.
				return ErrInterrupted
			}

			if stat, statErr := git.StatSummary(ctx, opts.Dir, hash); statErr == nil {
				l.Printf("%s\n", stat)
			}

			if !opts.KeepGoing {
				return fmt.Errorf("commit %s: %w", short, err)
			}
			failures++
		}
	}

	if failures > 0 {
		l.Printf("%d of %d commits failed\n", failures, len(commits))
	}
	return nil
}
