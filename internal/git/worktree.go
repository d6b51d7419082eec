package git

import (
	"context"
	"fmt"
	"strings"
)

// CurrentRef returns the checked-out branch name, or the full commit
// hash when HEAD is detached.
func CurrentRef(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("read current branch: %v", err)
	}
	if branch := strings.TrimSpace(string(out)); branch != "" {
		return branch, nil
	}

	// Detached HEAD: remember the exact commit instead.
	out, err = outputGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("read HEAD: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Checkout checks out a revision into the working tree.
func Checkout(ctx context.Context, dir, rev string) error {
	if err := runGit(ctx, dir, "checkout", "--quiet", rev); err != nil {
		return fmt.Errorf("checkout %s: %v", rev, err)
	}
	return nil
}

// ResetHard discards all tracked changes in the working tree.
func ResetHard(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "reset", "--hard"); err != nil {
		return fmt.Errorf("reset: %v", err)
	}
	return nil
}

// Clean removes untracked files and directories, including ignored ones.
// Destructive; callers must require explicit opt-in.
func Clean(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "clean", "-dfx", "--quiet"); err != nil {
		return fmt.Errorf("clean: %v", err)
	}
	return nil
}
