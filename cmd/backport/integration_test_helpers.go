//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/log"
	"github.com/lbergmann/backport/internal/output"
	"github.com/lbergmann/backport/internal/ui/styles"
)

// runGitCommand runs a command in dir and fails the test on error.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// commitFile writes a file and commits it with the given subject.
func commitFile(t *testing.T, dir, name, content, subject string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGitCommand(t, dir, "git", "add", name)
	runGitCommand(t, dir, "git", "commit", "-m", subject)
}

// setupBackportRepo creates a repo with an upstream branch and a main
// branch carrying backports of it:
//
//	upstream: "fix X" (identical), "fix Y" (edited downstream), "fix Z"
//	main:     "fix X", "fix Y" (edited), "local only"
//
// Returns the repo path with symlinks resolved.
func setupBackportRepo(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	runGitCommand(t, dir, "git", "init", "-b", "main")
	runGitCommand(t, dir, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, dir, "git", "config", "user.name", "Test User")
	runGitCommand(t, dir, "git", "config", "commit.gpgsign", "false")

	commitFile(t, dir, "base.txt", "base\n", "initial commit")

	runGitCommand(t, dir, "git", "checkout", "-b", "upstream")
	commitFile(t, dir, "x.txt", "fix for X\n", "fix X")
	commitFile(t, dir, "y.txt", "fix for Y\n", "fix Y")
	commitFile(t, dir, "z.txt", "fix for Z\n", "fix Z")

	runGitCommand(t, dir, "git", "checkout", "main")
	commitFile(t, dir, "x.txt", "fix for X\n", "fix X")
	commitFile(t, dir, "y.txt", "fix for Y, adjusted\n", "fix Y")
	commitFile(t, dir, "local.txt", "downstream only\n", "local only")

	return dir
}

// testContext builds a context carrying a quiet logger and a printer
// writing into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&out, false, false))
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}

// setGlobals points the command globals at the test repo. Tests using
// this must not run in parallel.
func setGlobals(t *testing.T, dir string) {
	t.Helper()

	prevWorkDir, prevCfg, prevQuiet := workDir, cfg, quiet
	workDir = dir
	cfg = config.Default()
	quiet = true
	styles.Init("never", nil)
	t.Cleanup(func() {
		workDir, cfg, quiet = prevWorkDir, prevCfg, prevQuiet
		styles.Init("always", nil)
	})
}
