//go:build integration

package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestRepo creates a git repo with an initial commit on main.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		runTestGit(t, dir, args...)
	}

	writeFile(t, dir, "README.md", "# test\n")
	runTestGit(t, dir, "git", "add", "README.md")
	runTestGit(t, dir, "git", "commit", "-m", "Initial commit")

	return dir
}

// commitFile writes content to name and commits it with the given subject.
func commitFile(t *testing.T, dir, name, content, subject string) {
	t.Helper()
	writeFile(t, dir, name, content)
	runTestGit(t, dir, "git", "add", name)
	runTestGit(t, dir, "git", "commit", "-m", subject)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	c := exec.Command(args[0], args[1:]...)
	c.Dir = dir
	out, err := c.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func TestRevList(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commitFile(t, dir, "a.txt", "a\n", "add a")
	commitFile(t, dir, "b.txt", "b\n", "add b")
	commitFile(t, dir, "c.txt", "c\n", "add c")

	commits, err := RevList(ctx, dir, "HEAD~3..HEAD")
	if err != nil {
		t.Fatalf("RevList() error = %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("RevList() returned %d commits, want 3", len(commits))
	}

	// Oldest first: subjects must come back in commit order.
	want := []string{"add a", "add b", "add c"}
	for i, hash := range commits {
		subject, err := Subject(ctx, dir, hash)
		if err != nil {
			t.Fatalf("Subject(%s) error = %v", hash, err)
		}
		if subject != want[i] {
			t.Errorf("commit %d subject = %q, want %q", i, subject, want[i])
		}
	}
}

func TestRevList_EmptyRange(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commits, err := RevList(ctx, dir, "HEAD..HEAD")
	if err != nil {
		t.Fatalf("RevList() error = %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("RevList(HEAD..HEAD) = %v, want empty", commits)
	}
}

func TestVerifyRef(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	if err := VerifyRef(ctx, dir, "HEAD"); err != nil {
		t.Errorf("VerifyRef(HEAD) = %v, want nil", err)
	}

	err := VerifyRef(ctx, dir, "no-such-branch")
	if err == nil {
		t.Fatal("VerifyRef(no-such-branch) = nil, want error")
	}
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commitFile(t, dir, "a.txt", "hello\n", "add a")

	patch, err := Patch(ctx, dir, "HEAD")
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if !strings.Contains(patch, "+hello") {
		t.Errorf("Patch() = %q, want it to contain the added line", patch)
	}
	if !strings.Contains(patch, "diff --git") {
		t.Errorf("Patch() = %q, want a unified diff", patch)
	}
}

func TestStatSummary(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commitFile(t, dir, "a.txt", "hello\n", "add a")

	stat, err := StatSummary(ctx, dir, "HEAD")
	if err != nil {
		t.Fatalf("StatSummary() error = %v", err)
	}
	if !strings.Contains(stat, "add a") || !strings.Contains(stat, "a.txt") {
		t.Errorf("StatSummary() = %q, want subject and file name", stat)
	}
}

func TestSubjectIndex_NewestMatchWins(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commitFile(t, dir, "a.txt", "one\n", "fix X")
	commitFile(t, dir, "a.txt", "two\n", "fix X")

	newest := strings.TrimSpace(runTestGit(t, dir, "git", "rev-parse", "HEAD"))

	idx, err := SubjectIndex(ctx, dir, "HEAD")
	if err != nil {
		t.Fatalf("SubjectIndex() error = %v", err)
	}
	if got := idx["fix X"]; got != newest {
		t.Errorf("SubjectIndex()[fix X] = %s, want newest commit %s", got, newest)
	}
	if _, ok := idx["Initial commit"]; !ok {
		t.Error("SubjectIndex() is missing the initial commit")
	}
}

func TestGuard_RestoresBranch(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	commitFile(t, dir, "a.txt", "a\n", "add a")

	g, err := NewGuard(ctx, dir)
	if err != nil {
		t.Fatalf("NewGuard() error = %v", err)
	}
	if g.Ref() != "main" {
		t.Fatalf("Guard captured %q, want main", g.Ref())
	}

	if err := Checkout(ctx, dir, "HEAD~1"); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if err := g.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	ref, err := CurrentRef(ctx, dir)
	if err != nil {
		t.Fatalf("CurrentRef() error = %v", err)
	}
	if ref != "main" {
		t.Errorf("after Restore, ref = %q, want main", ref)
	}

	// Second restore is a no-op.
	if err := g.Restore(ctx); err != nil {
		t.Errorf("second Restore() = %v, want nil", err)
	}
}

func TestGuard_DetachedHead(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	hash := strings.TrimSpace(runTestGit(t, dir, "git", "rev-parse", "HEAD"))
	runTestGit(t, dir, "git", "checkout", "--detach", "HEAD")

	g, err := NewGuard(ctx, dir)
	if err != nil {
		t.Fatalf("NewGuard() error = %v", err)
	}
	if g.Ref() != hash {
		t.Errorf("Guard captured %q, want detached hash %s", g.Ref(), hash)
	}
}

func TestConfigStore(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	if v, _ := ConfigGet(ctx, dir, "backport.upstream"); v != "" {
		t.Errorf("ConfigGet(unset) = %q, want empty", v)
	}

	if err := ConfigSetIfUnset(ctx, dir, "backport.upstream", "origin/master"); err != nil {
		t.Fatalf("ConfigSetIfUnset() error = %v", err)
	}
	if v, _ := ConfigGet(ctx, dir, "backport.upstream"); v != "origin/master" {
		t.Errorf("ConfigGet() = %q, want origin/master", v)
	}

	// Seeding never overwrites an existing value.
	if err := ConfigSetIfUnset(ctx, dir, "backport.upstream", "other"); err != nil {
		t.Fatalf("ConfigSetIfUnset() error = %v", err)
	}
	if v, _ := ConfigGet(ctx, dir, "backport.upstream"); v != "origin/master" {
		t.Errorf("ConfigGet() after reseed = %q, want origin/master", v)
	}

	all := ConfigAll(ctx, dir)
	if all["backport.upstream"] != "origin/master" {
		t.Errorf("ConfigAll() = %v, want backport.upstream entry", all)
	}
}

func TestCleanAndReset(t *testing.T) {
	ctx := context.Background()
	dir := setupTestRepo(t)

	// Untracked file removed by Clean.
	writeFile(t, dir, "junk.o", "junk\n")
	if err := Clean(ctx, dir); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "junk.o")); !os.IsNotExist(err) {
		t.Error("Clean() left untracked file behind")
	}

	// Tracked modification removed by ResetHard.
	writeFile(t, dir, "README.md", "modified\n")
	if err := ResetHard(ctx, dir); err != nil {
		t.Fatalf("ResetHard() error = %v", err)
	}
	content, _ := os.ReadFile(filepath.Join(dir, "README.md"))
	if string(content) != "# test\n" {
		t.Errorf("ResetHard() left content %q", content)
	}
}
