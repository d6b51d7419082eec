package git

import (
	"context"
	"fmt"
	"strings"
)

// ErrBadRef indicates a revision that does not resolve to a commit.
var ErrBadRef = fmt.Errorf("invalid revision")

// VerifyRef checks that ref resolves to a commit in the repository at dir.
func VerifyRef(ctx context.Context, dir, ref string) error {
	if err := runGit(ctx, dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
		return fmt.Errorf("%w: %s", ErrBadRef, ref)
	}
	return nil
}

// RevList resolves a range expression into commit hashes, oldest first.
// Range semantics are git's; no parsing happens on our side.
func RevList(ctx context.Context, dir, rangeExpr string) ([]string, error) {
	out, err := outputGit(ctx, dir, "rev-list", "--reverse", rangeExpr)
	if err != nil {
		return nil, fmt.Errorf("resolve range %q: %v", rangeExpr, err)
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// Subject returns the subject line of a commit.
func Subject(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "log", "-1", "--format=%s", rev)
	if err != nil {
		return "", fmt.Errorf("read subject of %s: %v", rev, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ShortHash returns the abbreviated hash of a commit.
func ShortHash(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--short", rev)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %v", rev, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Patch returns the unified diff of a commit against its sole parent.
func Patch(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "show", "--format=", "--no-color", rev)
	if err != nil {
		return "", fmt.Errorf("read patch of %s: %v", rev, err)
	}
	return string(out), nil
}

// StatSummary returns the one-line header and diffstat of a commit,
// used when reporting a failing commit.
func StatSummary(ctx context.Context, dir, rev string) (string, error) {
	out, err := outputGit(ctx, dir, "show", "--stat", "--no-color", "--format=%h %s", rev)
	if err != nil {
		return "", fmt.Errorf("read stat of %s: %v", rev, err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// SubjectIndex walks the history reachable from ref and maps each commit
// subject to a commit hash. git log emits newest first, and the first
// hash seen per subject is kept, so when subjects collide the newest
// matching commit wins. This mirrors the subject-match heuristic of
// backport workflows; it is deliberately not made smarter.
func SubjectIndex(ctx context.Context, dir, ref string) (map[string]string, error) {
	out, err := outputGit(ctx, dir, "log", "--format=%H%x09%s", ref)
	if err != nil {
		return nil, fmt.Errorf("read history of %s: %v", ref, err)
	}

	idx := make(map[string]string)
	for _, line := range strings.Split(string(out), "\n") {
		hash, subject, ok := strings.Cut(line, "\t")
		if !ok || subject == "" {
			continue
		}
		if _, seen := idx[subject]; !seen {
			idx[subject] = hash
		}
	}
	return idx, nil
}
