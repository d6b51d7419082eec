// Package view materializes upstream/downstream patch pairs as files and
// hands them to an external diff viewer.
package view

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/lbergmann/backport/internal/scan"
)

// Pair is one materialized upstream/downstream patch pair on disk.
type Pair struct {
	Seq        int
	ShortHash  string
	Subject    string
	Upstream   string // path of the upstream patch file
	Downstream string // path of the downstream patch file
}

// Materialize writes the patches of every queued result into a fresh
// directory. The directory is not cleaned up on exit so that the replay
// commands printed at the end of a run keep working.
func Materialize(results []scan.Result) (string, []Pair, error) {
	dir, err := os.MkdirTemp("", "backport-diff-*")
	if err != nil {
		return "", nil, fmt.Errorf("create patch directory: %w", err)
	}

	pairs := make([]Pair, 0, len(results))
	for i, r := range results {
		prefix := fmt.Sprintf("%02d-%s", i+1, r.ShortHash)
		p := Pair{
			Seq:        r.Seq,
			ShortHash:  r.ShortHash,
			Subject:    r.Subject,
			Upstream:   filepath.Join(dir, prefix+"-upstream.patch"),
			Downstream: filepath.Join(dir, prefix+"-downstream.patch"),
		}
		if err := os.WriteFile(p.Upstream, []byte(r.UpstreamPatch), 0644); err != nil {
			return "", nil, fmt.Errorf("write %s: %w", p.Upstream, err)
		}
		if err := os.WriteFile(p.Downstream, []byte(r.DownstreamPatch), 0644); err != nil {
			return "", nil, fmt.Errorf("write %s: %w", p.Downstream, err)
		}
		pairs = append(pairs, p)
	}

	return dir, pairs, nil
}

// Launch opens the diff viewer on one pair and waits for it to exit.
// The viewer inherits the terminal so interactive tools work.
func Launch(ctx context.Context, tool string, p Pair) error {
	c := exec.CommandContext(ctx, tool, p.Upstream, p.Downstream)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	return nil
}

// ReplayCommand returns the shell command that reopens the viewer on a
// pair, quoted so it can be pasted into a shell as-is.
func ReplayCommand(tool string, p Pair) string {
	return shellquote.Join(tool, p.Upstream, p.Downstream)
}
