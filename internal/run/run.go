// Package run executes the user-supplied shell command of the foreach
// command against each checked-out commit.
package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"
)

// Options configures a foreach runner.
type Options struct {
	Command string // shell expression, evaluated via sh -c
	LogDir  string // "" means current directory
	LogFile string
}

// LogPath resolves the log file location from Options.
func (o Options) LogPath() string {
	name := o.LogFile
	if name == "" {
		name = "foreach.log"
	}
	return filepath.Join(o.LogDir, name)
}

// Join builds the shell expression from argv-style arguments, quoting
// where needed so the expression round-trips through sh -c.
func Join(args []string) string {
	return shellquote.Join(args...)
}

// Runner evaluates the command for each commit, streaming combined
// output live while also appending it to the log file.
type Runner struct {
	dir  string
	opts Options
	logf *os.File
	out  io.Writer
}

// New opens the log file for appending. Output is streamed to out in
// addition to the log.
func New(dir string, opts Options, out io.Writer) (*Runner, error) {
	if opts.Command == "" {
		return nil, fmt.Errorf("no command specified")
	}

	logf, err := os.OpenFile(opts.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Runner{dir: dir, opts: opts, logf: logf, out: out}, nil
}

// Close closes the log file.
func (r *Runner) Close() error {
	return r.logf.Close()
}

// Step evaluates the command with the commit checked out. The command
// runs in the repository directory with sh -c semantics; stdout and
// stderr go to both the log file and the live writer.
func (r *Runner) Step(ctx context.Context, hash string) error {
	fmt.Fprintf(r.logf, "\n=== %s (%s) ===\n", hash, time.Now().Format(time.RFC3339))

	w := io.MultiWriter(r.logf, r.out)
	c := exec.CommandContext(ctx, "sh", "-c", r.opts.Command)
	c.Dir = r.dir
	c.Stdout = w
	c.Stderr = w
	return c.Run()
}
