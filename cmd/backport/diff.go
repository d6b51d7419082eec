package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/lbergmann/backport/internal/config"
	"github.com/lbergmann/backport/internal/git"
	"github.com/lbergmann/backport/internal/log"
	"github.com/lbergmann/backport/internal/output"
	"github.com/lbergmann/backport/internal/scan"
	"github.com/lbergmann/backport/internal/ui/progress"
	"github.com/lbergmann/backport/internal/ui/prompt"
	"github.com/lbergmann/backport/internal/ui/styles"
	"github.com/lbergmann/backport/internal/view"
)

type diffOptions struct {
	upstream    string
	rangeExpr   string
	sensitivity int // -1 = not set on the command line
	tool        string
	summary     bool
	noPause     bool
	pick        bool
	copy        bool
}

func runDiff(ctx context.Context, opts diffOptions) error {
	if err := requireRepo(ctx); err != nil {
		return err
	}

	eff, err := effectiveConfig(ctx)
	if err != nil {
		return err
	}

	// Flags win over persisted and global values.
	if opts.upstream != "" {
		eff.Upstream = opts.upstream
	}
	if opts.tool != "" {
		eff.Difftool = opts.tool
	}
	if opts.sensitivity >= 0 {
		eff.Sensitivity = opts.sensitivity
	}
	if opts.noPause {
		eff.Pause = false
	}

	if eff.Upstream == "" {
		return fmt.Errorf("no upstream configured (use -u or set %s)", config.KeyUpstream)
	}

	rangeExpr := opts.rangeExpr
	if rangeExpr == "" {
		rangeExpr = eff.Upstream + "..HEAD"
	}

	// Validate the upstream before anything is persisted.
	if err := git.VerifyRef(ctx, workDir, eff.Upstream); err != nil {
		return err
	}

	// The first run persists resolved flag values as repo defaults.
	if err := config.Seed(ctx, workDir, config.KeyUpstream, opts.upstream); err != nil {
		return err
	}
	if err := config.Seed(ctx, workDir, config.KeyDifftool, opts.tool); err != nil {
		return err
	}
	if opts.sensitivity >= 0 {
		if err := config.Seed(ctx, workDir, config.KeySensitivity, strconv.Itoa(opts.sensitivity)); err != nil {
			return err
		}
	}

	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	spin := progress.NewSpinner("scanning " + rangeExpr)
	if !quiet && isatty.IsTerminal(os.Stderr.Fd()) {
		spin.Start()
	}
	results, err := scan.Run(ctx,
		scan.Options{Dir: workDir, Range: rangeExpr, Upstream: eff.Upstream},
		func(seq, total int, subject string) {
			spin.Update(fmt.Sprintf("scanning %04d/%04d: %s", seq, total, subject))
		})
	spin.Stop()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("range %q contains no commits", rangeExpr)
	}

	var identical, functional, contextual, downstreamOnly int
	for _, r := range results {
		out.Println(reportLine(r))
		switch r.Class {
		case scan.Identical:
			identical++
		case scan.Functional:
			functional++
		case scan.Contextual:
			contextual++
		case scan.DownstreamOnly:
			downstreamOnly++
		}
	}
	l.Printf("%d commits: %d identical, %d functional, %d contextual only, %d downstream only\n",
		len(results), identical, functional, contextual, downstreamOnly)

	queued := scan.Queue(results, eff.Sensitivity)
	if len(queued) == 0 {
		l.Printf("Nothing to view at sensitivity %d\n", eff.Sensitivity)
		return nil
	}
	if opts.summary {
		return nil
	}

	if opts.pick {
		if !interactive() {
			return fmt.Errorf("--pick needs a terminal")
		}
		options := make([]string, len(queued))
		preselected := make([]int, len(queued))
		for i, r := range queued {
			options[i] = reportText(r)
			preselected[i] = i
		}
		res, err := prompt.Pick("Pick the pairs to view", options, preselected)
		if err != nil {
			return err
		}
		if res.Cancelled {
			return nil
		}
		picked := make([]scan.Result, 0, len(res.Selected))
		for _, i := range res.Selected {
			picked = append(picked, queued[i])
		}
		queued = picked
		if len(queued) == 0 {
			return nil
		}
	}

	dir, pairs, err := view.Materialize(queued)
	if err != nil {
		return err
	}
	l.Debug("materialized patch pairs", "dir", dir, "pairs", len(pairs))

	for i, p := range pairs {
		if eff.Pause && interactive() {
			res, err := prompt.Confirm(fmt.Sprintf("View %s '%s' (%d/%d)?", p.ShortHash, p.Subject, i+1, len(pairs)))
			if err != nil {
				return err
			}
			if res.Cancelled {
				break
			}
			if !res.Confirmed {
				continue
			}
		}
		if err := view.Launch(ctx, eff.Difftool, p); err != nil {
			return err
		}
	}

	replay := make([]string, len(pairs))
	for i, p := range pairs {
		replay[i] = view.ReplayCommand(eff.Difftool, p)
	}
	l.Println("Replay a comparison with:")
	for _, c := range replay {
		out.Println(c)
	}

	if opts.copy {
		if err := clipboard.WriteAll(strings.Join(replay, "\n")); err != nil {
			l.Printf("Warning: could not copy to clipboard: %v\n", err)
		} else {
			l.Println("Replay commands copied to clipboard")
		}
	}

	return nil
}

// reportText renders one unstyled report line:
// 0003/0009:[0012] [FC] 'subject'.
func reportText(r scan.Result) string {
	return fmt.Sprintf("%04d/%04d:%s [%s] '%s'", r.Seq, r.Total, r.Badge(), r.Flags(), r.Subject)
}

// reportLine renders the styled report line for the terminal.
func reportLine(r scan.Result) string {
	line := reportText(r)
	switch r.Class {
	case scan.Functional:
		return styles.ErrorStyle.Render(line)
	case scan.Contextual:
		return styles.WarningStyle.Render(line)
	case scan.DownstreamOnly:
		return styles.InfoStyle.Render(line)
	default:
		return styles.MutedStyle.Render(line)
	}
}

// interactive reports whether prompts can be shown.
func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}
