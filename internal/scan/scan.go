// Package scan implements the backport comparison: walking a downstream
// commit range, pairing each commit with its upstream counterpart by
// subject line, and measuring how far the two patches have drifted.
package scan

import (
	"context"
	"fmt"

	"github.com/lbergmann/backport/internal/git"
	"github.com/lbergmann/backport/internal/log"
	"github.com/lbergmann/backport/internal/patch"
)

// Class is the terminal classification of a downstream commit.
// Every commit ends in exactly one class and is reported once.
type Class int

const (
	// Identical: an upstream match exists and both measures are zero.
	Identical Class = iota
	// Functional: the added/removed content lines differ.
	Functional
	// Contextual: content lines match but the surrounding patch text
	// (context lines) does not.
	Contextual
	// DownstreamOnly: no upstream commit shares this subject.
	DownstreamOnly
)

func (c Class) String() string {
	switch c {
	case Identical:
		return "identical"
	case Functional:
		return "functionally different"
	case Contextual:
		return "contextually different only"
	case DownstreamOnly:
		return "downstream only"
	default:
		return "unknown"
	}
}

// Result is the comparison outcome for one downstream commit.
type Result struct {
	Seq   int // 1-based position in the range
	Total int

	Hash      string
	ShortHash string
	Subject   string

	UpstreamHash string // empty for DownstreamOnly

	Class           Class
	FunctionalCount int
	ContextualCount int

	UpstreamPatch   string
	DownstreamPatch string
}

// Badge renders the fixed-width difference marker used in report lines:
// [----] for identical pairs, [down] for downstream-only commits, and
// the functional diff count otherwise.
func (r Result) Badge() string {
	switch r.Class {
	case Identical:
		return "[----]"
	case DownstreamOnly:
		return "[down]"
	default:
		return fmt.Sprintf("[%04d]", r.FunctionalCount)
	}
}

// Flags renders the two-character functional/contextual marker.
func (r Result) Flags() string {
	f, c := byte('-'), byte('-')
	if r.FunctionalCount > 0 {
		f = 'F'
	}
	if r.ContextualCount > 0 {
		c = 'C'
	}
	return string([]byte{f, c})
}

// Options configures a scan.
type Options struct {
	Dir      string // repository path, "" for cwd
	Range    string // downstream range expression
	Upstream string // upstream ref to search for counterparts
}

// Progress is called before each commit is compared.
type Progress func(seq, total int, subject string)

// Run compares every commit in the downstream range, oldest first,
// against its subject-matched upstream counterpart. The working tree is
// never touched; everything is read through history queries.
func Run(ctx context.Context, opts Options, progress Progress) ([]Result, error) {
	if err := git.VerifyRef(ctx, opts.Dir, opts.Upstream); err != nil {
		return nil, err
	}

	commits, err := git.RevList(ctx, opts.Dir, opts.Range)
	if err != nil {
		return nil, err
	}

	index, err := git.SubjectIndex(ctx, opts.Dir, opts.Upstream)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	l.Debug("scanning range", "range", opts.Range, "commits", len(commits), "upstream", opts.Upstream)

	results := make([]Result, 0, len(commits))
	for i, hash := range commits {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r := Result{Seq: i + 1, Total: len(commits), Hash: hash}

		r.Subject, err = git.Subject(ctx, opts.Dir, hash)
		if err != nil {
			return results, err
		}
		r.ShortHash, err = git.ShortHash(ctx, opts.Dir, hash)
		if err != nil {
			return results, err
		}

		if progress != nil {
			progress(r.Seq, r.Total, r.Subject)
		}

		upstream, ok := index[r.Subject]
		if !ok {
			r.Class = DownstreamOnly
			results = append(results, r)
			continue
		}
		r.UpstreamHash = upstream

		r.DownstreamPatch, err = git.Patch(ctx, opts.Dir, hash)
		if err != nil {
			return results, err
		}
		r.UpstreamPatch, err = git.Patch(ctx, opts.Dir, upstream)
		if err != nil {
			return results, err
		}

		r.FunctionalCount = patch.Count(
			patch.ContentLines(r.UpstreamPatch),
			patch.ContentLines(r.DownstreamPatch),
		)
		r.ContextualCount = patch.Count(
			patch.StripContext(r.UpstreamPatch),
			patch.StripContext(r.DownstreamPatch),
		)
		r.Class = Classify(r.FunctionalCount, r.ContextualCount)

		results = append(results, r)
	}

	return results, nil
}

// Classify maps the two diff measures onto a terminal class.
func Classify(functional, contextual int) Class {
	switch {
	case functional > 0:
		return Functional
	case contextual > 0:
		return Contextual
	default:
		return Identical
	}
}

// Queue selects the results worth opening in a viewer for the given
// sensitivity: 0 queues functionally different pairs, 1 additionally
// queues contextually-different-only pairs, 2 and above queue every
// matched pair. Downstream-only commits have nothing to view.
func Queue(results []Result, sensitivity int) []Result {
	var queued []Result
	for _, r := range results {
		if r.Class == DownstreamOnly {
			continue
		}
		switch {
		case r.Class == Functional:
			queued = append(queued, r)
		case r.Class == Contextual && sensitivity >= 1:
			queued = append(queued, r)
		case r.Class == Identical && sensitivity >= 2:
			queued = append(queued, r)
		}
	}
	return queued
}
