// Package patch compares two versions of the same patch, the way a
// backport reviewer would: once looking only at what the patch changes
// (functional), and once at the full patch text with location noise
// stripped (contextual).
package patch

import (
	"strings"

	"github.com/ianbruene/go-difflib/difflib"
)

// ContentLines extracts the added/removed content lines of a unified
// diff: everything starting with exactly one '+' or '-'. The +++/---
// file headers are excluded.
func ContentLines(patch string) []string {
	var lines []string
	for _, line := range splitLines(patch) {
		if len(line) == 0 {
			continue
		}
		if line[0] != '+' && line[0] != '-' {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// StripContext returns the full patch minus the lines that legitimately
// drift between an upstream commit and its backport: hunk-location
// headers (@@ ... @@), index/object-hash lines, and the diff --git and
// mode lines. Context lines stay in, so a patch applied at a different
// spot still compares equal while genuinely different surroundings do not.
func StripContext(patch string) []string {
	var lines []string
	for _, line := range splitLines(patch) {
		switch {
		case strings.HasPrefix(line, "@@"):
		case strings.HasPrefix(line, "index "):
		case strings.HasPrefix(line, "diff --git"):
		case strings.HasPrefix(line, "old mode "), strings.HasPrefix(line, "new mode "):
		case strings.HasPrefix(line, "similarity index "), strings.HasPrefix(line, "dissimilarity index "):
		default:
			lines = append(lines, line)
		}
	}
	return lines
}

// Count returns the number of lines that differ between a and b, which
// matches the <-/>-line count of a classic diff. Zero means the two
// sequences are identical in content and order.
func Count(a, b []string) int {
	m := difflib.NewMatcher(a, b)
	n := 0
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		n += (op.I2 - op.I1) + (op.J2 - op.J1)
	}
	return n
}

// Unified renders a unified diff between the two filtered line sets,
// for logging a comparison without launching a viewer.
func Unified(a, b []string, fromLabel, toLabel string) string {
	diff := difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

// splitLines splits on newlines without producing a trailing empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
