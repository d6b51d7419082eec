package styles

import (
	"strings"
	"testing"
)

func TestInit_Never(t *testing.T) {
	// Mutates package state, no t.Parallel.
	t.Cleanup(func() { Init("always", nil) })

	Init("never", nil)

	for name, render := range map[string]func(...string) string{
		"error":   ErrorStyle.Render,
		"warning": WarningStyle.Render,
		"muted":   MutedStyle.Render,
		"info":    InfoStyle.Render,
		"bold":    Bold.Render,
	} {
		if got := render("text"); got != "text" {
			t.Errorf("%s style with color off = %q, want plain text", name, got)
		}
	}
}

func TestEnabled(t *testing.T) {
	if Enabled("never", nil) {
		t.Error("Enabled(never) = true, want false")
	}
	if !Enabled("always", nil) {
		t.Error("Enabled(always) = false, want true")
	}
}

func TestInit_NeverIsByteClean(t *testing.T) {
	t.Cleanup(func() { Init("always", nil) })

	Init("never", nil)
	if out := ErrorStyle.Render("0003/0009:[0012]"); strings.ContainsRune(out, '\x1b') {
		t.Errorf("disabled style emitted escape sequences: %q", out)
	}
}
