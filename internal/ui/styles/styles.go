// Package styles provides shared lipgloss styles for terminal output.
package styles

import (
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// Colors of the report palette.
var (
	// Accent highlights selected/active items (pink)
	Accent = lipgloss.Color("212")

	// Success is used for positive outcomes (green)
	Success = lipgloss.Color("82")

	// Error is used for error messages and functional differences (red)
	Error = lipgloss.Color("196")

	// Warning is used for contextual-only differences (orange)
	Warning = lipgloss.Color("214")

	// Muted is used for identical commits and de-emphasized text (gray)
	Muted = lipgloss.Color("240")

	// Info is used for downstream-only commits (blue)
	Info = lipgloss.Color("75")
)

// Styles applied to report lines and messages.
var (
	Bold         lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
)

func init() {
	apply(true)
}

// Enabled decides whether styled output is on for the given mode
// ("auto", "always", "never") and output file.
func Enabled(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return false
	}
	// Detect handles NO_COLOR, TERM=dumb and friends.
	profile := colorprofile.Detect(out, os.Environ())
	return profile != colorprofile.NoTTY && profile != colorprofile.Ascii
}

// Init configures the package styles for the given color mode and
// output. Call once before rendering any output.
func Init(mode string, out *os.File) {
	apply(Enabled(mode, out))
}

// apply sets every style variable. With styling off even bold is
// dropped so piped output stays byte-clean.
func apply(colored bool) {
	if !colored {
		plain := lipgloss.NewStyle()
		Bold = plain
		AccentStyle = plain
		SuccessStyle = plain
		ErrorStyle = plain
		WarningStyle = plain
		MutedStyle = plain
		InfoStyle = plain
		return
	}

	Bold = lipgloss.NewStyle().Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
	InfoStyle = lipgloss.NewStyle().Foreground(Info)
}
