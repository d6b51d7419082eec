package prompt

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/lbergmann/backport/internal/ui/styles"
)

// PickResult holds the result of a multi-select prompt.
type PickResult struct {
	Selected  []int // indices into the original options, in option order
	Cancelled bool
}

// Filter returns the options matching the filter, ranked best-first.
// An empty filter keeps every option in its original order.
func Filter(filter string, options []string) []fuzzy.Match {
	if filter == "" {
		matches := make([]fuzzy.Match, len(options))
		for i, opt := range options {
			matches[i] = fuzzy.Match{Str: opt, Index: i}
		}
		return matches
	}
	return fuzzy.Find(filter, options)
}

type pickModel struct {
	prompt    string
	options   []string
	input     textinput.Model
	matches   []fuzzy.Match
	cursor    int
	chosen    map[int]bool
	done      bool
	cancelled bool
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "space":
			if m.cursor >= 0 && m.cursor < len(m.matches) {
				idx := m.matches[m.cursor].Index
				m.chosen[idx] = !m.chosen[idx]
			}
			return m, nil
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	// Everything else edits the filter.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.matches = Filter(m.input.Value(), m.options)
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
	return m, cmd
}

func (m pickModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(styles.Bold.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	maxVisible := 15
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.matches))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		idx := m.matches[i].Index

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ] "
		if m.chosen[idx] {
			check = "[x] "
		}

		line := m.options[idx]
		switch {
		case i == m.cursor:
			line = styles.AccentStyle.Render(line)
		case m.chosen[idx]:
			line = styles.SuccessStyle.Render(line)
		}
		b.WriteString(cursor + check + line + "\n")
	}
	if end < len(m.matches) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching commits") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ move • space toggle • type to filter • enter confirm • esc cancel"))
	return tea.NewView(b.String())
}

// Pick shows a fuzzy-filterable multi-select and returns the chosen
// option indices. Nothing chosen is a valid result, not a cancel.
func Pick(prompt string, options []string, preselected []int) (PickResult, error) {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Focus()

	chosen := make(map[int]bool, len(preselected))
	for _, i := range preselected {
		chosen[i] = true
	}

	model := pickModel{
		prompt:  prompt,
		options: options,
		input:   input,
		matches: Filter("", options),
		chosen:  chosen,
	}
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return PickResult{}, err
	}
	m := finalModel.(pickModel)

	if m.cancelled {
		return PickResult{Cancelled: true}, nil
	}

	var selected []int
	for i := range options {
		if m.chosen[i] {
			selected = append(selected, i)
		}
	}
	return PickResult{Selected: selected}, nil
}
