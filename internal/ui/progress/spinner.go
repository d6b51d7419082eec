// Package progress shows activity during long-running scans.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

type messageMsg string

type spinnerModel struct {
	spinner spinner.Model
	message string
	msgs    chan string
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextMessage())
}

func (m spinnerModel) nextMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgs
		if !ok {
			return tea.Quit()
		}
		return messageMsg(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageMsg:
		m.message = string(msg)
		return m, m.nextMessage()
	case tea.KeyPressMsg:
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// Spinner is a non-interactive activity indicator. It renders to
// stderr so stdout stays clean for the report.
type Spinner struct {
	mu      sync.Mutex
	program *tea.Program
	msgs    chan string
	done    chan struct{}
	running bool
	message string
}

// NewSpinner creates a spinner with an initial message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		msgs:    make(chan string, 16),
		done:    make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := spinnerModel{spinner: sp, message: s.message, msgs: s.msgs}
	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))
	s.running = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// Update replaces the message. Updates may be dropped when they arrive
// faster than the terminal renders; the scan must never block on the UI.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		s.message = message
		return
	}
	select {
	case s.msgs <- message:
	default:
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.msgs)
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}
	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(os.Stderr, "\r\033[K")
}
