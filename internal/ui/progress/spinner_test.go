package progress

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestSpinnerModel_MessageUpdate(t *testing.T) {
	t.Parallel()

	m := spinnerModel{msgs: make(chan string, 1)}
	updated, cmd := m.Update(messageMsg("scanning 0002/0009"))
	um := updated.(spinnerModel)

	if um.message != "scanning 0002/0009" {
		t.Errorf("message = %q", um.message)
	}
	if cmd == nil {
		t.Error("expected a follow-up command waiting for the next message")
	}
}

func TestSpinnerModel_View(t *testing.T) {
	t.Parallel()

	m := spinnerModel{}
	if v := m.View(); fmt.Sprint(v.Content) != "" {
		t.Errorf("empty message View() = %q, want empty", fmt.Sprint(v.Content))
	}

	m.message = "scanning"
	if v := m.View(); fmt.Sprint(v.Content) == "" {
		t.Error("View() with message should not be empty")
	}
}

func TestSpinnerModel_KeyQuits(t *testing.T) {
	t.Parallel()

	m := spinnerModel{msgs: make(chan string)}
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x'})
	if cmd == nil {
		t.Error("key press should produce a quit command")
	}
}

func TestSpinner_UpdateBeforeStart(t *testing.T) {
	t.Parallel()

	s := NewSpinner("starting")
	s.Update("later message")
	if s.message != "later message" {
		t.Errorf("message = %q, want the buffered update", s.message)
	}

	// Stop before Start is a no-op.
	s.Stop()
}
