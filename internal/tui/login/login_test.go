// ABOUTME: Tests for the login and registration screens
// ABOUTME: Covers screen switching and error display

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestLoginSwitchesToRegister(t *testing.T) {
	l := New()
	l.Init()

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	for _, msg := range runCmd(cmd) {
		if s, ok := msg.(SwitchMsg); ok {
			if !s.ToRegister {
				t.Error("expected a switch to the register screen")
			}
			return
		}
	}
	t.Fatal("expected a switch message")
}

func TestRegisterSwitchesBack(t *testing.T) {
	r := NewRegister()
	r.Init()

	_, cmd := r.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	for _, msg := range runCmd(cmd) {
		if s, ok := msg.(SwitchMsg); ok {
			if s.ToRegister {
				t.Error("expected a switch back to login")
			}
			return
		}
	}
	t.Fatal("expected a switch message")
}

func TestLoginErrorRendered(t *testing.T) {
	l := New()
	l.Init()
	l.SetError("No active account found with the given credentials")

	if !strings.Contains(l.View(), "No active account") {
		t.Error("expected the error message in the view")
	}
}

func TestRegisterErrorRendered(t *testing.T) {
	r := NewRegister()
	r.Init()
	r.SetError("username: must be at least 3 characters")

	if !strings.Contains(r.View(), "at least 3 characters") {
		t.Error("expected the error message in the view")
	}
}
