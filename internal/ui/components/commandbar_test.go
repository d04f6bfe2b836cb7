package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCommandBar_ActivateStartsWithColon(t *testing.T) {
	bar := NewCommandBar()
	bar.Activate()

	if !bar.IsActive() {
		t.Fatal("expected active command bar")
	}
	if bar.Value() != ":" {
		t.Errorf("Value() = %q, want \":\"", bar.Value())
	}
}

func TestCommandBar_SubmitRecordsHistory(t *testing.T) {
	bar := NewCommandBar()

	for _, cmd := range []string{":refresh", ":refresh", ":logs", ":"} {
		bar.Activate()
		bar.textInput.SetValue(cmd)
		if got := bar.Submit(); got != cmd {
			t.Errorf("Submit() = %q, want %q", got, cmd)
		}
		if bar.IsActive() {
			t.Error("expected bar closed after submit")
		}
	}

	history := bar.History()
	if len(history) != 2 || history[0] != ":refresh" || history[1] != ":logs" {
		t.Errorf("History() = %v", history)
	}
}

func TestCommandBar_UpDownWalksHistory(t *testing.T) {
	bar := NewCommandBar()
	for _, cmd := range []string{":one", ":two"} {
		bar.Activate()
		bar.textInput.SetValue(cmd)
		bar.Submit()
	}

	bar.Activate()
	bar.Update(tea.KeyMsg{Type: tea.KeyUp})
	if bar.Value() != ":two" {
		t.Errorf("after up: %q", bar.Value())
	}
	bar.Update(tea.KeyMsg{Type: tea.KeyUp})
	bar.Update(tea.KeyMsg{Type: tea.KeyUp})
	if bar.Value() != ":one" {
		t.Errorf("after up past start: %q", bar.Value())
	}
	bar.Update(tea.KeyMsg{Type: tea.KeyDown})
	bar.Update(tea.KeyMsg{Type: tea.KeyDown})
	if bar.Value() != ":" {
		t.Errorf("after down past end: %q", bar.Value())
	}
}
