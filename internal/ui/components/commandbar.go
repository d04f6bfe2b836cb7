package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxHistory = 50

// CommandBarModel is the ":" prompt. Submitted commands are kept in a
// history that up/down walk through.
type CommandBarModel struct {
	textInput textinput.Model
	width     int
	active    bool
	history   []string
	cursor    int
}

func NewCommandBar() *CommandBarModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 256
	ti.Width = 50

	return &CommandBarModel{textInput: ti}
}

func (m *CommandBarModel) SetWidth(width int) {
	m.width = width
	if width > 10 {
		m.textInput.Width = width - 10
	}
}

func (m *CommandBarModel) Activate() {
	m.active = true
	m.cursor = len(m.history)
	m.textInput.Focus()
	m.textInput.SetValue(":")
	m.textInput.CursorEnd()
}

func (m *CommandBarModel) Deactivate() {
	m.active = false
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *CommandBarModel) IsActive() bool {
	return m.active
}

func (m *CommandBarModel) Value() string {
	return m.textInput.Value()
}

// Submit returns the entered command, records it and closes the bar.
func (m *CommandBarModel) Submit() string {
	value := strings.TrimSpace(m.textInput.Value())
	if value != "" && value != ":" {
		if n := len(m.history); n == 0 || m.history[n-1] != value {
			m.history = append(m.history, value)
		}
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
	}
	m.Deactivate()
	return value
}

func (m *CommandBarModel) History() []string {
	return m.history
}

func (m *CommandBarModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.recall()
			}
			return nil
		case tea.KeyDown:
			if m.cursor < len(m.history) {
				m.cursor++
				m.recall()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

func (m *CommandBarModel) recall() {
	value := ":"
	if m.cursor < len(m.history) {
		value = m.history[m.cursor]
	}
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
}

func (m *CommandBarModel) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(lipgloss.Color("#1F2937")).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Width(m.width)

	return style.Render(" " + m.textInput.View())
}
