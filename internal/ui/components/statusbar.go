package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type StatusBarModel struct {
	width   int
	message string
	isError bool
	busy    string
}

func NewStatusBar() *StatusBarModel {
	return &StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetMessage(message string, isError bool) {
	m.message = message
	m.isError = isError
}

func (m *StatusBarModel) ClearMessage() {
	m.message = ""
	m.isError = false
}

func (m *StatusBarModel) Message() (string, bool) {
	return m.message, m.isError
}

// SetBusy shows an in-flight operation ahead of the message. An empty
// label clears it.
func (m *StatusBarModel) SetBusy(label string) {
	m.busy = label
}

func truncate(s string, width int) string {
	if width <= 3 {
		return strings.Repeat(".", max(width, 0))
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (m *StatusBarModel) View() string {
	content := " " + m.message
	if m.busy != "" {
		content = " ⟳ " + m.busy
		if m.message != "" {
			content += " | " + m.message
		}
	}

	if lipgloss.Width(content) > m.width {
		content = truncate(content, m.width)
	} else if lipgloss.Width(content) < m.width {
		padding := m.width - lipgloss.Width(content)
		content += strings.Repeat(" ", padding)
	}

	bgColor := lipgloss.Color("#374151")
	if m.isError {
		bgColor = lipgloss.Color("#991B1B")
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(bgColor).
		Width(m.width)

	return style.Render(content)
}
