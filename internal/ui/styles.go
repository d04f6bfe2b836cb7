package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	infoColor    = lipgloss.Color("#3B82F6")
	mutedColor   = lipgloss.Color("#6B7280")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true).
			Width(18)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

// editorKeys are handled by the comment editor rather than the registry.
var editorKeys = [][2]string{
	{"ctrl+s", "Submit comment"},
	{"ctrl+t", "Toggle task on a new comment"},
	{"esc", "Cancel editing"},
}

func renderHelp(r *CommandRegistry) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keys"))
	b.WriteString("\n")

	for _, kb := range r.keyBindings {
		b.WriteString(HelpKeyStyle.Render(strings.Join(kb.Keys, ", ")))
		b.WriteString(HelpDescStyle.Render(kb.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Editor"))
	b.WriteString("\n")
	for _, k := range editorKeys {
		b.WriteString(HelpKeyStyle.Render(k[0]))
		b.WriteString(HelpDescStyle.Render(k[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("Commands: :quit  :refresh  :logs  :help  :threads  :comments  :goto <path>"))

	return BorderStyle.Render(b.String())
}
