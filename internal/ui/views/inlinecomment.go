package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
)

// InlineCommentViewModel is the editor box for a new comment or reply.
// It holds the draft text only; whether the editor is open for an anchor
// is tracked by review.Editors.
type InlineCommentViewModel struct {
	textarea   textarea.Model
	width      int
	height     int
	active     bool
	submitting bool
	anchor     review.Anchor
	location   *domain.Location
	lineInfo   string
	task       bool
	editID     string
}

func NewInlineCommentView() *InlineCommentViewModel {
	ta := textarea.New()
	ta.Placeholder = "Enter your comment..."
	ta.CharLimit = 10000
	ta.ShowLineNumbers = false

	return &InlineCommentViewModel{
		textarea: ta,
	}
}

func (m *InlineCommentViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(width - 8)
	m.textarea.SetHeight(6)
}

// Activate opens the editor for anchor. location is nil for replies.
func (m *InlineCommentViewModel) Activate(anchor review.Anchor, location *domain.Location, lineInfo string) {
	m.active = true
	m.submitting = false
	m.task = false
	m.editID = ""
	m.anchor = anchor
	m.location = location
	m.lineInfo = lineInfo
	m.textarea.Focus()
	m.textarea.SetValue("")
}

// ActivateEdit opens the editor on the text of an existing comment or
// reply. Edits are not tied to an anchor.
func (m *InlineCommentViewModel) ActivateEdit(id, text, lineInfo string) {
	m.Activate(review.Anchor{}, nil, lineInfo)
	m.editID = id
	m.textarea.SetValue(text)
}

// EditID is the id being edited, empty for a new comment or reply.
func (m *InlineCommentViewModel) EditID() string {
	return m.editID
}

func (m *InlineCommentViewModel) Deactivate() {
	m.active = false
	m.submitting = false
	m.task = false
	m.editID = ""
	m.anchor = review.Anchor{}
	m.location = nil
	m.textarea.Blur()
	m.textarea.SetValue("")
}

func (m *InlineCommentViewModel) IsActive() bool {
	return m.active
}

func (m *InlineCommentViewModel) Anchor() review.Anchor {
	return m.anchor
}

func (m *InlineCommentViewModel) Location() *domain.Location {
	return m.location
}

// SetSubmitting freezes the draft while a request is in flight. Clearing
// it after a failure hands the untouched draft back to the user.
func (m *InlineCommentViewModel) SetSubmitting(submitting bool) {
	m.submitting = submitting
	if submitting {
		m.textarea.Blur()
	} else {
		m.textarea.Focus()
	}
}

func (m *InlineCommentViewModel) IsSubmitting() bool {
	return m.submitting
}

// ToggleTask switches a new root comment between a plain comment and an
// open task. Replies cannot be tasks.
func (m *InlineCommentViewModel) ToggleTask() {
	if m.anchor.IsReply() || m.editID != "" {
		return
	}
	m.task = !m.task
}

func (m *InlineCommentViewModel) CommentType() domain.CommentType {
	if m.task {
		return domain.CommentTypeTaskTodo
	}
	return domain.CommentTypeComment
}

func (m *InlineCommentViewModel) GetComment() string {
	return strings.TrimSpace(m.textarea.Value())
}

func (m *InlineCommentViewModel) GetValue() string {
	return m.textarea.Value()
}

func (m *InlineCommentViewModel) SetValue(value string) {
	m.textarea.SetValue(value)
}

func (m *InlineCommentViewModel) Update(msg tea.Msg) tea.Cmd {
	if m.submitting {
		return nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return cmd
}

func (m *InlineCommentViewModel) title() string {
	switch {
	case m.editID != "":
		return "Edit Comment"
	case m.anchor.IsReply():
		return "Reply"
	case m.anchor.IsInline():
		return "Add Inline Comment"
	default:
		return "Add File Comment"
	}
}

func (m *InlineCommentViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	title := m.title()
	if m.lineInfo != "" {
		title += " - " + m.lineInfo
	}
	if m.task {
		title += " [task]"
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	help := "Ctrl+S: Submit | Ctrl+T: Toggle Task | Esc: Cancel"
	if m.anchor.IsReply() || m.editID != "" {
		help = "Ctrl+S: Submit | Esc: Cancel"
	}
	if m.submitting {
		help = "Submitting..."
	}
	b.WriteString(helpStyle.Render(help))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(0, 2).
		Width(m.width - 4)

	return boxStyle.Render(b.String())
}
