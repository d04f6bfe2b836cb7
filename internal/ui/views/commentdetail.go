package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
	"github.com/johanforsgren/lgtmthreads/internal/ui/markdown"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F59E0B")).
				Bold(true).
				Underline(true)
	overviewFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3B82F6")).
				Bold(true).
				Background(lipgloss.Color("#1F2937")).
				Padding(0, 1)
	codeContextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
)

// CommentDetailViewModel lists every thread of the pull request in one
// scrollable page: conversation comments that have no place in the diff
// first, then file and line threads grouped by file.
type CommentDetailViewModel struct {
	viewport viewport.Model
	markdown *markdown.Renderer
	state    review.State
	diff     *domain.Diff
	width    int
	height   int
	active   bool
}

func NewCommentDetailView(renderer *markdown.Renderer) *CommentDetailViewModel {
	return &CommentDetailViewModel{
		viewport: viewport.New(0, 0),
		markdown: renderer,
		state:    review.EmptyState(),
	}
}

func (m *CommentDetailViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	if m.active {
		m.updateViewport()
	}
}

func (m *CommentDetailViewModel) Activate(state review.State, diff *domain.Diff) {
	m.active = true
	m.state = state
	m.diff = diff
	m.updateViewport()
	m.viewport.GotoTop()
}

// Refresh re-renders with a newer state, keeping the scroll position.
func (m *CommentDetailViewModel) Refresh(state review.State) {
	if !m.active {
		return
	}
	m.state = state
	m.updateViewport()
}

func (m *CommentDetailViewModel) Deactivate() {
	m.active = false
}

func (m *CommentDetailViewModel) IsActive() bool {
	return m.active
}

func (m *CommentDetailViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *CommentDetailViewModel) View() string {
	if !m.active {
		return ""
	}
	return m.viewport.View() + "\n" + metaStyle.Render("j/k: Scroll | a/Esc: Back to Diff")
}

// conversationIDs returns the comments no file or line bucket holds,
// oldest first.
func conversationIDs(state review.State) []string {
	placed := map[string]bool{}
	for _, bucket := range state.Files {
		for _, id := range bucket.Comments {
			placed[id] = true
		}
	}
	for _, changes := range state.Lines {
		for _, bucket := range changes {
			for _, id := range bucket.Comments {
				placed[id] = true
			}
		}
	}

	var ids []string
	for id := range state.Comments {
		if !placed[id] {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := state.Comments[a].Date.Compare(state.Comments[b].Date); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// filePaths orders files as the diff does, followed by commented files
// the diff no longer contains.
func (m *CommentDetailViewModel) filePaths() []string {
	seen := map[string]bool{}
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	if m.diff != nil {
		for _, f := range m.diff.Files {
			add(f.Path())
		}
	}

	var extra []string
	for path := range m.state.Files {
		extra = append(extra, path)
	}
	for _, changes := range m.state.Lines {
		for _, bucket := range changes {
			extra = append(extra, bucket.Location.File)
		}
	}
	slices.Sort(extra)
	for _, path := range extra {
		add(path)
	}
	return paths
}

func (m *CommentDetailViewModel) lineBuckets(path string) []*review.LineBucket {
	var buckets []*review.LineBucket
	for _, changes := range m.state.Lines {
		for _, bucket := range changes {
			if bucket.Location.File == path {
				buckets = append(buckets, bucket)
			}
		}
	}
	slices.SortFunc(buckets, func(a, b *review.LineBucket) int {
		if c := cmp.Compare(a.Location.Hunk, b.Location.Hunk); c != 0 {
			return c
		}
		return cmp.Compare(max(a.Location.NewLineNumber, a.Location.OldLineNumber), max(b.Location.NewLineNumber, b.Location.OldLineNumber))
	})
	return buckets
}

func (m *CommentDetailViewModel) updateViewport() {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Padding(1, 0)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Comments (%d)", m.state.Len())))
	b.WriteString("\n\n")

	if m.state.Len() == 0 {
		b.WriteString(metaStyle.Render("No comments on this PR"))
		m.viewport.SetContent(b.String())
		return
	}

	if ids := conversationIDs(m.state); len(ids) > 0 {
		b.WriteString(sectionHeaderStyle.Render("Conversation"))
		b.WriteString("\n\n")
		for _, id := range ids {
			m.renderComment(&b, id, "")
		}
		b.WriteString("\n")
	}

	for _, path := range m.filePaths() {
		fileIDs := m.state.FileComments(path)
		buckets := m.lineBuckets(path)
		if len(fileIDs) == 0 && len(buckets) == 0 {
			continue
		}

		b.WriteString(overviewFileStyle.Render(path))
		b.WriteString("\n\n")
		for _, id := range fileIDs {
			m.renderComment(&b, id, "")
		}
		for _, bucket := range buckets {
			context := m.codeContext(bucket.Location)
			for _, id := range bucket.Comments {
				m.renderComment(&b, id, context)
			}
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

func (m *CommentDetailViewModel) renderComment(b *strings.Builder, id, context string) {
	comment, ok := m.state.Comment(id)
	if !ok {
		return
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		Padding(0, 1).
		Width(max(m.width-4, 20))

	var content strings.Builder
	header := commentHeader(comment.Author, comment.Date.Format("2006-01-02 15:04"), comment.Type)
	if loc := comment.Location; loc != nil && loc.NewLineNumber+loc.OldLineNumber > 0 {
		header += metaStyle.Render(fmt.Sprintf(" on line %d", max(loc.NewLineNumber, loc.OldLineNumber)))
	}
	if comment.Outdated {
		header += " " + metaStyle.Render("(outdated)")
	}
	content.WriteString(header)
	content.WriteString("\n")
	if context != "" {
		content.WriteString(codeContextStyle.Render(context))
		content.WriteString("\n")
	}
	content.WriteString(m.markdown.Render(comment.Text))

	for _, reply := range comment.Replies {
		content.WriteString("\n\n↳ ")
		content.WriteString(commentHeader(reply.Author, reply.Date.Format("2006-01-02 15:04"), reply.Type))
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(m.markdown.Render(reply.Text)))
	}

	b.WriteString(boxStyle.Render(content.String()))
	b.WriteString("\n")
}

// codeContext returns the diff line a line bucket is anchored to, matched
// by change id so deleted and inserted lines stay apart.
func (m *CommentDetailViewModel) codeContext(loc domain.Location) string {
	if m.diff == nil {
		return ""
	}
	want, err := review.ChangeIDFor(loc)
	if err != nil {
		return ""
	}

	for _, file := range m.diff.Files {
		if file.Path() != loc.File {
			continue
		}
		for _, hunk := range file.Hunks {
			if hunk.Header != loc.Hunk {
				continue
			}
			for _, line := range hunk.Lines {
				got, err := review.ChangeIDFor(review.LocationForLine(file.Path(), hunk.Header, line))
				if err == nil && got == want {
					return line.Content
				}
			}
		}
	}
	return ""
}
