package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
	"github.com/johanforsgren/lgtmthreads/internal/ui/markdown"
)

type rowKind int

const (
	rowFile rowKind = iota
	rowHunk
	rowLine
)

// diffRow is one cursor stop of the current file: its header, a hunk
// header or a diff line.
type diffRow struct {
	kind rowKind
	hunk string
	line domain.DiffLine
}

// Target is what the cursor points at when the user starts a comment.
type Target struct {
	Anchor   review.Anchor
	Location domain.Location
	Label    string
}

var (
	fileHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)
	hunkHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
	addStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	deleteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	contextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	authorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	todoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	doneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	editingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Italic(true)
	threadStyle     = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#374151")).
			PaddingLeft(1).
			MarginLeft(4)
)

type renderedBody struct {
	text string
	out  string
}

// PRInspectViewModel renders the current file of a pull request diff with
// its comment threads attached at file and line anchors. Every anchor is
// looked up through the annotator; the view keeps no comment state of its
// own beyond a cache of rendered bodies.
type PRInspectViewModel struct {
	pr          *domain.PullRequest
	diff        *domain.Diff
	annotator   review.Annotator
	markdown    *markdown.Renderer
	bodies      map[string]renderedBody
	currentFile int
	rows        []diffRow
	cursor      int
	offset      int
	width       int
	height      int
	maxWidth    int
	showThreads bool
}

func NewPRInspectView(renderer *markdown.Renderer) *PRInspectViewModel {
	return &PRInspectViewModel{
		markdown:    renderer,
		bodies:      map[string]renderedBody{},
		maxWidth:    renderer.Width(),
		showThreads: true,
	}
}

func (m *PRInspectViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	bodyWidth := width - 12
	if bodyWidth > m.maxWidth {
		bodyWidth = m.maxWidth
	}
	before := m.markdown.Width()
	m.markdown.SetWidth(bodyWidth)
	if m.markdown.Width() != before {
		m.bodies = map[string]renderedBody{}
	}
}

func (m *PRInspectViewModel) SetPR(pr *domain.PullRequest) {
	m.pr = pr
}

func (m *PRInspectViewModel) GetPR() *domain.PullRequest {
	return m.pr
}

func (m *PRInspectViewModel) SetDiff(diff *domain.Diff) {
	m.diff = diff
	m.currentFile = 0
	m.buildRows()
}

// SetAnnotator swaps in a fresh snapshot. changed lists comments whose
// rendered body must be dropped.
func (m *PRInspectViewModel) SetAnnotator(annotator review.Annotator, changed []string) {
	m.annotator = annotator
	for _, id := range changed {
		delete(m.bodies, id)
	}
}

func (m *PRInspectViewModel) CurrentFile() *domain.FileDiff {
	if m.diff == nil || m.currentFile >= len(m.diff.Files) {
		return nil
	}
	return &m.diff.Files[m.currentFile]
}

func (m *PRInspectViewModel) NextFile() {
	if m.diff != nil && m.currentFile < len(m.diff.Files)-1 {
		m.currentFile++
		m.buildRows()
	}
}

func (m *PRInspectViewModel) PrevFile() {
	if m.currentFile > 0 {
		m.currentFile--
		m.buildRows()
	}
}

// GotoFile jumps to the file with the given path.
func (m *PRInspectViewModel) GotoFile(path string) bool {
	if m.diff == nil {
		return false
	}
	for i, f := range m.diff.Files {
		if f.Path() == path {
			m.currentFile = i
			m.buildRows()
			return true
		}
	}
	return false
}

func (m *PRInspectViewModel) ToggleThreads() {
	m.showThreads = !m.showThreads
}

func (m *PRInspectViewModel) CursorDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

func (m *PRInspectViewModel) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *PRInspectViewModel) PageDown() {
	m.cursor += m.pageSize()
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *PRInspectViewModel) PageUp() {
	m.cursor -= m.pageSize()
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// NextThread moves the cursor to the next row carrying comments, wrapping
// around the current file. It reports false when the file has none.
func (m *PRInspectViewModel) NextThread() bool {
	for step := 1; step <= len(m.rows); step++ {
		i := (m.cursor + step) % len(m.rows)
		if len(m.annotationFor(m.rows[i]).CommentIDs) > 0 {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *PRInspectViewModel) pageSize() int {
	if m.height < 4 {
		return 1
	}
	return m.height / 2
}

func (m *PRInspectViewModel) buildRows() {
	m.rows = nil
	m.cursor = 0
	m.offset = 0

	file := m.CurrentFile()
	if file == nil {
		return
	}

	m.rows = append(m.rows, diffRow{kind: rowFile})
	for _, hunk := range file.Hunks {
		m.rows = append(m.rows, diffRow{kind: rowHunk, hunk: hunk.Header})
		for _, line := range hunk.Lines {
			m.rows = append(m.rows, diffRow{kind: rowLine, hunk: hunk.Header, line: line})
		}
	}
}

// CurrentTarget returns the anchor under the cursor. Hunk headers are not
// commentable.
func (m *PRInspectViewModel) CurrentTarget() (Target, bool) {
	file := m.CurrentFile()
	if file == nil || m.cursor >= len(m.rows) {
		return Target{}, false
	}
	path := file.Path()
	row := m.rows[m.cursor]

	switch row.kind {
	case rowFile:
		return Target{
			Anchor:   review.FileAnchor(path),
			Location: domain.Location{File: path},
			Label:    path,
		}, true
	case rowLine:
		loc := review.LocationForLine(path, row.hunk, row.line)
		anchor, err := review.AnchorFor(loc)
		if err != nil {
			return Target{}, false
		}
		return Target{Anchor: anchor, Location: loc, Label: fmt.Sprintf("%s:%d", path, lineNumber(row.line))}, true
	}
	return Target{}, false
}

// CommentsAtCursor returns the root comments attached to the cursor row.
func (m *PRInspectViewModel) CommentsAtCursor() []domain.Comment {
	if m.cursor >= len(m.rows) {
		return nil
	}
	var comments []domain.Comment
	for _, id := range m.annotationFor(m.rows[m.cursor]).CommentIDs {
		if c, ok := m.annotator.Comment(id); ok {
			comments = append(comments, *c)
		}
	}
	return comments
}

func (m *PRInspectViewModel) annotationFor(row diffRow) review.Annotation {
	file := m.CurrentFile()
	if file == nil {
		return review.Annotation{}
	}
	switch row.kind {
	case rowFile:
		return m.annotator.ForFile(file.Path())
	case rowLine:
		return m.annotator.ForLine(file.Path(), row.hunk, row.line)
	}
	return review.Annotation{}
}

func lineNumber(line domain.DiffLine) int {
	if line.Type == domain.DiffLineDelete {
		return line.OldLine
	}
	return line.NewLine
}

func (m *PRInspectViewModel) View() string {
	lines := m.renderContent()
	visible := m.visibleLines()

	start := clampViewportOffset(m.offset, len(lines), visible)
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	help := metaStyle.Render("j/k: Move | n/p: Files | c: Comment | r: Reply | e: Edit | t: Task | x: Delete | ]: Next Thread | v: Threads | R: Refresh")
	return strings.Join(lines[start:end], "\n") + "\n" + help
}

func (m *PRInspectViewModel) visibleLines() int {
	if m.height < 3 {
		return 1
	}
	return m.height - 2
}

// clampViewportOffset keeps offset inside [0, total-visible].
func clampViewportOffset(offset, total, visible int) int {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// renderContent renders the header and every row, and scrolls the offset
// so that the cursor row stays visible.
func (m *PRInspectViewModel) renderContent() []string {
	var lines []string
	if m.pr != nil {
		lines = append(lines, strings.Split(m.renderPRHeader(), "\n")...)
		lines = append(lines, "")
	}

	file := m.CurrentFile()
	if file == nil {
		return append(lines, metaStyle.Render("No diff available"))
	}

	cursorLine := len(lines)
	for i, row := range m.rows {
		if i == m.cursor {
			cursorLine = len(lines)
		}
		annotation := m.annotationFor(row)
		lines = append(lines, m.renderRow(file, row, annotation, i == m.cursor))
		if m.showThreads {
			for _, id := range annotation.CommentIDs {
				lines = append(lines, strings.Split(m.renderThread(id), "\n")...)
			}
		}
		if annotation.EditorOpen {
			lines = append(lines, "    "+editingStyle.Render("✎ new comment in progress"))
		}
	}

	visible := m.visibleLines()
	if cursorLine < m.offset {
		m.offset = cursorLine
	} else if cursorLine >= m.offset+visible {
		m.offset = cursorLine - visible + 1
	}
	return lines
}

func (m *PRInspectViewModel) renderRow(file *domain.FileDiff, row diffRow, annotation review.Annotation, selected bool) string {
	gutter := "  "
	if selected {
		gutter = cursorStyle.Render("▶ ")
	}

	marker := " "
	switch {
	case annotation.EditorOpen:
		marker = editingStyle.Render("✎")
	case len(annotation.CommentIDs) > 0:
		marker = todoStyle.Render("●")
	}

	switch row.kind {
	case rowFile:
		header := fmt.Sprintf("File %d/%d: %s", m.currentFile+1, len(m.diff.Files), file.Path())
		switch {
		case file.IsNew:
			header += " (new)"
		case file.IsDeleted:
			header += " (deleted)"
		case file.IsRenamed:
			header += fmt.Sprintf(" (renamed from %s)", file.OldPath)
		}
		return gutter + marker + " " + fileHeaderStyle.Render(header)
	case rowHunk:
		return gutter + "  " + hunkHeaderStyle.Render(row.hunk)
	}

	numbers := fmt.Sprintf("%4s %4s ", lineNo(row.line.OldLine), lineNo(row.line.NewLine))
	return gutter + marker + " " + contextStyle.Render(numbers) + renderDiffLine(row.line)
}

func lineNo(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func renderDiffLine(line domain.DiffLine) string {
	switch line.Type {
	case domain.DiffLineAdd:
		return addStyle.Render(line.Content)
	case domain.DiffLineDelete:
		return deleteStyle.Render(line.Content)
	default:
		return contextStyle.Render(line.Content)
	}
}

func (m *PRInspectViewModel) renderThread(id string) string {
	comment, ok := m.annotator.Comment(id)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(commentHeader(comment.Author, comment.Date.Format("2006-01-02 15:04"), comment.Type))
	if comment.Outdated {
		b.WriteString(metaStyle.Render(" (outdated)"))
		if comment.Location != nil && comment.Location.NewLineNumber+comment.Location.OldLineNumber > 0 {
			b.WriteString(metaStyle.Render(fmt.Sprintf(" line %d", max(comment.Location.NewLineNumber, comment.Location.OldLineNumber))))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderBody(comment.ID, comment.Text))

	for _, reply := range comment.Replies {
		b.WriteString("\n\n")
		b.WriteString("↳ " + commentHeader(reply.Author, reply.Date.Format("2006-01-02 15:04"), reply.Type))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(m.renderBody(reply.ID, reply.Text)))
	}

	if m.annotator.ReplyEditorOpen(comment.ID) {
		b.WriteString("\n")
		b.WriteString(editingStyle.Render("✎ reply in progress"))
	}

	return threadStyle.Render(b.String())
}

func commentHeader(author domain.User, date string, commentType domain.CommentType) string {
	header := authorStyle.Render(author.Username) + " " + metaStyle.Render(date)
	switch commentType {
	case domain.CommentTypeTaskTodo:
		header += " " + todoStyle.Render("[TODO]")
	case domain.CommentTypeTaskDone:
		header += " " + doneStyle.Render("[DONE]")
	}
	return header
}

func (m *PRInspectViewModel) renderBody(id, text string) string {
	if cached, ok := m.bodies[id]; ok && cached.text == text {
		return cached.out
	}
	out := m.markdown.Render(text)
	m.bodies[id] = renderedBody{text: text, out: out}
	return out
}

func (m *PRInspectViewModel) renderPRHeader() string {
	if m.pr == nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	b.WriteString(titleStyle.Render(m.pr.Title))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s #%d | %s → %s | by %s",
		m.pr.Repository.FullName,
		m.pr.Number,
		m.pr.SourceBranch,
		m.pr.TargetBranch,
		m.pr.Author.Username,
	)
	b.WriteString(contextStyle.Render(meta))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle()
	statusText := string(m.pr.Status)
	switch m.pr.Status {
	case domain.PRStatusOpen:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#10B981"))
	case domain.PRStatusClosed:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#EF4444"))
	case domain.PRStatusMerged:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#7C3AED"))
	}
	if m.pr.IsDraft {
		statusText += " (draft)"
	}
	if m.pr.IsLocked {
		statusText += " (locked)"
	}
	b.WriteString(statusStyle.Render(statusText))

	return b.String()
}
