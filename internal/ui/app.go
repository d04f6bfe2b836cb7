package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/johanforsgren/lgtmthreads/internal/review"
	"github.com/johanforsgren/lgtmthreads/internal/ui/components"
	"github.com/johanforsgren/lgtmthreads/internal/ui/markdown"
	"github.com/johanforsgren/lgtmthreads/internal/ui/views"
)

type ViewState int

const (
	ViewDiff ViewState = iota
	ViewComments
	ViewLogs
	ViewHelp
)

func (s ViewState) String() string {
	switch s {
	case ViewComments:
		return "Comments"
	case ViewLogs:
		return "Logs"
	case ViewHelp:
		return "Help"
	default:
		return "Diff"
	}
}

const (
	requestTimeout = 30 * time.Second
	editorRows     = 12
)

type Options struct {
	SuppressRefreshWhileEditing bool
	MarkdownWidth               int
	RefreshInterval             time.Duration
	PATName                     string
}

// threadItem is a root comment, or one of its replies when reply is set.
type threadItem struct {
	parent domain.Comment
	reply  *domain.Reply
}

func (t threadItem) id() string {
	if t.reply != nil {
		return t.reply.ID
	}
	return t.parent.ID
}

func (t threadItem) text() string {
	if t.reply != nil {
		return t.reply.Text
	}
	return t.parent.Text
}

type Model struct {
	state           ViewState
	width           int
	height          int
	session         *review.Session
	provider        domain.Provider
	identifier      domain.PRIdentifier
	diff            *domain.Diff
	topBar          *components.TopBarModel
	statusBar       *components.StatusBarModel
	commandBar      *components.CommandBarModel
	prInspect       *views.PRInspectViewModel
	editor          *views.InlineCommentViewModel
	commentDetail   *views.CommentDetailViewModel
	logsView        *views.LogsViewModel
	ctx             context.Context
	commandRegistry *CommandRegistry
	unsubscribe     func()
	refreshInterval time.Duration
	editing         *threadItem
	pendingDelete   string
}

// NewModel builds the review screen for one pull request. The comment
// session lives as long as the model.
func NewModel(provider domain.Provider, identifier domain.PRIdentifier, opts Options) Model {
	session := review.NewSession(review.SessionOptions{
		SuppressRefreshWhileEditing: opts.SuppressRefreshWhileEditing,
	})

	renderer := markdown.NewRenderer(markdown.DefaultPalette())
	if opts.MarkdownWidth > 0 {
		renderer.SetWidth(opts.MarkdownWidth)
	}
	prInspect := views.NewPRInspectView(renderer)
	prInspect.SetAnnotator(session.Annotator(), nil)
	commentDetail := views.NewCommentDetailView(renderer)

	topBar := components.NewTopBar()
	topBar.SetActivePAT(opts.PATName, string(provider.GetType()))
	topBar.SetContext(identifier.Repository, strconv.Itoa(identifier.Number))

	unsubscribe := session.Store.Subscribe(func(prev, next review.State) {
		prInspect.SetAnnotator(review.NewAnnotator(next, session.Editors), review.Changed(prev, next).Comments)
		commentDetail.Refresh(next)
		topBar.SetCommentStats(commentStats(next))
	})

	m := Model{
		state:           ViewDiff,
		session:         session,
		provider:        provider,
		identifier:      identifier,
		topBar:          topBar,
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		prInspect:       prInspect,
		editor:          views.NewInlineCommentView(),
		commentDetail:   commentDetail,
		logsView:        views.NewLogsView(),
		ctx:             context.Background(),
		commandRegistry: NewCommandRegistry(),
		unsubscribe:     unsubscribe,
		refreshInterval: opts.RefreshInterval,
	}
	m.updateShortcuts()
	return m
}

func (m Model) Init() tea.Cmd {
	logger.Log("UI: Opening %s", common.FormatPRIdentifier(m.identifier))
	m.statusBar.SetBusy("Loading pull request")
	return tea.Batch(m.loadPRDetail(), m.loadDiff(), m.scheduleRefresh())
}

func commentStats(state review.State) components.CommentStats {
	var stats components.CommentStats
	for _, c := range state.Comments {
		stats.Total++
		switch c.Type {
		case domain.CommentTypeTaskTodo:
			stats.OpenTODO++
		case domain.CommentTypeTaskDone:
			stats.Done++
		}
		if c.Outdated {
			stats.Outdated++
		}
	}
	return stats
}

func (m *Model) setState(state ViewState) {
	m.state = state
	m.topBar.SetView(state.String())
	m.updateShortcuts()
}

func (m Model) updateShortcuts() {
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(m.state))
}

func (m Model) layout() {
	if m.width == 0 {
		return
	}
	content := m.height - m.topBar.Height() - 2
	m.logsView.SetSize(m.width, content)
	m.commentDetail.SetSize(m.width, content)
	m.editor.SetSize(m.width, editorRows)
	if m.editor.IsActive() {
		content -= editorRows
	}
	m.prInspect.SetSize(m.width, max(content, 3))
}

func (m Model) current(identifier domain.PRIdentifier) bool {
	if identifier != m.identifier {
		logger.Log("UI: Dropping result for %s", common.FormatPRIdentifier(identifier))
		return false
	}
	return true
}

func (m Model) showError(err error) {
	m.statusBar.SetBusy("")
	m.statusBar.SetMessage(common.ExtractErrorMessage(err), true)
}

func (m Model) showInfo(message string) {
	m.statusBar.SetBusy("")
	m.statusBar.SetMessage(message, false)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PRDetailLoadedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		m.prInspect.SetPR(msg.pr)
		m.updatePRStatus()
		return m, nil

	case DiffLoadedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		m.diff = msg.diff
		m.prInspect.SetDiff(msg.diff)
		m.statusBar.SetBusy("Loading comments")
		return m, m.loadComments(false)

	case CommentsLoadedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		return m.applyComments(msg)

	case CommentCreatedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if err := m.session.CommentCreated(msg.anchor, msg.comment); err != nil {
			return m.submitFailed(msg.anchor, err), nil
		}
		m.closeEditorFor(msg.anchor)
		m.showInfo("Comment posted")
		return m, nil

	case ReplyCreatedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		anchor := review.ReplyAnchor(msg.parentID)
		if err := m.session.ReplyCreated(msg.parentID, msg.reply); err != nil {
			return m.submitFailed(anchor, err), nil
		}
		m.closeEditorFor(anchor)
		m.showInfo("Reply posted")
		return m, nil

	case CommentFailedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		return m.submitFailed(msg.anchor, msg.err), nil

	case CommentUpdatedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if err := m.session.CommentUpdated(msg.comment); err != nil {
			m.showError(err)
			return m, nil
		}
		m.closeEditEditor(msg.comment.ID)
		m.showInfo("Comment updated")
		return m, nil

	case ReplyUpdatedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if err := m.session.ReplyUpdated(msg.parentID, msg.reply); err != nil {
			m.showError(err)
			return m, nil
		}
		m.closeEditEditor(msg.reply.ID)
		m.showInfo("Reply updated")
		return m, nil

	case UpdateFailedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if m.editor.IsActive() && m.editor.EditID() == msg.id {
			m.editor.SetSubmitting(false)
		}
		m.showError(msg.err)
		return m, nil

	case CommentDeletedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if err := m.session.CommentDeleted(msg.comment); err != nil {
			m.showError(err)
			return m, nil
		}
		m.showInfo("Comment deleted")
		return m, nil

	case ReplyDeletedMsg:
		if !m.current(msg.identifier) {
			return m, nil
		}
		if err := m.session.ReplyDeleted(msg.parentID, msg.reply); err != nil {
			m.showError(err)
			return m, nil
		}
		m.showInfo("Reply deleted")
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.loadComments(true), m.scheduleRefresh())

	case ErrorMsg:
		m.showError(msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.commandBar.IsActive() {
		switch key {
		case "enter":
			return m.handleCommand()
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	if m.editor.IsActive() {
		switch key {
		case "ctrl+c":
			return m.quit()
		case "esc":
			return m.cancelEditor(), nil
		case "ctrl+s":
			return m.submitEditor()
		case "ctrl+t":
			m.editor.ToggleTask()
			return m, nil
		default:
			return m, m.editor.Update(msg)
		}
	}

	switch m.state {
	case ViewComments:
		switch key {
		case "esc", "q", "a":
			m.commentDetail.Deactivate()
			m.setState(ViewDiff)
			return m, nil
		case "ctrl+c":
			return m.quit()
		default:
			return m, m.commentDetail.Update(msg)
		}
	case ViewLogs:
		switch key {
		case "esc", "q", "L":
			m.logsView.Deactivate()
			m.setState(ViewDiff)
			return m, nil
		case "ctrl+c":
			return m.quit()
		default:
			return m, m.logsView.Update(msg)
		}
	case ViewHelp:
		switch key {
		case "ctrl+c":
			return m.quit()
		case "esc", "q", "?":
			m.setState(ViewDiff)
		}
		return m, nil
	}

	if key != "x" {
		m.pendingDelete = ""
	}

	newModel, cmd, handled := m.commandRegistry.HandleKey(m, key)
	if handled {
		return newModel, cmd
	}
	return m, nil
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Submit()
	if !strings.HasPrefix(input, ":") {
		input = ":" + input
	}
	cmd := ParseCommand(input)

	logger.Log("UI: Executing command: %s", input)
	return m.commandRegistry.ExecuteCommand(m, cmd)
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	logger.Log("UI: Closing %s", common.FormatPRIdentifier(m.identifier))
	return m, tea.Quit
}

func (m Model) applyComments(msg CommentsLoadedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetBusy("")
	if !msg.refresh {
		if err := m.session.Load(*msg.collection); err != nil {
			m.showError(err)
			return m, nil
		}
		m.updatePRStatus()
		m.showInfo(fmt.Sprintf("Loaded %d comments", len(msg.collection.Comments)))
		return m, nil
	}

	applied, err := m.session.Refresh(*msg.collection)
	if err != nil {
		m.showError(err)
		return m, nil
	}
	if !applied {
		m.showInfo("Refresh skipped while editing")
		return m, nil
	}
	m.updatePRStatus()
	return m, nil
}

func (m Model) updatePRStatus() {
	pr := m.prInspect.GetPR()
	if pr == nil {
		return
	}
	m.topBar.SetPRStatus(string(pr.Status), m.session.Editors.CommentingPermitted())
}

func (m Model) openCommentEditor() (Model, tea.Cmd) {
	target, ok := m.prInspect.CurrentTarget()
	if !ok {
		m.statusBar.SetMessage("Move to a file header or a diff line to comment", true)
		return m, nil
	}
	if err := m.session.Editors.Open(target.Anchor); err != nil {
		if errors.Is(err, review.ErrCommentingNotPermitted) {
			m.statusBar.SetMessage("Commenting is not permitted on this pull request", true)
			return m, nil
		}
		m.showError(err)
		return m, nil
	}
	loc := target.Location
	m.editor.Activate(target.Anchor, &loc, target.Label)
	m.layout()
	return m, nil
}

func (m Model) openReplyEditor() (Model, tea.Cmd) {
	for _, c := range m.prInspect.CommentsAtCursor() {
		if !c.Actions.Reply {
			continue
		}
		anchor := review.ReplyAnchor(c.ID)
		if err := m.session.Editors.Open(anchor); err != nil {
			m.showError(err)
			return m, nil
		}
		m.editor.Activate(anchor, nil, "to "+c.Author.Username)
		m.layout()
		return m, nil
	}
	m.statusBar.SetMessage("No thread to reply to here", true)
	return m, nil
}

// itemAtCursor picks the first root comment at the cursor that allows the
// action, then falls back to its replies, newest first.
func (m Model) itemAtCursor(allowed func(domain.Actions) bool) (threadItem, bool) {
	for _, c := range m.prInspect.CommentsAtCursor() {
		if allowed(c.Actions) {
			return threadItem{parent: c}, true
		}
		for i := len(c.Replies) - 1; i >= 0; i-- {
			if allowed(c.Replies[i].Actions) {
				reply := c.Replies[i]
				return threadItem{parent: c, reply: &reply}, true
			}
		}
	}
	return threadItem{}, false
}

func (m Model) openEditEditor() (Model, tea.Cmd) {
	item, ok := m.itemAtCursor(func(a domain.Actions) bool { return a.Update })
	if !ok {
		m.statusBar.SetMessage("Nothing here you can edit", true)
		return m, nil
	}
	label := ""
	if target, ok := m.prInspect.CurrentTarget(); ok {
		label = target.Label
	}
	m.editing = &item
	m.editor.ActivateEdit(item.id(), item.text(), label)
	m.layout()
	return m, nil
}

func (m Model) toggleTask() (Model, tea.Cmd) {
	for _, c := range m.prInspect.CommentsAtCursor() {
		if !c.Type.IsTask() || !c.Actions.Update {
			continue
		}
		if c.Type == domain.CommentTypeTaskTodo {
			c.Type = domain.CommentTypeTaskDone
		} else {
			c.Type = domain.CommentTypeTaskTodo
		}
		m.statusBar.SetBusy("Updating task")
		return m, m.updateComment(c)
	}
	m.statusBar.SetMessage("No task here you can update", true)
	return m, nil
}

// deleteAtCursor asks for a second press before deleting.
func (m Model) deleteAtCursor() (Model, tea.Cmd) {
	item, ok := m.itemAtCursor(func(a domain.Actions) bool { return a.Delete })
	if !ok {
		m.statusBar.SetMessage("Nothing here you can delete", true)
		return m, nil
	}
	if m.pendingDelete != item.id() {
		m.pendingDelete = item.id()
		m.statusBar.SetMessage("Press x again to delete "+item.id(), false)
		return m, nil
	}
	m.pendingDelete = ""
	m.statusBar.SetBusy("Deleting")
	if item.reply != nil {
		return m, m.deleteReply(item.parent, *item.reply)
	}
	return m, m.deleteComment(item.parent)
}

func (m Model) cancelEditor() Model {
	if m.editor.IsSubmitting() {
		m.statusBar.SetMessage("Waiting for the server", false)
		return m
	}
	if m.editor.EditID() == "" {
		if err := m.session.Editors.Cancel(m.editor.Anchor()); err != nil {
			logger.LogError("CANCEL_EDITOR", m.editor.Anchor().String(), err)
		}
	}
	m.editing = nil
	m.editor.Deactivate()
	m.layout()
	return m
}

func (m Model) submitEditor() (tea.Model, tea.Cmd) {
	if m.editor.IsSubmitting() {
		return m, nil
	}
	text := m.editor.GetComment()
	if text == "" {
		m.statusBar.SetMessage("Comment is empty", true)
		return m, nil
	}

	if m.editing != nil {
		m.editor.SetSubmitting(true)
		m.statusBar.SetBusy("Saving")
		if m.editing.reply != nil {
			reply := *m.editing.reply
			reply.Text = text
			return m, m.updateReply(m.editing.parent, reply)
		}
		comment := m.editing.parent
		comment.Text = text
		return m, m.updateComment(comment)
	}

	anchor := m.editor.Anchor()
	if err := m.session.Editors.Submit(anchor); err != nil {
		m.showError(err)
		return m, nil
	}
	m.editor.SetSubmitting(true)
	m.statusBar.SetBusy("Posting")

	if anchor.IsReply() {
		parent, ok := m.session.Store.State().Comment(anchor.ReplyTo)
		if !ok {
			return m.submitFailed(anchor, fmt.Errorf("comment %s no longer exists", anchor.ReplyTo)), nil
		}
		return m, m.createReply(*parent, domain.ReplyDraft{Text: text})
	}
	return m, m.createComment(anchor, domain.CommentDraft{
		Text:     text,
		Location: m.editor.Location(),
		Type:     m.editor.CommentType(),
	})
}

// submitFailed hands the draft back to the user.
func (m Model) submitFailed(anchor review.Anchor, err error) Model {
	if ferr := m.session.CommentFailed(anchor); ferr != nil {
		logger.LogError("FAIL_EDITOR", anchor.String(), ferr)
	}
	if m.editor.IsActive() && m.editor.Anchor() == anchor {
		m.editor.SetSubmitting(false)
	}
	m.showError(err)
	return m
}

func (m Model) closeEditorFor(anchor review.Anchor) {
	if m.editor.IsActive() && m.editor.EditID() == "" && m.editor.Anchor() == anchor {
		m.editor.Deactivate()
		m.layout()
	}
}

func (m *Model) closeEditEditor(id string) {
	if m.editor.IsActive() && m.editor.EditID() == id {
		m.editing = nil
		m.editor.Deactivate()
		m.layout()
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.state {
	case ViewComments:
		content = m.commentDetail.View()
	case ViewLogs:
		content = m.logsView.View()
	case ViewHelp:
		content = renderHelp(m.commandRegistry)
	default:
		content = m.prInspect.View()
		if m.editor.IsActive() {
			content += "\n" + m.editor.View()
		}
	}

	topBar := m.topBar.View()
	commandBar := m.commandBar.View()
	if commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}
	return topBar + "\n" + content + "\n" + m.statusBar.View()
}

func (m Model) scheduleRefresh() tea.Cmd {
	if m.refreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m Model) loadPRDetail() tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		pr, err := provider.GetPullRequest(ctx, identifier)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return PRDetailLoadedMsg{identifier: identifier, pr: pr}
	}
}

func (m Model) loadDiff() tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		diff, err := provider.GetDiff(ctx, identifier)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return DiffLoadedMsg{identifier: identifier, diff: diff}
	}
}

func (m Model) loadComments(refresh bool) tea.Cmd {
	provider, identifier, diff := m.provider, m.identifier, m.diff
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		collection, err := provider.GetComments(ctx, identifier, diff)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return CommentsLoadedMsg{identifier: identifier, collection: collection, refresh: refresh}
	}
}

func (m Model) createComment(anchor review.Anchor, draft domain.CommentDraft) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		comment, err := provider.CreateComment(ctx, identifier, draft)
		if err != nil {
			logger.LogError("CREATE_COMMENT", anchor.String(), err)
			return CommentFailedMsg{identifier: identifier, anchor: anchor, err: err}
		}
		return CommentCreatedMsg{identifier: identifier, anchor: anchor, comment: *comment}
	}
}

func (m Model) createReply(parent domain.Comment, draft domain.ReplyDraft) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	anchor := review.ReplyAnchor(parent.ID)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		reply, err := provider.CreateReply(ctx, identifier, parent, draft)
		if err != nil {
			logger.LogError("CREATE_REPLY", parent.ID, err)
			return CommentFailedMsg{identifier: identifier, anchor: anchor, err: err}
		}
		return ReplyCreatedMsg{identifier: identifier, parentID: parent.ID, reply: *reply}
	}
}

func (m Model) updateComment(comment domain.Comment) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		updated, err := provider.UpdateComment(ctx, identifier, comment)
		if err != nil {
			logger.LogError("UPDATE_COMMENT", comment.ID, err)
			return UpdateFailedMsg{identifier: identifier, id: comment.ID, err: err}
		}
		return CommentUpdatedMsg{identifier: identifier, comment: *updated}
	}
}

func (m Model) updateReply(parent domain.Comment, reply domain.Reply) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		updated, err := provider.UpdateReply(ctx, identifier, parent, reply)
		if err != nil {
			logger.LogError("UPDATE_REPLY", reply.ID, err)
			return UpdateFailedMsg{identifier: identifier, id: reply.ID, err: err}
		}
		return ReplyUpdatedMsg{identifier: identifier, parentID: parent.ID, reply: *updated}
	}
}

func (m Model) deleteComment(comment domain.Comment) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		if err := provider.DeleteComment(ctx, identifier, comment); err != nil {
			logger.LogError("DELETE_COMMENT", comment.ID, err)
			return ErrorMsg{err: err}
		}
		return CommentDeletedMsg{identifier: identifier, comment: comment}
	}
}

func (m Model) deleteReply(parent domain.Comment, reply domain.Reply) tea.Cmd {
	provider, identifier := m.provider, m.identifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, requestTimeout)
		defer cancel()

		if err := provider.DeleteReply(ctx, identifier, parent, reply); err != nil {
			logger.LogError("DELETE_REPLY", reply.ID, err)
			return ErrorMsg{err: err}
		}
		return ReplyDeletedMsg{identifier: identifier, parentID: parent.ID, reply: reply}
	}
}

type PRDetailLoadedMsg struct {
	identifier domain.PRIdentifier
	pr         *domain.PullRequest
}

type DiffLoadedMsg struct {
	identifier domain.PRIdentifier
	diff       *domain.Diff
}

type CommentsLoadedMsg struct {
	identifier domain.PRIdentifier
	collection *domain.CommentCollection
	refresh    bool
}

type CommentCreatedMsg struct {
	identifier domain.PRIdentifier
	anchor     review.Anchor
	comment    domain.Comment
}

// CommentFailedMsg reports a failed create of a comment or a reply.
type CommentFailedMsg struct {
	identifier domain.PRIdentifier
	anchor     review.Anchor
	err        error
}

type ReplyCreatedMsg struct {
	identifier domain.PRIdentifier
	parentID   string
	reply      domain.Reply
}

type CommentUpdatedMsg struct {
	identifier domain.PRIdentifier
	comment    domain.Comment
}

type ReplyUpdatedMsg struct {
	identifier domain.PRIdentifier
	parentID   string
	reply      domain.Reply
}

type UpdateFailedMsg struct {
	identifier domain.PRIdentifier
	id         string
	err        error
}

type CommentDeletedMsg struct {
	identifier domain.PRIdentifier
	comment    domain.Comment
}

type ReplyDeletedMsg struct {
	identifier domain.PRIdentifier
	parentID   string
	reply      domain.Reply
}

type refreshTickMsg struct{}

type ErrorMsg struct {
	err error
}
