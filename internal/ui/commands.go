package ui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandRefresh
	CommandLogs
	CommandHelp
	CommandThreads
	CommandGoto
	CommandComments
)

type Command struct {
	Type CommandType
	Args []string
}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	input = strings.TrimPrefix(input, ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit":
		return Command{Type: CommandQuit, Args: args}
	case "r", "refresh":
		return Command{Type: CommandRefresh, Args: args}
	case "l", "logs":
		return Command{Type: CommandLogs, Args: args}
	case "h", "help":
		return Command{Type: CommandHelp, Args: args}
	case "t", "threads":
		return Command{Type: CommandThreads, Args: args}
	case "f", "file", "goto":
		return Command{Type: CommandGoto, Args: args}
	case "a", "all", "comments":
		return Command{Type: CommandComments, Args: args}
	default:
		return Command{Type: CommandUnknown, Args: args}
	}
}

type KeyBinding struct {
	Keys        []string
	Description string
	AvailableIn []ViewState
	Handler     func(Model) (Model, tea.Cmd)
}

type CommandRegistry struct {
	keyBindings []*KeyBinding
}

func NewCommandRegistry() *CommandRegistry {
	diff := []ViewState{ViewDiff}
	return &CommandRegistry{
		keyBindings: []*KeyBinding{
			{Keys: []string{"q", "ctrl+c"}, Description: "Quit", AvailableIn: diff, Handler: handleQuitKey},
			{Keys: []string{"j", "down"}, Description: "Down", AvailableIn: diff, Handler: handleCursorDownKey},
			{Keys: []string{"k", "up"}, Description: "Up", AvailableIn: diff, Handler: handleCursorUpKey},
			{Keys: []string{"pgdown", "ctrl+d"}, Description: "Page down", AvailableIn: diff, Handler: handlePageDownKey},
			{Keys: []string{"pgup", "ctrl+u"}, Description: "Page up", AvailableIn: diff, Handler: handlePageUpKey},
			{Keys: []string{"n", "right"}, Description: "Next file", AvailableIn: diff, Handler: handleNextFileKey},
			{Keys: []string{"p", "left"}, Description: "Prev file", AvailableIn: diff, Handler: handlePrevFileKey},
			{Keys: []string{"c"}, Description: "Comment", AvailableIn: diff, Handler: handleCommentKey},
			{Keys: []string{"r"}, Description: "Reply", AvailableIn: diff, Handler: handleReplyKey},
			{Keys: []string{"e"}, Description: "Edit", AvailableIn: diff, Handler: handleEditKey},
			{Keys: []string{"t"}, Description: "Toggle task", AvailableIn: diff, Handler: handleTaskKey},
			{Keys: []string{"x"}, Description: "Delete", AvailableIn: diff, Handler: handleDeleteKey},
			{Keys: []string{"]"}, Description: "Next thread", AvailableIn: diff, Handler: handleNextThreadKey},
			{Keys: []string{"v"}, Description: "Threads", AvailableIn: diff, Handler: handleThreadsKey},
			{Keys: []string{"a"}, Description: "All comments", AvailableIn: []ViewState{ViewDiff, ViewComments}, Handler: handleCommentsKey},
			{Keys: []string{"R"}, Description: "Refresh", AvailableIn: diff, Handler: handleRefreshKey},
			{Keys: []string{"L"}, Description: "Logs", AvailableIn: []ViewState{ViewDiff, ViewLogs}, Handler: handleLogsKey},
			{Keys: []string{"?"}, Description: "Help", AvailableIn: []ViewState{ViewDiff, ViewHelp}, Handler: handleHelpKey},
			{Keys: []string{":"}, Description: "Command", AvailableIn: diff, Handler: handleCommandBarKey},
		},
	}
}

// HandleKey runs the binding for key in the current view. The bool is
// false when no binding matched.
func (r *CommandRegistry) HandleKey(m Model, key string) (Model, tea.Cmd, bool) {
	for _, kb := range r.keyBindings {
		if !slices.Contains(kb.Keys, key) || !slices.Contains(kb.AvailableIn, m.state) {
			continue
		}
		next, cmd := kb.Handler(m)
		return next, cmd, true
	}
	return m, nil, false
}

// GetContextualShortcuts lists "<key> description" for the bindings of
// state, skipping pure navigation.
func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var shortcuts []string
	for _, kb := range r.keyBindings {
		if !slices.Contains(kb.AvailableIn, state) {
			continue
		}
		switch kb.Keys[0] {
		case "j", "k", "pgdown", "pgup", "q", ":":
			continue
		}
		shortcuts = append(shortcuts, fmt.Sprintf("<%s> %s", kb.Keys[0], kb.Description))
	}
	return shortcuts
}

func (r *CommandRegistry) ExecuteCommand(m Model, cmd Command) (Model, tea.Cmd) {
	switch cmd.Type {
	case CommandQuit:
		return m.quit()
	case CommandRefresh:
		return handleRefreshKey(m)
	case CommandLogs:
		return handleLogsKey(m)
	case CommandHelp:
		return handleHelpKey(m)
	case CommandThreads:
		return handleThreadsKey(m)
	case CommandComments:
		return handleCommentsKey(m)
	case CommandGoto:
		if len(cmd.Args) != 1 {
			m.statusBar.SetMessage("Usage: :goto <path>", true)
			return m, nil
		}
		if !m.prInspect.GotoFile(cmd.Args[0]) {
			m.statusBar.SetMessage(fmt.Sprintf("No file %s in this diff", cmd.Args[0]), true)
		}
		return m, nil
	default:
		logger.Log("UI: Unknown command")
		m.statusBar.SetMessage("Unknown command", true)
		return m, nil
	}
}

func handleQuitKey(m Model) (Model, tea.Cmd) {
	return m.quit()
}

func handleCursorDownKey(m Model) (Model, tea.Cmd) {
	m.prInspect.CursorDown()
	return m, nil
}

func handleCursorUpKey(m Model) (Model, tea.Cmd) {
	m.prInspect.CursorUp()
	return m, nil
}

func handlePageDownKey(m Model) (Model, tea.Cmd) {
	m.prInspect.PageDown()
	return m, nil
}

func handlePageUpKey(m Model) (Model, tea.Cmd) {
	m.prInspect.PageUp()
	return m, nil
}

func handleNextFileKey(m Model) (Model, tea.Cmd) {
	m.prInspect.NextFile()
	return m, nil
}

func handlePrevFileKey(m Model) (Model, tea.Cmd) {
	m.prInspect.PrevFile()
	return m, nil
}

func handleNextThreadKey(m Model) (Model, tea.Cmd) {
	if !m.prInspect.NextThread() {
		m.statusBar.SetMessage("No comments in this file", false)
	}
	return m, nil
}

func handleThreadsKey(m Model) (Model, tea.Cmd) {
	m.prInspect.ToggleThreads()
	return m, nil
}

func handleRefreshKey(m Model) (Model, tea.Cmd) {
	m.statusBar.SetBusy("Refreshing comments")
	return m, m.loadComments(true)
}

func handleCommentsKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewComments {
		m.commentDetail.Deactivate()
		m.setState(ViewDiff)
		return m, nil
	}
	m.commentDetail.Activate(m.session.Store.State(), m.diff)
	m.setState(ViewComments)
	return m, nil
}

func handleLogsKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewLogs {
		m.logsView.Deactivate()
		m.setState(ViewDiff)
		return m, nil
	}
	m.logsView.Activate()
	m.setState(ViewLogs)
	return m, nil
}

func handleHelpKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewHelp {
		m.setState(ViewDiff)
	} else {
		m.setState(ViewHelp)
	}
	return m, nil
}

func handleCommandBarKey(m Model) (Model, tea.Cmd) {
	m.commandBar.Activate()
	return m, nil
}

func handleCommentKey(m Model) (Model, tea.Cmd) {
	return m.openCommentEditor()
}

func handleReplyKey(m Model) (Model, tea.Cmd) {
	return m.openReplyEditor()
}

func handleEditKey(m Model) (Model, tea.Cmd) {
	return m.openEditEditor()
}

func handleTaskKey(m Model) (Model, tea.Cmd) {
	return m.toggleTask()
}

func handleDeleteKey(m Model) (Model, tea.Cmd) {
	return m.deleteAtCursor()
}
