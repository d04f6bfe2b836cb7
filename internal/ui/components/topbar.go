package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CommentStats summarizes the comment model for the header.
type CommentStats struct {
	Total    int
	OpenTODO int
	Done     int
	Outdated int
}

type TopBarModel struct {
	width       int
	patName     string
	provider    string
	currentRepo string
	currentPR   string
	prStatus    string
	canComment  bool
	stats       CommentStats
	currentView string
	shortcuts   []string
}

const (
	topBarRows      = 4
	contextColWidth = 45
	colMargin       = 4
)

var (
	titleStyle        = lipgloss.NewStyle().Padding(0, 2)
	titleOrangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetActivePAT(pat, provider string) {
	m.patName = pat
	m.provider = provider
}

func (m *TopBarModel) SetContext(repo, pr string) {
	m.currentRepo = repo
	m.currentPR = pr
}

func (m *TopBarModel) SetPRStatus(status string, canComment bool) {
	m.prStatus = status
	m.canComment = canComment
}

func (m *TopBarModel) SetCommentStats(stats CommentStats) {
	m.stats = stats
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

// Height is the number of terminal rows View occupies.
func (m *TopBarModel) Height() int {
	return topBarRows + 2
}

func (m *TopBarModel) View() string {
	contextLines := m.buildContextInfo()
	shortcutCol1, shortcutCol2, col1Width := m.buildShortcutsDisplay()

	rows := []string{titleOrangeStyle.Render("lgtmthreads"), ""}
	for i := 0; i < topBarRows; i++ {
		var contextCol, sc1, sc2 string
		if i < len(contextLines) {
			contextCol = contextLines[i]
		}
		if i < len(shortcutCol1) {
			sc1 = shortcutCol1[i]
		}
		if i < len(shortcutCol2) {
			sc2 = shortcutCol2[i]
		}

		padding1 := contextColWidth - lipgloss.Width(contextCol)
		if padding1 < 1 {
			padding1 = 1
		}
		line := contextCol + strings.Repeat(" ", padding1) + sc1

		if sc2 != "" {
			padding2 := col1Width - lipgloss.Width(sc1) + colMargin
			if padding2 < colMargin {
				padding2 = colMargin
			}
			line += strings.Repeat(" ", padding2) + sc2
		}
		rows = append(rows, line)
	}

	return titleStyle.Width(m.width).Render(strings.Join(rows, "\n"))
}

func (m *TopBarModel) buildContextInfo() []string {
	patName := "none"
	if m.patName != "" {
		patName = m.patName
		if m.provider != "" {
			patName = fmt.Sprintf("%s (%s)", patName, m.provider)
		}
		if len(patName) > 35 {
			patName = patName[:32] + "..."
		}
	}
	lines := []string{
		"🔑 " + titleOrangeStyle.Render("PAT: ") + valueWhiteStyle.Render(patName),
	}

	if m.currentRepo != "" {
		prValue := fmt.Sprintf("%s #%s", m.currentRepo, m.currentPR)
		if m.prStatus != "" {
			statusColor := lipgloss.Color("214")
			switch m.prStatus {
			case "merged":
				statusColor = lipgloss.Color("10")
			case "closed":
				statusColor = lipgloss.Color("8")
			}
			badge := strings.ToUpper(m.prStatus)
			if !m.canComment {
				badge += " 🔒"
			}
			prValue += " " + lipgloss.NewStyle().Foreground(statusColor).Bold(true).Render("["+badge+"]")
		}
		lines = append(lines, "📋 "+titleOrangeStyle.Render("PR: ")+valueWhiteStyle.Render(prValue))
	}

	comments := fmt.Sprintf("%d", m.stats.Total)
	var extra []string
	if m.stats.OpenTODO > 0 {
		extra = append(extra, fmt.Sprintf("%d todo", m.stats.OpenTODO))
	}
	if m.stats.Done > 0 {
		extra = append(extra, fmt.Sprintf("%d done", m.stats.Done))
	}
	if m.stats.Outdated > 0 {
		extra = append(extra, fmt.Sprintf("%d outdated", m.stats.Outdated))
	}
	if len(extra) > 0 {
		comments += " " + descGrayStyle.Render("("+strings.Join(extra, ", ")+")")
	}
	lines = append(lines, "💬 "+titleOrangeStyle.Render("Comments: ")+valueWhiteStyle.Render(comments))

	viewName := m.currentView
	if viewName == "" {
		viewName = "Diff"
	}
	lines = append(lines, "🎯 "+titleOrangeStyle.Render("View: ")+valueWhiteStyle.Render(viewName))

	return lines
}

// buildShortcutsDisplay lays "<key> description" entries out in two
// columns of topBarRows rows.
func (m *TopBarModel) buildShortcutsDisplay() ([]string, []string, int) {
	var formatted []string
	maxWidth := 0

	for _, shortcut := range m.shortcuts {
		key, desc, ok := strings.Cut(shortcut, ">")
		if !ok {
			continue
		}
		key = strings.TrimPrefix(key, "<")
		entry := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(strings.TrimSpace(desc))
		formatted = append(formatted, entry)
		if w := lipgloss.Width(entry); w > maxWidth {
			maxWidth = w
		}
	}

	if len(formatted) <= topBarRows {
		return formatted, nil, maxWidth
	}
	return formatted[:topBarRows], formatted[topBarRows:], maxWidth
}
