package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
)

const minWidth = 20

// Renderer renders comment bodies. The glamour renderer is built lazily
// and rebuilt only when the width changes.
type Renderer struct {
	palette Palette
	width   int
	term    *glamour.TermRenderer
}

func NewRenderer(palette Palette) *Renderer {
	return &Renderer{
		palette: palette,
		width:   80,
	}
}

func (r *Renderer) SetWidth(width int) {
	if width < minWidth {
		width = minWidth
	}
	if width != r.width {
		r.width = width
		r.term = nil
	}
}

func (r *Renderer) Width() int {
	return r.width
}

// Render falls back to the raw text when glamour fails, so a comment is
// never hidden by a rendering problem.
func (r *Renderer) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if r.term == nil {
		term, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.palette.StyleConfig()),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			logger.LogError("MARKDOWN_INIT", "", err)
			return text
		}
		r.term = term
	}

	rendered, err := r.term.Render(text)
	if err != nil {
		logger.LogError("MARKDOWN_RENDER", "", err)
		return text
	}
	return strings.Trim(rendered, "\n")
}
