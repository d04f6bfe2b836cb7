package markdown

import "github.com/charmbracelet/glamour/ansi"

// Palette holds the hex colors comment bodies are rendered with.
type Palette struct {
	Heading        string
	Text           string
	Muted          string
	Code           string
	CodeBackground string
	Link           string
	Bullet         string
}

func DefaultPalette() Palette {
	return Palette{
		Heading:        "#7C3AED",
		Text:           "#F9FAFB",
		Muted:          "#6B7280",
		Code:           "#F59E0B",
		CodeBackground: "#1F2937",
		Link:           "#06B6D4",
		Bullet:         "#10B981",
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func uintPtr(u uint) *uint { return &u }

// StyleConfig turns the palette into a glamour style. Headings drop their
// markdown prefix and documents carry no margin, since comment bodies are
// embedded in an already indented thread.
func (p Palette) StyleConfig() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: strPtr(p.Text)},
			Margin:         uintPtr(0),
		},
		BlockQuote: ansi.StyleBlock{
			Indent:      uintPtr(1),
			IndentToken: strPtr("│ "),
			StylePrimitive: ansi.StylePrimitive{
				Color:  strPtr(p.Muted),
				Italic: boolPtr(true),
			},
		},
		Paragraph: ansi.StyleBlock{},
		List:      ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: strPtr(p.Heading),
				Bold:  boolPtr(true),
			},
		},
		Strikethrough: ansi.StylePrimitive{CrossedOut: boolPtr(true)},
		Emph:          ansi.StylePrimitive{Italic: boolPtr(true)},
		Strong:        ansi.StylePrimitive{Bold: boolPtr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  strPtr(p.Muted),
			Format: "\n────────\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
			Color:       strPtr(p.Text),
		},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Task: ansi.StyleTask{
			Ticked:   "[✓] ",
			Unticked: "[ ] ",
		},
		Link: ansi.StylePrimitive{
			Color:     strPtr(p.Muted),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: strPtr(p.Link),
			Bold:  boolPtr(true),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           strPtr(p.Code),
				BackgroundColor: strPtr(p.CodeBackground),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: strPtr(p.Code)},
				Margin:         uintPtr(0),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: strPtr("┼"),
			ColumnSeparator: strPtr("│"),
			RowSeparator:    strPtr("─"),
		},
	}
}
