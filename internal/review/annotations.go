package review

import "github.com/johanforsgren/lgtmthreads/internal/domain"

// Annotation is what a diff renderer attaches to one anchor.
type Annotation struct {
	CommentIDs []string
	EditorOpen bool
}

func (a Annotation) Empty() bool {
	return len(a.CommentIDs) == 0 && !a.EditorOpen
}

// Annotator answers the renderer's per-anchor queries against one state
// snapshot. Every query is a direct map lookup; a region without comments
// yields an empty Annotation.
type Annotator struct {
	state   State
	editors *Editors
}

func NewAnnotator(state State, editors *Editors) Annotator {
	return Annotator{state: state, editors: editors}
}

func (a Annotator) ForFile(path string) Annotation {
	return Annotation{
		CommentIDs: a.state.FileComments(path),
		EditorOpen: a.editorOpen(FileAnchor(path)),
	}
}

func (a Annotator) ForChange(hunk HunkID, change ChangeID) Annotation {
	return Annotation{
		CommentIDs: a.state.LineComments(hunk, change),
		EditorOpen: a.editorOpen(LineAnchor(hunk, change)),
	}
}

// ForLine is ForChange for a rendered diff line.
func (a Annotator) ForLine(file, hunkHeader string, line domain.DiffLine) Annotation {
	change, err := ChangeIDFor(LocationForLine(file, hunkHeader, line))
	if err != nil {
		return Annotation{}
	}
	return a.ForChange(HunkIDFor(file, hunkHeader), change)
}

func (a Annotator) Comment(id string) (*domain.Comment, bool) {
	return a.state.Comment(id)
}

func (a Annotator) ReplyEditorOpen(parentID string) bool {
	return a.editorOpen(ReplyAnchor(parentID))
}

func (a Annotator) editorOpen(anchor Anchor) bool {
	return a.editors != nil && a.editors.IsOpen(anchor)
}
