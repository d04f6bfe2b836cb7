package review

import (
	"testing"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

func TestSession_LoadSetsPermission(t *testing.T) {
	s := NewSession(SessionOptions{})

	err := s.Load(domain.CommentCollection{
		Comments:  []domain.Comment{fileComment("one", "file.txt")},
		CanCreate: true,
	})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !s.Editors.CommentingPermitted() {
		t.Error("expected commenting permitted")
	}
	if got := s.Annotator().ForFile("file.txt").CommentIDs; len(got) != 1 {
		t.Errorf("expected one file comment, got %v", got)
	}
}

func TestSession_CommentCreatedClosesEditorAfterStore(t *testing.T) {
	s := NewSession(SessionOptions{})
	_ = s.Load(domain.CommentCollection{CanCreate: true})

	created := lineComment("new", "a.go", "H", 0, 5)
	anchor, err := AnchorFor(*created.Location)
	if err != nil {
		t.Fatalf("AnchorFor() unexpected error: %v", err)
	}

	_ = s.Editors.Open(anchor)
	_ = s.Editors.Submit(anchor)
	if !s.Annotator().ForChange(anchor.Hunk, anchor.Change).EditorOpen {
		t.Fatal("expected editor open while submitting")
	}

	if err := s.CommentCreated(anchor, created); err != nil {
		t.Fatalf("CommentCreated() unexpected error: %v", err)
	}

	ann := s.Annotator().ForChange(anchor.Hunk, anchor.Change)
	if ann.EditorOpen {
		t.Error("expected editor closed after comment stored")
	}
	if len(ann.CommentIDs) != 1 || ann.CommentIDs[0] != "new" {
		t.Errorf("CommentIDs = %v, want [new]", ann.CommentIDs)
	}
}

func TestSession_CommentCreatedInvalidLocationKeepsEditor(t *testing.T) {
	s := NewSession(SessionOptions{})
	_ = s.Load(domain.CommentCollection{CanCreate: true})
	anchor := FileAnchor("a.go")
	_ = s.Editors.Open(anchor)
	_ = s.Editors.Submit(anchor)

	if err := s.CommentCreated(anchor, lineComment("bad", "a.go", "H", 0, 0)); err == nil {
		t.Fatal("expected error for invalid location")
	}
	if got := s.Editors.Status(anchor); got != EditorSubmitting {
		t.Errorf("status = %v, want submitting", got)
	}
}

func TestSession_CommentFailedReturnsToEditing(t *testing.T) {
	s := NewSession(SessionOptions{})
	_ = s.Load(domain.CommentCollection{CanCreate: true})
	anchor := FileAnchor("a.go")
	_ = s.Editors.Open(anchor)
	_ = s.Editors.Submit(anchor)

	if err := s.CommentFailed(anchor); err != nil {
		t.Fatalf("CommentFailed() unexpected error: %v", err)
	}
	if got := s.Editors.Status(anchor); got != EditorEditing {
		t.Errorf("status = %v, want editing", got)
	}
}

func TestSession_RefreshSuppressedWhileEditing(t *testing.T) {
	s := NewSession(SessionOptions{SuppressRefreshWhileEditing: true})
	_ = s.Load(domain.CommentCollection{CanCreate: true, Comments: []domain.Comment{fileComment("a", "x.go")}})
	_ = s.Editors.Open(FileAnchor("x.go"))

	applied, err := s.Refresh(domain.CommentCollection{CanCreate: true})
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if applied {
		t.Error("expected refresh to be skipped while editing")
	}
	if _, ok := s.Store.State().Comment("a"); !ok {
		t.Error("expected state untouched")
	}

	_ = s.Editors.Cancel(FileAnchor("x.go"))
	applied, _ = s.Refresh(domain.CommentCollection{CanCreate: true})
	if !applied {
		t.Error("expected refresh applied once editing stopped")
	}
	if s.Store.State().Len() != 0 {
		t.Error("expected refresh to replace state")
	}
}

func TestSession_ReplyLifecycle(t *testing.T) {
	s := NewSession(SessionOptions{})
	_ = s.Load(domain.CommentCollection{Comments: []domain.Comment{fileComment("p", "x.go")}})
	anchor := ReplyAnchor("p")
	_ = s.Editors.Open(anchor)
	_ = s.Editors.Submit(anchor)

	if err := s.ReplyCreated("p", reply("r1")); err != nil {
		t.Fatalf("ReplyCreated() unexpected error: %v", err)
	}
	if s.Editors.IsOpen(anchor) {
		t.Error("expected reply editor closed")
	}

	edited := reply("r1")
	edited.Text = "edited"
	_ = s.ReplyUpdated("p", edited)
	c, _ := s.Store.State().Comment("p")
	if c.Replies[0].Text != "edited" {
		t.Errorf("reply text = %q, want edited", c.Replies[0].Text)
	}

	_ = s.ReplyDeleted("p", edited)
	_ = s.CommentDeleted(domain.Comment{ID: "p"})
	if s.Store.State().Len() != 0 {
		t.Error("expected empty state")
	}
}
