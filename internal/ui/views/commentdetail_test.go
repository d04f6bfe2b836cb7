package views

import (
	"strings"
	"testing"
	"time"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
	"github.com/johanforsgren/lgtmthreads/internal/ui/markdown"
)

func newTestDetailView(t *testing.T, comments []domain.Comment) (*CommentDetailViewModel, review.State) {
	t.Helper()
	state, err := review.Normalize(comments)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	view := NewCommentDetailView(markdown.NewRenderer(markdown.DefaultPalette()))
	view.SetSize(100, 200)
	return view, state
}

func TestNewCommentDetailView_InitializesInactive(t *testing.T) {
	view := NewCommentDetailView(markdown.NewRenderer(markdown.DefaultPalette()))

	if view.IsActive() {
		t.Error("expected new comment detail view to be inactive")
	}
	if view.View() != "" {
		t.Error("expected empty view when inactive")
	}
}

func TestCommentDetailView_ActivateDeactivate(t *testing.T) {
	view, state := newTestDetailView(t, testComments())

	view.Activate(state, testDiff())
	if !view.IsActive() {
		t.Error("expected view to be active after Activate()")
	}

	view.Deactivate()
	if view.IsActive() {
		t.Error("expected view to be inactive after Deactivate()")
	}
}

func TestCommentDetailView_ConversationFirst(t *testing.T) {
	comments := append(testComments(), domain.Comment{
		ID:     "c4",
		Text:   "Overall looks fine",
		Author: domain.User{Username: "dave"},
		Date:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	view, state := newTestDetailView(t, comments)
	view.Activate(state, testDiff())

	output := plain(view.View())
	conversation := strings.Index(output, "Conversation")
	overall := strings.Index(output, "Overall looks fine")
	file := strings.Index(output, "a.go")
	if conversation < 0 || overall < 0 || file < 0 {
		t.Fatalf("missing sections:\n%s", output)
	}
	if !(conversation < overall && overall < file) {
		t.Error("expected conversation comments before file threads")
	}
}

func TestCommentDetailView_GroupsByFile(t *testing.T) {
	view, state := newTestDetailView(t, testComments())
	view.Activate(state, testDiff())

	output := plain(view.View())
	for _, want := range []string{"Comments (3)", "Why two?", "Because", "File note", "Stale remark", "(outdated)", "[TODO]"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in overview", want)
		}
	}
	if strings.Contains(output, "Conversation") {
		t.Error("no conversation section without unplaced comments")
	}
}

func TestCommentDetailView_CodeContextMatchesChange(t *testing.T) {
	view, state := newTestDetailView(t, testComments())
	view.Activate(state, testDiff())

	output := plain(view.View())
	if !strings.Contains(output, "+var x = 2") {
		t.Error("expected the inserted line as context")
	}
	if strings.Contains(output, "-var x = 1") {
		t.Error("the deleted line with the same number must not be used")
	}
}

func TestCommentDetailView_Empty(t *testing.T) {
	view, state := newTestDetailView(t, nil)
	view.Activate(state, nil)

	if !strings.Contains(plain(view.View()), "No comments on this PR") {
		t.Error("expected empty message")
	}
}

func TestCommentDetailView_Refresh(t *testing.T) {
	view, state := newTestDetailView(t, testComments())

	view.Refresh(state)
	if view.IsActive() {
		t.Error("Refresh must not activate the view")
	}

	view.Activate(state, testDiff())
	next, err := review.Reduce(state, review.DeleteComment{Comment: *state.Comments["c2"]})
	if err != nil {
		t.Fatal(err)
	}
	view.Refresh(next)
	if strings.Contains(plain(view.View()), "File note") {
		t.Error("expected deleted comment gone after refresh")
	}
}

func TestConversationIDs_OrderedByDate(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	state, err := review.Normalize([]domain.Comment{
		{ID: "late", Date: early.Add(time.Hour)},
		{ID: "early", Date: early},
		{ID: "placed", Location: &domain.Location{File: "a.go"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	ids := conversationIDs(state)
	if len(ids) != 2 || ids[0] != "early" || ids[1] != "late" {
		t.Errorf("conversationIDs() = %v", ids)
	}
}
