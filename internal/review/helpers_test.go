package review

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

func fileComment(id, file string) domain.Comment {
	return domain.Comment{
		ID:       id,
		Text:     "comment " + id,
		Type:     domain.CommentTypeComment,
		Location: &domain.Location{File: file},
	}
}

func lineComment(id, file, hunk string, oldLine, newLine int) domain.Comment {
	return domain.Comment{
		ID:   id,
		Text: "comment " + id,
		Type: domain.CommentTypeComment,
		Location: &domain.Location{
			File:          file,
			Hunk:          hunk,
			OldLineNumber: oldLine,
			NewLineNumber: newLine,
		},
	}
}

func outdatedComment(id, file, hunk string, newLine int) domain.Comment {
	c := lineComment(id, file, hunk, 0, newLine)
	c.Outdated = true
	return c
}

func conversationComment(id string) domain.Comment {
	return domain.Comment{ID: id, Text: "comment " + id, Type: domain.CommentTypeComment}
}

func reply(id string) domain.Reply {
	return domain.Reply{ID: id, Text: "reply " + id, Type: domain.CommentTypeComment}
}

func mustNormalize(t *testing.T, comments ...domain.Comment) State {
	t.Helper()
	state, err := Normalize(comments)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	return state
}

func mustReduce(t *testing.T, state State, action Action) State {
	t.Helper()
	next, err := Reduce(state, action)
	if err != nil {
		t.Fatalf("Reduce(%T) unexpected error: %v", action, err)
	}
	return next
}

func assertStateEqual(t *testing.T, want, got State) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}
