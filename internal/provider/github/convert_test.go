package github

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v57/github"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
)

const testDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@ package main
 import "fmt"
-func old() {}
+func main() {}
+func helper() {}
 // end`

func reviewComment(id int64, opts func(c *github.PullRequestComment)) *github.PullRequestComment {
	c := &github.PullRequestComment{
		ID:       github.Int64(id),
		Body:     github.String("body"),
		Path:     github.String("main.go"),
		DiffHunk: github.String("@@ -1,3 +1,4 @@ package main\n import \"fmt\""),
		Side:     github.String("RIGHT"),
		Line:     github.Int(2),
		User:     &github.User{Login: github.String("alice")},
	}
	if opts != nil {
		opts(c)
	}
	return c
}

func TestReviewLocation(t *testing.T) {
	idx := common.NewAnchorIndex(common.ParseUnifiedDiff(testDiff))
	header := "@@ -1,3 +1,4 @@ package main"

	tests := []struct {
		name         string
		comment      *github.PullRequestComment
		want         *domain.Location
		wantOutdated bool
	}{
		{
			name:    "added line",
			comment: reviewComment(1, nil),
			want:    &domain.Location{File: "main.go", Hunk: header, NewLineNumber: 2},
		},
		{
			name:    "context line gets both numbers",
			comment: reviewComment(1, func(c *github.PullRequestComment) { c.Line = github.Int(1) }),
			want:    &domain.Location{File: "main.go", Hunk: header, OldLineNumber: 1, NewLineNumber: 1},
		},
		{
			name: "deleted line",
			comment: reviewComment(1, func(c *github.PullRequestComment) {
				c.Side = github.String("LEFT")
				c.Line = github.Int(2)
			}),
			want: &domain.Location{File: "main.go", Hunk: header, OldLineNumber: 2},
		},
		{
			name: "file level",
			comment: reviewComment(1, func(c *github.PullRequestComment) {
				c.SubjectType = github.String("file")
				c.Line = nil
			}),
			want: &domain.Location{File: "main.go"},
		},
		{
			name: "line gone on GitHub",
			comment: reviewComment(1, func(c *github.PullRequestComment) {
				c.Line = nil
				c.OriginalLine = github.Int(9)
			}),
			want:         &domain.Location{File: "main.go", Hunk: header, NewLineNumber: 9},
			wantOutdated: true,
		},
		{
			name:         "line missing from current diff",
			comment:      reviewComment(1, func(c *github.PullRequestComment) { c.Line = github.Int(40) }),
			want:         &domain.Location{File: "main.go", Hunk: header, NewLineNumber: 40},
			wantOutdated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outdated := reviewLocation(tt.comment, idx)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("reviewLocation() mismatch (-want +got):\n%s", diff)
			}
			if outdated != tt.wantOutdated {
				t.Errorf("outdated = %v, want %v", outdated, tt.wantOutdated)
			}
		})
	}
}

func TestBuildThreads(t *testing.T) {
	comments := []*github.PullRequestComment{
		reviewComment(1, nil),
		reviewComment(2, func(c *github.PullRequestComment) { c.InReplyTo = github.Int64(1) }),
		reviewComment(3, func(c *github.PullRequestComment) { c.Line = github.Int(3) }),
		reviewComment(4, func(c *github.PullRequestComment) { c.InReplyTo = github.Int64(2) }),
		reviewComment(5, func(c *github.PullRequestComment) { c.InReplyTo = github.Int64(99) }),
	}

	threads := buildThreads(comments, nil, "alice")

	var ids []string
	for _, c := range threads {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"review:1", "review:3", "review:5"}, ids); diff != "" {
		t.Fatalf("roots mismatch (-want +got):\n%s", diff)
	}

	var replyIDs []string
	for _, r := range threads[0].Replies {
		replyIDs = append(replyIDs, r.ID)
	}
	if diff := cmp.Diff([]string{"review:2", "review:4"}, replyIDs); diff != "" {
		t.Errorf("replies mismatch (-want +got):\n%s", diff)
	}
	if len(threads[1].Replies) != 0 || threads[1].Replies == nil {
		t.Errorf("expected empty non-nil replies, got %v", threads[1].Replies)
	}
	if !threads[0].Actions.Update || !threads[0].Actions.Reply {
		t.Errorf("expected own comment to be editable and repliable, got %+v", threads[0].Actions)
	}
}

func TestParseCommentID(t *testing.T) {
	kind, n, err := parseCommentID("issue:42")
	if err != nil || kind != kindIssue || n != 42 {
		t.Errorf("parseCommentID() = %q, %d, %v", kind, n, err)
	}

	for _, bad := range []string{"42", "review:", "pr:1", "review:x"} {
		if _, _, err := parseCommentID(bad); !errors.Is(err, errBadCommentID) {
			t.Errorf("parseCommentID(%q) error = %v", bad, err)
		}
	}
}

func TestDraftComment(t *testing.T) {
	tests := []struct {
		name     string
		location domain.Location
		wantLine int
		wantSide string
		wantFile bool
	}{
		{"context uses new side", domain.Location{File: "a.go", Hunk: "@@", OldLineNumber: 3, NewLineNumber: 4}, 4, "RIGHT", false},
		{"deleted uses old side", domain.Location{File: "a.go", Hunk: "@@", OldLineNumber: 3}, 3, "LEFT", false},
		{"file level", domain.Location{File: "a.go"}, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := tt.location
			got := draftComment(domain.CommentDraft{Text: "x", Location: &loc}, "sha")
			if got.GetLine() != tt.wantLine || got.GetSide() != tt.wantSide {
				t.Errorf("line/side = %d/%q, want %d/%q", got.GetLine(), got.GetSide(), tt.wantLine, tt.wantSide)
			}
			if (got.GetSubjectType() == "file") != tt.wantFile {
				t.Errorf("subject type = %q", got.GetSubjectType())
			}
			if got.GetCommitID() != "sha" {
				t.Errorf("commit id = %q", got.GetCommitID())
			}
		})
	}
}
