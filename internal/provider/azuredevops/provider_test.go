package azuredevops

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/johanforsgren/lgtmthreads/internal/review"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

var testPR = domain.PRIdentifier{Provider: domain.ProviderAzureDevOps, Repository: "TestProject/TestRepo", Number: 42}

func createMockPR(prID int, title string, webURL *string) *git.GitPullRequest {
	status := git.PullRequestStatusValues.Active
	pr := &git.GitPullRequest{
		PullRequestId: &prID,
		Title:         &title,
		CreationDate:  &azuredevops.Time{Time: time.Now()},
		Status:        &status,
		SourceRefName: strPtr("refs/heads/feature/x"),
		TargetRefName: strPtr("refs/heads/main"),
		Repository:    testRepository(),
	}
	pr.Repository.WebUrl = webURL
	return pr
}

func newTestProvider(mock *mockGitClient) *Provider {
	if mock.repository == nil {
		mock.repository = testRepository()
	}
	return newProvider(&Client{gitClient: mock, username: "alice"})
}

func TestConvertPullRequest(t *testing.T) {
	webURL := "https://dev.azure.com/myorg/TestProject/_git/TestRepo"
	pr := convertPullRequest(createMockPR(123, "Add feature", &webURL))

	if pr.URL != webURL+"/pullrequest/123" {
		t.Errorf("URL = %q", pr.URL)
	}
	if pr.SourceBranch != "feature/x" || pr.TargetBranch != "main" {
		t.Errorf("branches = %q -> %q", pr.SourceBranch, pr.TargetBranch)
	}
	if pr.Repository.FullName != "TestProject/TestRepo" {
		t.Errorf("repository = %q", pr.Repository.FullName)
	}
	if pr.Status != domain.PRStatusOpen {
		t.Errorf("status = %v", pr.Status)
	}

	if got := convertPullRequest(createMockPR(1, "no url", nil)).URL; got != "" {
		t.Errorf("expected empty URL without web URL, got %q", got)
	}
}

func TestMapPRStatus(t *testing.T) {
	succeeded := git.PullRequestAsyncStatusValues.Succeeded
	tests := []struct {
		status *git.PullRequestStatus
		merge  *git.PullRequestAsyncStatus
		want   domain.PRStatus
	}{
		{nil, nil, domain.PRStatusOpen},
		{common.Ptr(git.PullRequestStatusValues.Active), nil, domain.PRStatusOpen},
		{common.Ptr(git.PullRequestStatusValues.Completed), &succeeded, domain.PRStatusMerged},
		{common.Ptr(git.PullRequestStatusValues.Completed), nil, domain.PRStatusClosed},
		{common.Ptr(git.PullRequestStatusValues.Abandoned), nil, domain.PRStatusClosed},
	}
	for _, tt := range tests {
		if got := mapPRStatus(tt.status, tt.merge); got != tt.want {
			t.Errorf("mapPRStatus(%v, %v) = %v, want %v", common.Deref(tt.status), common.Deref(tt.merge), got, tt.want)
		}
	}
}

func TestProvider_GetCommentsFeedsNormalize(t *testing.T) {
	mock := &mockGitClient{
		pullRequest: createMockPR(42, "t", nil),
		threads: &[]git.GitPullRequestCommentThread{
			{
				Id:            intPtr(1),
				ThreadContext: &git.CommentThreadContext{FilePath: strPtr("/src/app.go"), RightFileStart: position(2)},
				Comments:      &[]git.Comment{textComment(1, "bob", "inline"), textComment(2, "alice", "ack")},
			},
			{
				Id:            intPtr(2),
				ThreadContext: &git.CommentThreadContext{FilePath: strPtr("/src/app.go")},
				Comments:      &[]git.Comment{textComment(1, "bob", "file")},
			},
			{
				Id:            intPtr(3),
				ThreadContext: &git.CommentThreadContext{FilePath: strPtr("/src/app.go"), RightFileStart: position(80)},
				Comments:      &[]git.Comment{textComment(1, "bob", "stale")},
			},
		},
	}
	p := newTestProvider(mock)

	collection, err := p.GetComments(context.Background(), testPR, common.ParseUnifiedDiff(testDiff))
	if err != nil {
		t.Fatalf("GetComments() unexpected error: %v", err)
	}
	if !collection.CanCreate {
		t.Error("expected commenting permitted on an active PR")
	}

	state, err := review.Normalize(collection.Comments)
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if got := state.LineComments("src/app.go_@@ -1,3 +1,3 @@", "I2"); len(got) != 1 || got[0] != "1/1" {
		t.Errorf("line bucket = %v, want [1/1]", got)
	}
	if got := state.FileComments("src/app.go"); len(got) != 2 {
		t.Errorf("file bucket = %v, want the file comment and the outdated one", got)
	}
}

func TestProvider_ClosedPRDisallowsCommenting(t *testing.T) {
	pr := createMockPR(42, "t", nil)
	pr.Status = common.Ptr(git.PullRequestStatusValues.Abandoned)
	p := newTestProvider(&mockGitClient{pullRequest: pr})

	collection, err := p.GetComments(context.Background(), testPR, nil)
	if err != nil {
		t.Fatalf("GetComments() unexpected error: %v", err)
	}
	if collection.CanCreate {
		t.Error("expected commenting disallowed on an abandoned PR")
	}
	if collection.Comments == nil {
		t.Error("expected empty, non-nil comments")
	}
}

func TestProvider_CreateComment(t *testing.T) {
	mock := &mockGitClient{}
	p := newTestProvider(mock)

	loc := &domain.Location{File: "src/app.go", Hunk: "@@ -1,3 +1,3 @@", OldLineNumber: 3, NewLineNumber: 3}
	comment, err := p.CreateComment(context.Background(), testPR, domain.CommentDraft{
		Text: "please fix", Location: loc, Type: domain.CommentTypeTaskTodo,
	})
	if err != nil {
		t.Fatalf("CreateComment() unexpected error: %v", err)
	}

	if len(mock.createdThreads) != 1 {
		t.Fatalf("expected one thread, got %d", len(mock.createdThreads))
	}
	sent := mock.createdThreads[0].CommentThread
	if common.Deref(sent.ThreadContext.FilePath) != "/src/app.go" || common.Deref(sent.ThreadContext.RightFileStart.Line) != 3 {
		t.Errorf("unexpected thread context %+v", sent.ThreadContext)
	}
	if common.Deref(sent.Status) != git.CommentThreadStatusValues.Pending {
		t.Errorf("status = %v, want pending", common.Deref(sent.Status))
	}

	if comment.ID != "77/1" || comment.Type != domain.CommentTypeTaskTodo || *comment.Location != *loc {
		t.Errorf("unexpected comment %+v", comment)
	}
	if !comment.Actions.Update || len(comment.Replies) != 0 {
		t.Errorf("unexpected actions/replies %+v", comment)
	}
}

func TestProvider_CreateCommentFailure(t *testing.T) {
	p := newTestProvider(&mockGitClient{createErr: errors.New("TF401181: The pull request cannot be edited")})

	if _, err := p.CreateComment(context.Background(), testPR, domain.CommentDraft{Text: "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestProvider_ReplyUpdateDelete(t *testing.T) {
	mock := &mockGitClient{}
	p := newTestProvider(mock)
	ctx := context.Background()
	parent := domain.Comment{ID: "10/1", Type: domain.CommentTypeTaskDone}

	reply, err := p.CreateReply(ctx, testPR, parent, domain.ReplyDraft{Text: "done"})
	if err != nil {
		t.Fatalf("CreateReply() unexpected error: %v", err)
	}
	if reply.ID != "10/5" || reply.Text != "done" {
		t.Errorf("unexpected reply %+v", reply)
	}
	if args := mock.createdComments[0]; *args.ThreadId != 10 || *args.Comment.ParentCommentId != 1 {
		t.Errorf("reply posted to thread %d parent %d", *args.ThreadId, *args.Comment.ParentCommentId)
	}

	parent.Text = "edited"
	parent.Replies = []domain.Reply{*reply}
	updated, err := p.UpdateComment(ctx, testPR, parent)
	if err != nil {
		t.Fatalf("UpdateComment() unexpected error: %v", err)
	}
	if updated.Text != "edited" || updated.Replies != nil {
		t.Errorf("unexpected update %+v", updated)
	}
	if len(mock.updatedThreads) != 1 || *mock.updatedThreads[0].CommentThread.Status != git.CommentThreadStatusValues.Fixed {
		t.Errorf("expected thread marked fixed, got %+v", mock.updatedThreads)
	}

	if err := p.DeleteReply(ctx, testPR, parent, *reply); err != nil {
		t.Fatalf("DeleteReply() unexpected error: %v", err)
	}
	if err := p.DeleteComment(ctx, testPR, parent); err != nil {
		t.Fatalf("DeleteComment() unexpected error: %v", err)
	}
	if len(mock.deletedComments) != 2 || *mock.deletedComments[0].CommentId != 5 || *mock.deletedComments[1].CommentId != 1 {
		t.Errorf("unexpected deletes %+v", mock.deletedComments)
	}

	if err := p.DeleteComment(ctx, testPR, domain.Comment{ID: "bogus"}); !errors.Is(err, errBadCommentID) {
		t.Errorf("DeleteComment(bogus) error = %v", err)
	}
}
