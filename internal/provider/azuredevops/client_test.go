package azuredevops

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

type mockGitClient struct {
	repository       *git.GitRepository
	pullRequest      *git.GitPullRequest
	iterations       *[]git.GitPullRequestIteration
	iterationChanges *git.GitPullRequestIterationChanges
	blobContent      map[string]string
	threads          *[]git.GitPullRequestCommentThread
	getIterationsErr error
	getChangesErr    error
	getBlobErr       error
	createErr        error

	mu              sync.Mutex
	repositoryCalls int
	createdThreads  []git.CreateThreadArgs
	createdComments []git.CreateCommentArgs
	updatedComments []git.UpdateCommentArgs
	updatedThreads  []git.UpdateThreadArgs
	deletedComments []git.DeleteCommentArgs
}

func (m *mockGitClient) GetRepositories(ctx context.Context, args git.GetRepositoriesArgs) (*[]git.GitRepository, error) {
	return &[]git.GitRepository{}, nil
}

func (m *mockGitClient) GetRepository(ctx context.Context, args git.GetRepositoryArgs) (*git.GitRepository, error) {
	m.mu.Lock()
	m.repositoryCalls++
	m.mu.Unlock()
	if m.repository == nil {
		return nil, errors.New("TF401019: repository does not exist")
	}
	return m.repository, nil
}

func (m *mockGitClient) GetPullRequest(ctx context.Context, args git.GetPullRequestArgs) (*git.GitPullRequest, error) {
	return m.pullRequest, nil
}

func (m *mockGitClient) GetPullRequestIterations(ctx context.Context, args git.GetPullRequestIterationsArgs) (*[]git.GitPullRequestIteration, error) {
	if m.getIterationsErr != nil {
		return nil, m.getIterationsErr
	}
	return m.iterations, nil
}

func (m *mockGitClient) GetPullRequestIterationChanges(ctx context.Context, args git.GetPullRequestIterationChangesArgs) (*git.GitPullRequestIterationChanges, error) {
	if m.getChangesErr != nil {
		return nil, m.getChangesErr
	}
	return m.iterationChanges, nil
}

func (m *mockGitClient) GetBlobContent(ctx context.Context, args git.GetBlobContentArgs) (io.ReadCloser, error) {
	if m.getBlobErr != nil {
		return nil, m.getBlobErr
	}
	if args.Sha1 == nil {
		return nil, nil
	}
	content, exists := m.blobContent[*args.Sha1]
	if !exists {
		return nil, nil
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (m *mockGitClient) GetThreads(ctx context.Context, args git.GetThreadsArgs) (*[]git.GitPullRequestCommentThread, error) {
	return m.threads, nil
}

func (m *mockGitClient) CreateThread(ctx context.Context, args git.CreateThreadArgs) (*git.GitPullRequestCommentThread, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdThreads = append(m.createdThreads, args)
	thread := *args.CommentThread
	thread.Id = intPtr(77)
	comments := *thread.Comments
	comments[0].Id = intPtr(1)
	comments[0].Author = identity("alice")
	thread.Comments = &comments
	return &thread, nil
}

func (m *mockGitClient) UpdateThread(ctx context.Context, args git.UpdateThreadArgs) (*git.GitPullRequestCommentThread, error) {
	m.updatedThreads = append(m.updatedThreads, args)
	return args.CommentThread, nil
}

func (m *mockGitClient) CreateComment(ctx context.Context, args git.CreateCommentArgs) (*git.Comment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdComments = append(m.createdComments, args)
	comment := *args.Comment
	comment.Id = intPtr(5)
	comment.Author = identity("alice")
	return &comment, nil
}

func (m *mockGitClient) UpdateComment(ctx context.Context, args git.UpdateCommentArgs) (*git.Comment, error) {
	m.updatedComments = append(m.updatedComments, args)
	return args.Comment, nil
}

func (m *mockGitClient) DeleteComment(ctx context.Context, args git.DeleteCommentArgs) error {
	m.deletedComments = append(m.deletedComments, args)
	return nil
}

func intPtr(i int) *int { return &i }

func changesFor(changeType git.VersionControlChangeType, item map[string]interface{}) *git.GitPullRequestIterationChanges {
	return &git.GitPullRequestIterationChanges{
		ChangeEntries: &[]git.GitPullRequestChange{{ChangeType: &changeType, Item: item}},
	}
}

func TestGetPullRequestIterationChanges_AddedFile(t *testing.T) {
	mockClient := &mockGitClient{
		iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}},
		iterationChanges: changesFor(git.VersionControlChangeTypeValues.Add, map[string]interface{}{
			"path":     "/src/newfile.go",
			"objectId": "abc123",
			"isFolder": false,
		}),
		blobContent: map[string]string{
			"abc123": "package main\n\nfunc main() {\n\tprintln(\"Hello\")\n}",
		},
	}
	client := &Client{gitClient: mockClient}

	result, err := client.GetPullRequestIterationChanges(context.Background(), "project1", "repo1", 42)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, want := range []string{
		"diff --git a/src/newfile.go b/src/newfile.go",
		"--- /dev/null",
		"+++ b/src/newfile.go",
		"@@ -0,0 +1,5 @@",
		"+package main",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in diff:\n%s", want, result)
		}
	}
}

func TestGetPullRequestIterationChanges_DeletedFile(t *testing.T) {
	mockClient := &mockGitClient{
		iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}},
		iterationChanges: changesFor(git.VersionControlChangeTypeValues.Delete, map[string]interface{}{
			"path":             "/src/oldfile.go",
			"originalObjectId": "def456",
			"isFolder":         false,
			"originalPath":     "/src/oldfile.go",
		}),
		blobContent: map[string]string{
			"def456": "package main\n\nfunc old() {\n\tprintln(\"Goodbye\")\n}",
		},
	}
	client := &Client{gitClient: mockClient}

	result, err := client.GetPullRequestIterationChanges(context.Background(), "project1", "repo1", 42)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, want := range []string{
		"diff --git a/src/oldfile.go b/src/oldfile.go",
		"--- a/src/oldfile.go",
		"+++ /dev/null",
		"-package main",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in diff:\n%s", want, result)
		}
	}
}

func TestGetPullRequestIterationChanges_EditedFile(t *testing.T) {
	mockClient := &mockGitClient{
		iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}, {Id: intPtr(2)}},
		iterationChanges: changesFor(git.VersionControlChangeTypeValues.Edit, map[string]interface{}{
			"path":             "/src/modified.go",
			"objectId":         "new789",
			"originalObjectId": "old789",
			"isFolder":         false,
			"originalPath":     "/src/modified.go",
		}),
		blobContent: map[string]string{
			"old789": "package main\n\nfunc hello() {\n\tprintln(\"Hello\")\n}\n",
			"new789": "package main\n\nfunc hello() {\n\tprintln(\"Hello World\")\n}\n",
		},
	}
	client := &Client{gitClient: mockClient}

	result, err := client.GetPullRequestIterationChanges(context.Background(), "project1", "repo1", 42)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, want := range []string{
		"diff --git a/src/modified.go b/src/modified.go",
		"--- a/src/modified.go",
		"+++ b/src/modified.go",
		"@@ -1,5 +1,5 @@",
		"-\tprintln(\"Hello\")",
		"+\tprintln(\"Hello World\")",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in diff:\n%s", want, result)
		}
	}
}

func TestGetPullRequestIterationChanges_SkipsFolders(t *testing.T) {
	mockClient := &mockGitClient{
		iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}},
		iterationChanges: changesFor(git.VersionControlChangeTypeValues.Add, map[string]interface{}{
			"path":     "/src",
			"isFolder": true,
		}),
	}
	client := &Client{gitClient: mockClient}

	result, err := client.GetPullRequestIterationChanges(context.Background(), "project1", "repo1", 42)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty result for folder changes, got: %s", result)
	}
}

func TestGetPullRequestIterationChanges_Errors(t *testing.T) {
	blobErr := errors.New("blob unavailable")

	tests := []struct {
		name    string
		client  *mockGitClient
		wantErr error
	}{
		{
			name:    "no iterations",
			client:  &mockGitClient{iterations: &[]git.GitPullRequestIteration{}},
			wantErr: ErrNoIterations,
		},
		{
			name:    "no changes",
			client:  &mockGitClient{iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}}},
			wantErr: ErrNoChanges,
		},
		{
			name: "blob failure",
			client: &mockGitClient{
				iterations: &[]git.GitPullRequestIteration{{Id: intPtr(1)}},
				iterationChanges: changesFor(git.VersionControlChangeTypeValues.Add, map[string]interface{}{
					"path": "/a.go", "objectId": "x",
				}),
				getBlobErr: blobErr,
			},
			wantErr: blobErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{gitClient: tt.client}
			_, err := client.GetPullRequestIterationChanges(context.Background(), "p", "r", 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
