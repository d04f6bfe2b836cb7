package azuredevops

import (
	"context"
	"io"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

// GitClientInterface is the part of git.Client the provider calls, so
// tests can substitute a fake.
type GitClientInterface interface {
	GetRepositories(ctx context.Context, args git.GetRepositoriesArgs) (*[]git.GitRepository, error)
	GetRepository(ctx context.Context, args git.GetRepositoryArgs) (*git.GitRepository, error)
	GetPullRequest(ctx context.Context, args git.GetPullRequestArgs) (*git.GitPullRequest, error)
	GetPullRequestIterations(ctx context.Context, args git.GetPullRequestIterationsArgs) (*[]git.GitPullRequestIteration, error)
	GetPullRequestIterationChanges(ctx context.Context, args git.GetPullRequestIterationChangesArgs) (*git.GitPullRequestIterationChanges, error)
	GetBlobContent(ctx context.Context, args git.GetBlobContentArgs) (io.ReadCloser, error)
	GetThreads(ctx context.Context, args git.GetThreadsArgs) (*[]git.GitPullRequestCommentThread, error)
	CreateThread(ctx context.Context, args git.CreateThreadArgs) (*git.GitPullRequestCommentThread, error)
	UpdateThread(ctx context.Context, args git.UpdateThreadArgs) (*git.GitPullRequestCommentThread, error)
	CreateComment(ctx context.Context, args git.CreateCommentArgs) (*git.Comment, error)
	UpdateComment(ctx context.Context, args git.UpdateCommentArgs) (*git.Comment, error)
	DeleteComment(ctx context.Context, args git.DeleteCommentArgs) error
}
