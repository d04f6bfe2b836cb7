package azuredevops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

var (
	ErrNoIterations = errors.New("no iterations found")
	ErrNoChanges    = errors.New("no changes found")
)

type Client struct {
	gitClient    GitClientInterface
	organization string
	username     string
}

// NewClient connects with a PAT. organization is either the bare
// organization name or a full collection URL for Azure DevOps Server.
func NewClient(token string, organization string, username string) (*Client, error) {
	if organization == "" {
		return nil, errors.New("azure devops organization is required")
	}

	orgURL := organization
	if !strings.HasPrefix(orgURL, "https://") && !strings.HasPrefix(orgURL, "http://") {
		orgURL = "https://dev.azure.com/" + organization
	}

	connection := azuredevops.NewPatConnection(orgURL, token)
	gitClient, err := git.NewClient(context.Background(), connection)
	if err != nil {
		return nil, fmt.Errorf("failed to create git client: %w", err)
	}

	logger.Log("Azure DevOps: Connected to %s", orgURL)
	return &Client{
		gitClient:    gitClient,
		organization: organization,
		username:     username,
	}, nil
}

func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, err := c.gitClient.GetRepositories(ctx, git.GetRepositoriesArgs{})
	if err != nil {
		return fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	return nil
}

func (c *Client) GetRepository(ctx context.Context, project, repo string) (*git.GitRepository, error) {
	return c.gitClient.GetRepository(ctx, git.GetRepositoryArgs{
		Project:      &project,
		RepositoryId: &repo,
	})
}

func (c *Client) GetPullRequest(ctx context.Context, project, repo string, prID int) (*git.GitPullRequest, error) {
	return c.gitClient.GetPullRequest(ctx, git.GetPullRequestArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
	})
}

// GetPullRequestIterationChanges renders the changes of the latest
// iteration, compared with the target branch, as a unified diff.
func (c *Client) GetPullRequestIterationChanges(ctx context.Context, project, repo string, prID int) (string, error) {
	iterations, err := c.gitClient.GetPullRequestIterations(ctx, git.GetPullRequestIterationsArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
	})
	if err != nil {
		return "", err
	}
	if iterations == nil || len(*iterations) == 0 {
		return "", ErrNoIterations
	}
	latest := (*iterations)[len(*iterations)-1].Id

	changes, err := c.gitClient.GetPullRequestIterationChanges(ctx, git.GetPullRequestIterationChangesArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		IterationId:   latest,
	})
	if err != nil {
		return "", err
	}
	if changes == nil || changes.ChangeEntries == nil {
		return "", ErrNoChanges
	}

	var b strings.Builder
	for _, change := range *changes.ChangeEntries {
		file, ok, err := c.loadChange(ctx, project, repo, change)
		if err != nil {
			return "", err
		}
		if ok {
			writeFileDiff(&b, file)
		}
	}
	return b.String(), nil
}

// loadChange reads both sides of a change entry. Folders and entries
// without an item are skipped.
func (c *Client) loadChange(ctx context.Context, project, repo string, change git.GitPullRequestChange) (changedFile, bool, error) {
	item, ok := change.Item.(map[string]interface{})
	if !ok {
		return changedFile{}, false, nil
	}
	if folder, _ := item["isFolder"].(bool); folder {
		return changedFile{}, false, nil
	}

	path := strings.TrimPrefix(itemString(item, "path"), "/")
	originalPath := strings.TrimPrefix(itemString(item, "originalPath"), "/")
	if originalPath == "" {
		originalPath = path
	}

	changeType := ""
	if change.ChangeType != nil {
		changeType = string(*change.ChangeType)
	}

	file := changedFile{
		oldPath:   originalPath,
		newPath:   path,
		isNew:     strings.Contains(changeType, string(git.VersionControlChangeTypeValues.Add)),
		isDeleted: strings.Contains(changeType, string(git.VersionControlChangeTypeValues.Delete)),
	}

	var err error
	if !file.isNew {
		if file.oldContent, err = c.readBlob(ctx, project, repo, itemString(item, "originalObjectId")); err != nil {
			return changedFile{}, false, err
		}
	}
	if !file.isDeleted {
		if file.newContent, err = c.readBlob(ctx, project, repo, itemString(item, "objectId")); err != nil {
			return changedFile{}, false, err
		}
	}
	return file, true, nil
}

func (c *Client) readBlob(ctx context.Context, project, repo, sha string) (string, error) {
	if sha == "" {
		return "", nil
	}
	reader, err := c.gitClient.GetBlobContent(ctx, git.GetBlobContentArgs{
		Project:      &project,
		RepositoryId: &repo,
		Sha1:         &sha,
	})
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", sha, err)
	}
	if reader == nil {
		return "", nil
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", sha, err)
	}
	return string(content), nil
}

func itemString(item map[string]interface{}, key string) string {
	s, _ := item[key].(string)
	return s
}

func (c *Client) GetThreads(ctx context.Context, project, repo string, prID int) ([]git.GitPullRequestCommentThread, error) {
	threads, err := c.gitClient.GetThreads(ctx, git.GetThreadsArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
	})
	if err != nil {
		return nil, err
	}
	if threads == nil {
		return nil, nil
	}
	return *threads, nil
}

func (c *Client) CreateThread(ctx context.Context, project, repo string, prID int, thread git.GitPullRequestCommentThread) (*git.GitPullRequestCommentThread, error) {
	return c.gitClient.CreateThread(ctx, git.CreateThreadArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		CommentThread: &thread,
	})
}

func (c *Client) SetThreadStatus(ctx context.Context, project, repo string, prID, threadID int, status git.CommentThreadStatus) error {
	_, err := c.gitClient.UpdateThread(ctx, git.UpdateThreadArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		ThreadId:      &threadID,
		CommentThread: &git.GitPullRequestCommentThread{Status: &status},
	})
	return err
}

func (c *Client) CreateComment(ctx context.Context, project, repo string, prID, threadID, parentID int, content string) (*git.Comment, error) {
	return c.gitClient.CreateComment(ctx, git.CreateCommentArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		ThreadId:      &threadID,
		Comment: &git.Comment{
			Content:         &content,
			ParentCommentId: &parentID,
			CommentType:     common.Ptr(git.CommentTypeValues.Text),
		},
	})
}

func (c *Client) UpdateComment(ctx context.Context, project, repo string, prID, threadID, commentID int, content string) (*git.Comment, error) {
	return c.gitClient.UpdateComment(ctx, git.UpdateCommentArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		ThreadId:      &threadID,
		CommentId:     &commentID,
		Comment:       &git.Comment{Content: &content},
	})
}

func (c *Client) DeleteComment(ctx context.Context, project, repo string, prID, threadID, commentID int) error {
	return c.gitClient.DeleteComment(ctx, git.DeleteCommentArgs{
		Project:       &project,
		RepositoryId:  &repo,
		PullRequestId: &prID,
		ThreadId:      &threadID,
		CommentId:     &commentID,
	})
}
