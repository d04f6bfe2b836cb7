package azuredevops

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
)

const defaultCacheTTL = 5 * time.Minute

// ResolvedRepository holds the ids behind a "project/repo" name.
type ResolvedRepository struct {
	ProjectID string
	RepoID    string
	CachedAt  time.Time
}

type Provider struct {
	client     *Client
	repoCache  map[string]*ResolvedRepository
	cacheMutex sync.RWMutex
	cacheTTL   time.Duration
}

func NewProvider(token string, organization string, username string) (*Provider, error) {
	client, err := NewClient(token, organization, username)
	if err != nil {
		return nil, err
	}
	return newProvider(client), nil
}

func newProvider(client *Client) *Provider {
	return &Provider{
		client:    client,
		repoCache: make(map[string]*ResolvedRepository),
		cacheTTL:  defaultCacheTTL,
	}
}

func (p *Provider) GetType() domain.ProviderType {
	return domain.ProviderAzureDevOps
}

func (p *Provider) ValidateCredentials(ctx context.Context) error {
	return p.client.ValidateCredentials(ctx)
}

func (p *Provider) resolveProjectAndRepoWithCache(ctx context.Context, repository string) (string, string, error) {
	p.cacheMutex.RLock()
	cached, ok := p.repoCache[repository]
	p.cacheMutex.RUnlock()
	if ok && time.Since(cached.CachedAt) < p.cacheTTL {
		return cached.ProjectID, cached.RepoID, nil
	}

	projectName, repoName, err := common.SplitRepository(domain.PRIdentifier{Repository: repository})
	if err != nil {
		return "", "", err
	}

	repo, err := p.client.GetRepository(ctx, projectName, repoName)
	if err != nil {
		return "", "", fmt.Errorf("repository not found: %s: %s", repository, common.ExtractErrorMessage(err))
	}
	if repo == nil || repo.Id == nil || repo.Project == nil || repo.Project.Id == nil {
		return "", "", fmt.Errorf("repository not found: %s", repository)
	}

	resolved := &ResolvedRepository{
		ProjectID: repo.Project.Id.String(),
		RepoID:    repo.Id.String(),
		CachedAt:  time.Now(),
	}
	p.cacheMutex.Lock()
	p.repoCache[repository] = resolved
	p.cacheMutex.Unlock()

	logger.Log("Azure DevOps: Resolved %s to %s/%s", repository, resolved.ProjectID, resolved.RepoID)
	return resolved.ProjectID, resolved.RepoID, nil
}

func (p *Provider) GetPullRequest(ctx context.Context, identifier domain.PRIdentifier) (*domain.PullRequest, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}

	adoPR, err := p.client.GetPullRequest(ctx, projectID, repoID, identifier.Number)
	if err != nil {
		logger.LogError("AZURE_GET_PR", common.FormatPRIdentifier(identifier), err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}

	pr := convertPullRequest(adoPR)
	logger.Log("Azure DevOps: Retrieved PR #%d: %s", pr.Number, pr.Title)
	return &pr, nil
}

func (p *Provider) GetDiff(ctx context.Context, identifier domain.PRIdentifier) (*domain.Diff, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}

	diffText, err := p.client.GetPullRequestIterationChanges(ctx, projectID, repoID, identifier.Number)
	if err != nil {
		logger.LogError("AZURE_GET_DIFF", common.FormatPRIdentifier(identifier), err)
		return nil, err
	}

	diff := common.ParseUnifiedDiff(diffText)
	logger.Log("Azure DevOps: Built diff with %d files", len(diff.Files))
	return diff, nil
}

// GetComments returns one root comment per thread, in thread order.
// Commenting is allowed while the pull request is active.
func (p *Provider) GetComments(ctx context.Context, identifier domain.PRIdentifier, diff *domain.Diff) (*domain.CommentCollection, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}
	target := common.FormatPRIdentifier(identifier)

	adoPR, err := p.client.GetPullRequest(ctx, projectID, repoID, identifier.Number)
	if err != nil {
		logger.LogError("AZURE_GET_COMMENTS", target, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	threads, err := p.client.GetThreads(ctx, projectID, repoID, identifier.Number)
	if err != nil {
		logger.LogError("AZURE_GET_COMMENTS", target, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}

	var idx *common.AnchorIndex
	if diff != nil {
		idx = common.NewAnchorIndex(diff)
	}

	canCreate := mapPRStatus(adoPR.Status, adoPR.MergeStatus) == domain.PRStatusOpen
	comments := convertThreads(threads, idx, p.client.username, canCreate)

	logger.Log("Azure DevOps: %d threads, %d shown on %s", len(threads), len(comments), target)
	return &domain.CommentCollection{Comments: comments, CanCreate: canCreate}, nil
}

func (p *Provider) CreateComment(ctx context.Context, identifier domain.PRIdentifier, draft domain.CommentDraft) (*domain.Comment, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}

	thread := git.GitPullRequestCommentThread{
		Comments: &[]git.Comment{{
			Content:         common.Ptr(draft.Text),
			ParentCommentId: common.Ptr(0),
			CommentType:     common.Ptr(git.CommentTypeValues.Text),
		}},
		Status:        threadStatus(draft.Type),
		ThreadContext: threadContext(draft.Location),
	}

	created, err := p.client.CreateThread(ctx, projectID, repoID, identifier.Number, thread)
	if err != nil {
		logger.LogError("AZURE_CREATE_COMMENT", common.FormatPRIdentifier(identifier), err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}

	comment, ok := convertThread(*created, nil, p.client.username, true)
	if !ok {
		return nil, fmt.Errorf("created thread %d has no comments", common.Deref(created.Id))
	}
	// Keep the anchor the user picked; the thread context only has one side.
	if draft.Location != nil {
		loc := *draft.Location
		comment.Location = &loc
	}
	comment.Outdated = false
	logger.Log("Azure DevOps: Created thread %s", comment.ID)
	return &comment, nil
}

// UpdateComment edits the root text and, for tasks, the thread status.
// Replies come back nil so stored replies survive.
func (p *Provider) UpdateComment(ctx context.Context, identifier domain.PRIdentifier, comment domain.Comment) (*domain.Comment, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}
	threadID, id, err := parseCommentID(comment.ID)
	if err != nil {
		return nil, err
	}

	edited, err := p.client.UpdateComment(ctx, projectID, repoID, identifier.Number, threadID, id, comment.Text)
	if err != nil {
		logger.LogError("AZURE_UPDATE_COMMENT", comment.ID, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	if status := threadStatus(comment.Type); status != nil {
		if err := p.client.SetThreadStatus(ctx, projectID, repoID, identifier.Number, threadID, *status); err != nil {
			logger.LogError("AZURE_UPDATE_STATUS", comment.ID, err)
			return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
		}
	}

	updated := comment
	updated.Text = common.Deref(edited.Content)
	updated.Replies = nil
	return &updated, nil
}

// DeleteComment deletes the root comment only. Azure DevOps keeps the
// thread, so remaining replies show up under a new root on the next fetch.
func (p *Provider) DeleteComment(ctx context.Context, identifier domain.PRIdentifier, comment domain.Comment) error {
	return p.deleteComment(ctx, identifier, comment.ID, "AZURE_DELETE_COMMENT")
}

func (p *Provider) CreateReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, draft domain.ReplyDraft) (*domain.Reply, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}
	threadID, parentID, err := parseCommentID(parent.ID)
	if err != nil {
		return nil, err
	}

	created, err := p.client.CreateComment(ctx, projectID, repoID, identifier.Number, threadID, parentID, draft.Text)
	if err != nil {
		logger.LogError("AZURE_CREATE_REPLY", parent.ID, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	reply := convertReply(*created, threadID, p.client.username)
	return &reply, nil
}

func (p *Provider) UpdateReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, reply domain.Reply) (*domain.Reply, error) {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return nil, err
	}
	threadID, id, err := parseCommentID(reply.ID)
	if err != nil {
		return nil, err
	}

	edited, err := p.client.UpdateComment(ctx, projectID, repoID, identifier.Number, threadID, id, reply.Text)
	if err != nil {
		logger.LogError("AZURE_UPDATE_REPLY", reply.ID, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	updated := reply
	updated.Text = common.Deref(edited.Content)
	return &updated, nil
}

func (p *Provider) DeleteReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, reply domain.Reply) error {
	return p.deleteComment(ctx, identifier, reply.ID, "AZURE_DELETE_REPLY")
}

func (p *Provider) deleteComment(ctx context.Context, identifier domain.PRIdentifier, id, operation string) error {
	projectID, repoID, err := p.resolveProjectAndRepoWithCache(ctx, identifier.Repository)
	if err != nil {
		return err
	}
	threadID, commentID, err := parseCommentID(id)
	if err != nil {
		return err
	}

	if err := p.client.DeleteComment(ctx, projectID, repoID, identifier.Number, threadID, commentID); err != nil {
		logger.LogError(operation, id, err)
		return fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	return nil
}
