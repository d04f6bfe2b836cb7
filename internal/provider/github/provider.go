package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
)

var (
	ErrTasksNotSupported   = errors.New("GitHub has no comment tasks")
	ErrRepliesNotSupported = errors.New("GitHub conversation comments cannot be replied to")
)

type Provider struct {
	client *Client
}

func NewProvider(token, username, baseURL string) (*Provider, error) {
	client, err := NewClient(token, username, baseURL)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client}, nil
}

func (p *Provider) GetType() domain.ProviderType {
	return domain.ProviderGitHub
}

func (p *Provider) ValidateCredentials(ctx context.Context) error {
	_, err := p.client.GetUsername(ctx)
	return err
}

func (p *Provider) GetPullRequest(ctx context.Context, identifier domain.PRIdentifier) (*domain.PullRequest, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}

	ghPR, err := p.client.GetPullRequest(ctx, owner, repo, identifier.Number)
	if err != nil {
		logger.LogError("GITHUB_GET_PR", common.FormatPRIdentifier(identifier), err)
		return nil, err
	}

	pr := convertPullRequest(ghPR)
	logger.Log("GitHub: Retrieved PR #%d: %s", pr.Number, pr.Title)
	return &pr, nil
}

func (p *Provider) GetDiff(ctx context.Context, identifier domain.PRIdentifier) (*domain.Diff, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}

	diffText, err := p.client.GetDiff(ctx, owner, repo, identifier.Number)
	if err != nil {
		logger.LogError("GITHUB_GET_DIFF", common.FormatPRIdentifier(identifier), err)
		return nil, err
	}

	diff := common.ParseUnifiedDiff(diffText)
	logger.Log("GitHub: Parsed diff with %d files (%d bytes)", len(diff.Files), len(diffText))
	return diff, nil
}

// GetComments returns review threads first, then conversation comments,
// each in creation order.
func (p *Provider) GetComments(ctx context.Context, identifier domain.PRIdentifier, diff *domain.Diff) (*domain.CommentCollection, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}
	target := common.FormatPRIdentifier(identifier)

	pr, err := p.client.GetPullRequest(ctx, owner, repo, identifier.Number)
	if err != nil {
		logger.LogError("GITHUB_GET_COMMENTS", target, err)
		return nil, err
	}
	username, err := p.client.GetUsername(ctx)
	if err != nil {
		return nil, err
	}

	reviewComments, err := p.client.ListReviewComments(ctx, owner, repo, identifier.Number)
	if err != nil {
		logger.LogError("GITHUB_GET_COMMENTS", target, err)
		return nil, err
	}
	issueComments, err := p.client.ListIssueComments(ctx, owner, repo, identifier.Number)
	if err != nil {
		logger.LogError("GITHUB_GET_COMMENTS", target, err)
		return nil, err
	}

	var idx *common.AnchorIndex
	if diff != nil {
		idx = common.NewAnchorIndex(diff)
	}

	comments := buildThreads(reviewComments, idx, username)
	for _, c := range issueComments {
		comments = append(comments, convertIssueComment(c, username))
	}

	logger.Log("GitHub: %d review comments, %d conversation comments on %s", len(reviewComments), len(issueComments), target)
	return &domain.CommentCollection{
		Comments:  comments,
		CanCreate: pr.GetState() == "open" && !pr.GetLocked(),
	}, nil
}

func (p *Provider) CreateComment(ctx context.Context, identifier domain.PRIdentifier, draft domain.CommentDraft) (*domain.Comment, error) {
	if draft.Type.IsTask() {
		return nil, ErrTasksNotSupported
	}
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}
	username, err := p.client.GetUsername(ctx)
	if err != nil {
		return nil, err
	}

	if draft.Location == nil {
		created, err := p.client.CreateIssueComment(ctx, owner, repo, identifier.Number, draft.Text)
		if err != nil {
			logger.LogError("GITHUB_CREATE_COMMENT", common.FormatPRIdentifier(identifier), err)
			return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
		}
		comment := convertIssueComment(created, username)
		return &comment, nil
	}

	pr, err := p.client.GetPullRequest(ctx, owner, repo, identifier.Number)
	if err != nil {
		return nil, err
	}
	created, err := p.client.CreateReviewComment(ctx, owner, repo, identifier.Number, draftComment(draft, pr.GetHead().GetSHA()))
	if err != nil {
		logger.LogError("GITHUB_CREATE_COMMENT", common.FormatPRIdentifier(identifier), err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}

	// The anchor the user picked already carries both line numbers for
	// context lines; the response only has one side.
	comment := convertReviewComment(created, nil, username)
	loc := *draft.Location
	comment.Location = &loc
	comment.Outdated = false
	logger.Log("GitHub: Created comment %s on %s", comment.ID, loc.File)
	return &comment, nil
}

// UpdateComment edits the body. The returned comment keeps the caller's
// location and leaves Replies nil so stored replies survive.
func (p *Provider) UpdateComment(ctx context.Context, identifier domain.PRIdentifier, comment domain.Comment) (*domain.Comment, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}
	kind, id, err := parseCommentID(comment.ID)
	if err != nil {
		return nil, err
	}

	var text string
	switch kind {
	case kindReview:
		edited, err := p.client.EditReviewComment(ctx, owner, repo, id, comment.Text)
		if err != nil {
			logger.LogError("GITHUB_UPDATE_COMMENT", comment.ID, err)
			return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
		}
		text = edited.GetBody()
	default:
		edited, err := p.client.EditIssueComment(ctx, owner, repo, id, comment.Text)
		if err != nil {
			logger.LogError("GITHUB_UPDATE_COMMENT", comment.ID, err)
			return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
		}
		text = edited.GetBody()
	}

	updated := comment
	updated.Text = text
	updated.Replies = nil
	return &updated, nil
}

// DeleteComment removes the root only. GitHub keeps the replies of a
// deleted review comment, and they reappear as roots on the next fetch.
func (p *Provider) DeleteComment(ctx context.Context, identifier domain.PRIdentifier, comment domain.Comment) error {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return err
	}
	kind, id, err := parseCommentID(comment.ID)
	if err != nil {
		return err
	}

	if kind == kindReview {
		err = p.client.DeleteReviewComment(ctx, owner, repo, id)
	} else {
		err = p.client.DeleteIssueComment(ctx, owner, repo, id)
	}
	if err != nil {
		logger.LogError("GITHUB_DELETE_COMMENT", comment.ID, err)
		return fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	return nil
}

func (p *Provider) CreateReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, draft domain.ReplyDraft) (*domain.Reply, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}
	kind, parentID, err := parseCommentID(parent.ID)
	if err != nil {
		return nil, err
	}
	if kind != kindReview {
		return nil, ErrRepliesNotSupported
	}
	username, err := p.client.GetUsername(ctx)
	if err != nil {
		return nil, err
	}

	created, err := p.client.ReplyToReviewComment(ctx, owner, repo, identifier.Number, draft.Text, parentID)
	if err != nil {
		logger.LogError("GITHUB_CREATE_REPLY", parent.ID, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	reply := convertReviewReply(created, username)
	return &reply, nil
}

func (p *Provider) UpdateReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, reply domain.Reply) (*domain.Reply, error) {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return nil, err
	}
	_, id, err := parseCommentID(reply.ID)
	if err != nil {
		return nil, err
	}

	edited, err := p.client.EditReviewComment(ctx, owner, repo, id, reply.Text)
	if err != nil {
		logger.LogError("GITHUB_UPDATE_REPLY", reply.ID, err)
		return nil, fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	updated := reply
	updated.Text = edited.GetBody()
	return &updated, nil
}

func (p *Provider) DeleteReply(ctx context.Context, identifier domain.PRIdentifier, parent domain.Comment, reply domain.Reply) error {
	owner, repo, err := common.SplitRepository(identifier)
	if err != nil {
		return err
	}
	_, id, err := parseCommentID(reply.ID)
	if err != nil {
		return err
	}

	if err := p.client.DeleteReviewComment(ctx, owner, repo, id); err != nil {
		logger.LogError("GITHUB_DELETE_REPLY", reply.ID, err)
		return fmt.Errorf("%s", common.ExtractErrorMessage(err))
	}
	return nil
}
