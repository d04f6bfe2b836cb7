package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"golang.org/x/oauth2"
)

const perPage = 100

type Client struct {
	client   *github.Client
	username string
}

// NewClient authenticates with token. baseURL selects a GitHub Enterprise
// API root and may be empty.
func NewClient(token, username, baseURL string) (*Client, error) {
	base := &http.Client{Transport: common.NewLoggingTransport(nil)}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	client := github.NewClient(tc)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL: %w", err)
		}
	}
	return &Client{client: client, username: username}, nil
}

func (c *Client) GetUsername(ctx context.Context) (string, error) {
	if c.username != "" {
		return c.username, nil
	}

	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	c.username = user.GetLogin()
	return c.username, nil
}

func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request: %w", err)
	}
	return pr, nil
}

func (c *Client) GetDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.client.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("failed to get diff: %w", err)
	}
	return diff, nil
}

func (c *Client) ListReviewComments(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestComment, error) {
	opts := &github.PullRequestListCommentsOptions{
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.PullRequestComment
	for {
		comments, resp, err := c.client.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list review comments: %w", err)
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.IssueComment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issue comments: %w", err)
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) CreateReviewComment(ctx context.Context, owner, repo string, number int, comment *github.PullRequestComment) (*github.PullRequestComment, error) {
	created, _, err := c.client.PullRequests.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create review comment: %w", err)
	}
	return created, nil
}

func (c *Client) ReplyToReviewComment(ctx context.Context, owner, repo string, number int, body string, parentID int64) (*github.PullRequestComment, error) {
	created, _, err := c.client.PullRequests.CreateCommentInReplyTo(ctx, owner, repo, number, body, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reply to review comment: %w", err)
	}
	return created, nil
}

func (c *Client) EditReviewComment(ctx context.Context, owner, repo string, id int64, body string) (*github.PullRequestComment, error) {
	edited, _, err := c.client.PullRequests.EditComment(ctx, owner, repo, id, &github.PullRequestComment{Body: github.String(body)})
	if err != nil {
		return nil, fmt.Errorf("failed to edit review comment: %w", err)
	}
	return edited, nil
}

func (c *Client) DeleteReviewComment(ctx context.Context, owner, repo string, id int64) error {
	if _, err := c.client.PullRequests.DeleteComment(ctx, owner, repo, id); err != nil {
		return fmt.Errorf("failed to delete review comment: %w", err)
	}
	return nil
}

func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	created, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: github.String(body)})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return created, nil
}

func (c *Client) EditIssueComment(ctx context.Context, owner, repo string, id int64, body string) (*github.IssueComment, error) {
	edited, _, err := c.client.Issues.EditComment(ctx, owner, repo, id, &github.IssueComment{Body: github.String(body)})
	if err != nil {
		return nil, fmt.Errorf("failed to edit comment: %w", err)
	}
	return edited, nil
}

func (c *Client) DeleteIssueComment(ctx context.Context, owner, repo string, id int64) error {
	if _, err := c.client.Issues.DeleteComment(ctx, owner, repo, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
