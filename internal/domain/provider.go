package domain

import "context"

type Provider interface {
	GetType() ProviderType

	GetPullRequest(ctx context.Context, identifier PRIdentifier) (*PullRequest, error)

	GetDiff(ctx context.Context, identifier PRIdentifier) (*Diff, error)

	// GetComments returns the comment collection of a pull request. The
	// diff, when given, is used to resolve line anchors and outdated state.
	GetComments(ctx context.Context, identifier PRIdentifier, diff *Diff) (*CommentCollection, error)

	CreateComment(ctx context.Context, identifier PRIdentifier, draft CommentDraft) (*Comment, error)

	UpdateComment(ctx context.Context, identifier PRIdentifier, comment Comment) (*Comment, error)

	DeleteComment(ctx context.Context, identifier PRIdentifier, comment Comment) error

	CreateReply(ctx context.Context, identifier PRIdentifier, parent Comment, draft ReplyDraft) (*Reply, error)

	UpdateReply(ctx context.Context, identifier PRIdentifier, parent Comment, reply Reply) (*Reply, error)

	DeleteReply(ctx context.Context, identifier PRIdentifier, parent Comment, reply Reply) error

	ValidateCredentials(ctx context.Context) error
}
