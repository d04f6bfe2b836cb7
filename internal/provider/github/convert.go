package github

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
)

const (
	kindReview = "review"
	kindIssue  = "issue"
)

var errBadCommentID = errors.New("not a GitHub comment id")

// Review comments and conversation comments have separate id spaces, so
// ids carry their kind.
func commentID(kind string, id int64) string {
	return kind + ":" + strconv.FormatInt(id, 10)
}

func parseCommentID(id string) (kind string, n int64, err error) {
	kind, raw, ok := strings.Cut(id, ":")
	if !ok || (kind != kindReview && kind != kindIssue) {
		return "", 0, fmt.Errorf("%w: %q", errBadCommentID, id)
	}
	n, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", errBadCommentID, id)
	}
	return kind, n, nil
}

func convertUser(u *github.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	return domain.User{
		ID:       strconv.FormatInt(u.GetID(), 10),
		Username: u.GetLogin(),
		Email:    u.GetEmail(),
		Avatar:   u.GetAvatarURL(),
	}
}

func ownActions(author *github.User, currentUser string, canReply bool) domain.Actions {
	own := author != nil && currentUser != "" && author.GetLogin() == currentUser
	return domain.Actions{Update: own, Delete: own, Reply: canReply}
}

// hunkHeader is the first line of a diff_hunk, which GitHub always starts
// with the header of the hunk the comment was made in.
func hunkHeader(diffHunk string) string {
	first, _, _ := strings.Cut(diffHunk, "\n")
	if !strings.HasPrefix(first, "@@") {
		return ""
	}
	return first
}

func side(c *github.PullRequestComment) common.Side {
	if c.GetSide() == string(common.SideOld) {
		return common.SideOld
	}
	return common.SideNew
}

// reviewLocation places a review comment in the current diff. A comment
// whose line GitHub no longer maps, or which the current diff does not
// show, is outdated.
func reviewLocation(c *github.PullRequestComment, idx *common.AnchorIndex) (*domain.Location, bool) {
	path := c.GetPath()
	if c.GetSubjectType() == "file" {
		return &domain.Location{File: path}, false
	}

	header := hunkHeader(c.GetDiffHunk())
	if c.Line == nil {
		return common.SideLocation(path, header, side(c), c.GetOriginalLine()), true
	}
	if idx == nil {
		return common.SideLocation(path, header, side(c), c.GetLine()), false
	}
	if loc, ok := idx.Location(path, side(c), c.GetLine()); ok {
		return loc, false
	}
	return common.SideLocation(path, header, side(c), c.GetLine()), true
}

func convertReviewComment(c *github.PullRequestComment, idx *common.AnchorIndex, currentUser string) domain.Comment {
	loc, outdated := reviewLocation(c, idx)
	return domain.Comment{
		ID:       commentID(kindReview, c.GetID()),
		Text:     c.GetBody(),
		Author:   convertUser(c.User),
		Date:     c.GetCreatedAt().Time,
		Location: loc,
		Outdated: outdated,
		Type:     domain.CommentTypeComment,
		Replies:  []domain.Reply{},
		Actions:  ownActions(c.User, currentUser, true),
	}
}

func convertReviewReply(c *github.PullRequestComment, currentUser string) domain.Reply {
	return domain.Reply{
		ID:      commentID(kindReview, c.GetID()),
		Text:    c.GetBody(),
		Author:  convertUser(c.User),
		Date:    c.GetCreatedAt().Time,
		Type:    domain.CommentTypeComment,
		Actions: ownActions(c.User, currentUser, false),
	}
}

func convertIssueComment(c *github.IssueComment, currentUser string) domain.Comment {
	return domain.Comment{
		ID:      commentID(kindIssue, c.GetID()),
		Text:    c.GetBody(),
		Author:  convertUser(c.User),
		Date:    c.GetCreatedAt().Time,
		Type:    domain.CommentTypeComment,
		Replies: []domain.Reply{},
		Actions: ownActions(c.User, currentUser, false),
	}
}

// buildThreads folds review comments into root comments with replies.
// GitHub points in_reply_to at the thread root, but older data may point
// at another reply, so replies are followed to their root. A reply whose
// root is gone becomes a root itself.
func buildThreads(comments []*github.PullRequestComment, idx *common.AnchorIndex, currentUser string) []domain.Comment {
	byID := make(map[int64]*github.PullRequestComment, len(comments))
	for _, c := range comments {
		byID[c.GetID()] = c
	}

	rootOf := func(c *github.PullRequestComment) int64 {
		seen := map[int64]bool{}
		for c.InReplyTo != nil && !seen[c.GetID()] {
			seen[c.GetID()] = true
			parent, ok := byID[c.GetInReplyTo()]
			if !ok {
				break
			}
			c = parent
		}
		return c.GetID()
	}

	var roots []domain.Comment
	position := map[int64]int{}
	for _, c := range comments {
		root := rootOf(c)
		if root == c.GetID() {
			position[root] = len(roots)
			roots = append(roots, convertReviewComment(c, idx, currentUser))
		}
	}
	for _, c := range comments {
		root := rootOf(c)
		if root == c.GetID() {
			continue
		}
		i := position[root]
		roots[i].Replies = append(roots[i].Replies, convertReviewReply(c, currentUser))
	}
	return roots
}

func convertPullRequest(pr *github.PullRequest) domain.PullRequest {
	status := domain.PRStatusOpen
	if pr.GetState() == "closed" {
		status = domain.PRStatusClosed
		if pr.MergedAt != nil {
			status = domain.PRStatusMerged
		}
	}

	converted := domain.PullRequest{
		ID:          strconv.FormatInt(pr.GetID(), 10),
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Author:      convertUser(pr.User),
		Status:      status,
		CreatedAt:   pr.GetCreatedAt().Time,
		UpdatedAt:   pr.GetUpdatedAt().Time,
		URL:         pr.GetHTMLURL(),
		IsDraft:     pr.GetDraft(),
		IsLocked:    pr.GetLocked(),
	}

	if pr.Base != nil && pr.Base.Repo != nil {
		converted.Repository = domain.Repo{
			ID:       strconv.FormatInt(pr.Base.Repo.GetID(), 10),
			Name:     pr.Base.Repo.GetName(),
			FullName: pr.Base.Repo.GetFullName(),
			Owner:    pr.Base.Repo.GetOwner().GetLogin(),
			URL:      pr.Base.Repo.GetHTMLURL(),
		}
		converted.TargetBranch = pr.Base.GetRef()
	}
	if pr.Head != nil {
		converted.SourceBranch = pr.Head.GetRef()
		converted.HeadSHA = pr.Head.GetSHA()
	}
	return converted
}

// draftComment builds the review comment payload for a located draft.
func draftComment(draft domain.CommentDraft, commitID string) *github.PullRequestComment {
	loc := draft.Location
	comment := &github.PullRequestComment{
		Body:     github.String(draft.Text),
		Path:     github.String(loc.File),
		CommitID: github.String(commitID),
	}

	if loc.Hunk == "" {
		comment.SubjectType = github.String("file")
		return comment
	}
	if loc.NewLineNumber > 0 {
		comment.Line = github.Int(loc.NewLineNumber)
		comment.Side = github.String(string(common.SideNew))
	} else {
		comment.Line = github.Int(loc.OldLineNumber)
		comment.Side = github.String(string(common.SideOld))
	}
	return comment
}
