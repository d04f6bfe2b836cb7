package azuredevops

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
)

var errBadCommentID = errors.New("not an Azure DevOps comment id")

// Comment ids are "<thread>/<comment>". Comment ids are only unique
// within their thread.
func commentID(threadID, id int) string {
	return strconv.Itoa(threadID) + "/" + strconv.Itoa(id)
}

func parseCommentID(id string) (threadID, commentID int, err error) {
	rawThread, rawComment, ok := strings.Cut(id, "/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadCommentID, id)
	}
	threadID, err = strconv.Atoi(rawThread)
	if err != nil || threadID <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", errBadCommentID, id)
	}
	commentID, err = strconv.Atoi(rawComment)
	if err != nil || commentID <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", errBadCommentID, id)
	}
	return threadID, commentID, nil
}

func convertIdentity(identity *webapi.IdentityRef) domain.User {
	if identity == nil {
		return domain.User{}
	}
	return domain.User{
		ID:       common.Deref(identity.Id),
		Username: common.Deref(identity.DisplayName),
		Email:    common.Deref(identity.UniqueName),
		Avatar:   common.Deref(identity.ImageUrl),
	}
}

func ownActions(author *webapi.IdentityRef, currentUser string, canReply bool) domain.Actions {
	own := matchesUser(author, currentUser)
	return domain.Actions{Update: own, Delete: own, Reply: canReply}
}

// threadType maps a thread status onto the task model. Every thread opened
// in the web UI starts Active, so Active and unset are plain comments and
// Pending marks an open task. Resolved states count as done tasks.
func threadType(status *git.CommentThreadStatus) domain.CommentType {
	if status == nil {
		return domain.CommentTypeComment
	}
	switch *status {
	case git.CommentThreadStatusValues.Pending:
		return domain.CommentTypeTaskTodo
	case git.CommentThreadStatusValues.Fixed, git.CommentThreadStatusValues.Closed,
		git.CommentThreadStatusValues.WontFix, git.CommentThreadStatusValues.ByDesign:
		return domain.CommentTypeTaskDone
	default:
		return domain.CommentTypeComment
	}
}

func threadStatus(t domain.CommentType) *git.CommentThreadStatus {
	switch t {
	case domain.CommentTypeTaskTodo:
		return common.Ptr(git.CommentThreadStatusValues.Pending)
	case domain.CommentTypeTaskDone:
		return common.Ptr(git.CommentThreadStatusValues.Fixed)
	default:
		return nil
	}
}

// threadLocation places a thread in the current diff. Azure DevOps stores
// only a path and file line numbers; the hunk comes from the diff. A
// thread on a line the diff no longer shows is outdated.
func threadLocation(tc *git.CommentThreadContext, idx *common.AnchorIndex) (*domain.Location, bool) {
	if tc == nil || common.Deref(tc.FilePath) == "" {
		return nil, false
	}
	path := strings.TrimPrefix(*tc.FilePath, "/")

	var side common.Side
	var line int
	switch {
	case tc.RightFileStart != nil && common.Deref(tc.RightFileStart.Line) > 0:
		side, line = common.SideNew, *tc.RightFileStart.Line
	case tc.LeftFileStart != nil && common.Deref(tc.LeftFileStart.Line) > 0:
		side, line = common.SideOld, *tc.LeftFileStart.Line
	default:
		return &domain.Location{File: path}, false
	}

	if idx == nil {
		return common.SideLocation(path, "", side, line), false
	}
	if loc, ok := idx.Location(path, side, line); ok {
		return loc, false
	}
	return common.SideLocation(path, "", side, line), true
}

// threadContext is the inverse of threadLocation. Context lines are
// addressed from the new side, like the web UI does.
func threadContext(loc *domain.Location) *git.CommentThreadContext {
	if loc == nil {
		return nil
	}
	tc := &git.CommentThreadContext{FilePath: common.Ptr("/" + loc.File)}
	switch {
	case loc.Hunk == "":
	case loc.NewLineNumber > 0:
		tc.RightFileStart = &git.CommentPosition{Line: common.Ptr(loc.NewLineNumber), Offset: common.Ptr(1)}
		tc.RightFileEnd = &git.CommentPosition{Line: common.Ptr(loc.NewLineNumber), Offset: common.Ptr(1)}
	case loc.OldLineNumber > 0:
		tc.LeftFileStart = &git.CommentPosition{Line: common.Ptr(loc.OldLineNumber), Offset: common.Ptr(1)}
		tc.LeftFileEnd = &git.CommentPosition{Line: common.Ptr(loc.OldLineNumber), Offset: common.Ptr(1)}
	}
	return tc
}

// visibleComments drops deleted and system comments (votes, pushes) and
// orders the rest by id, which is creation order within a thread.
func visibleComments(thread git.GitPullRequestCommentThread) []git.Comment {
	if thread.Comments == nil {
		return nil
	}
	var visible []git.Comment
	for _, c := range *thread.Comments {
		if common.Deref(c.IsDeleted) {
			continue
		}
		if c.CommentType != nil && *c.CommentType == git.CommentTypeValues.System {
			continue
		}
		visible = append(visible, c)
	}
	slices.SortStableFunc(visible, func(a, b git.Comment) int {
		return common.Deref(a.Id) - common.Deref(b.Id)
	})
	return visible
}

func convertReply(c git.Comment, threadID int, currentUser string) domain.Reply {
	reply := domain.Reply{
		ID:      commentID(threadID, common.Deref(c.Id)),
		Text:    common.Deref(c.Content),
		Author:  convertIdentity(c.Author),
		Type:    domain.CommentTypeComment,
		Actions: ownActions(c.Author, currentUser, false),
	}
	if c.PublishedDate != nil {
		reply.Date = c.PublishedDate.Time
	}
	return reply
}

// convertThread turns a thread into a root comment. The first visible
// comment is the root and every later one a reply, whatever parent it
// names.
func convertThread(thread git.GitPullRequestCommentThread, idx *common.AnchorIndex, currentUser string, canReply bool) (domain.Comment, bool) {
	if common.Deref(thread.IsDeleted) {
		return domain.Comment{}, false
	}
	comments := visibleComments(thread)
	if len(comments) == 0 {
		return domain.Comment{}, false
	}

	threadID := common.Deref(thread.Id)
	root := comments[0]
	loc, outdated := threadLocation(thread.ThreadContext, idx)

	comment := domain.Comment{
		ID:       commentID(threadID, common.Deref(root.Id)),
		Text:     common.Deref(root.Content),
		Author:   convertIdentity(root.Author),
		Location: loc,
		Outdated: outdated,
		Type:     threadType(thread.Status),
		Replies:  make([]domain.Reply, 0, len(comments)-1),
		Actions:  ownActions(root.Author, currentUser, canReply),
	}
	if root.PublishedDate != nil {
		comment.Date = root.PublishedDate.Time
	}
	for _, c := range comments[1:] {
		comment.Replies = append(comment.Replies, convertReply(c, threadID, currentUser))
	}
	return comment, true
}

func convertThreads(threads []git.GitPullRequestCommentThread, idx *common.AnchorIndex, currentUser string, canReply bool) []domain.Comment {
	comments := []domain.Comment{}
	for _, thread := range threads {
		if comment, ok := convertThread(thread, idx, currentUser, canReply); ok {
			comments = append(comments, comment)
		}
	}
	return comments
}

func convertPullRequest(adoPR *git.GitPullRequest) domain.PullRequest {
	pr := domain.PullRequest{
		ID:           strconv.Itoa(common.Deref(adoPR.PullRequestId)),
		Number:       common.Deref(adoPR.PullRequestId),
		Title:        common.Deref(adoPR.Title),
		Description:  common.Deref(adoPR.Description),
		Status:       mapPRStatus(adoPR.Status, adoPR.MergeStatus),
		URL:          buildPRWebURL(adoPR),
		IsDraft:      common.Deref(adoPR.IsDraft),
		SourceBranch: extractBranchName(adoPR.SourceRefName),
		TargetBranch: extractBranchName(adoPR.TargetRefName),
	}

	if adoPR.CreationDate != nil {
		pr.CreatedAt = adoPR.CreationDate.Time
		pr.UpdatedAt = adoPR.CreationDate.Time
	}
	if adoPR.ClosedDate != nil && !adoPR.ClosedDate.Time.IsZero() {
		pr.UpdatedAt = adoPR.ClosedDate.Time
	}
	if adoPR.CreatedBy != nil {
		pr.Author = convertIdentity(adoPR.CreatedBy)
	}
	if adoPR.LastMergeSourceCommit != nil {
		pr.HeadSHA = common.Deref(adoPR.LastMergeSourceCommit.CommitId)
	}
	if adoPR.Repository != nil {
		pr.Repository = convertRepository(adoPR.Repository)
	}
	return pr
}

func convertRepository(repo *git.GitRepository) domain.Repo {
	projectName := ""
	if repo.Project != nil {
		projectName = common.Deref(repo.Project.Name)
	}
	repoName := common.Deref(repo.Name)

	return domain.Repo{
		ID:       common.GetUUIDString(repo.Id),
		Name:     repoName,
		FullName: buildRepositoryIdentifier(projectName, repoName),
		Owner:    projectName,
		URL:      common.Deref(repo.WebUrl),
	}
}

func mapPRStatus(status *git.PullRequestStatus, mergeStatus *git.PullRequestAsyncStatus) domain.PRStatus {
	if status == nil {
		return domain.PRStatusOpen
	}

	switch *status {
	case git.PullRequestStatusValues.Completed:
		if mergeStatus != nil && *mergeStatus == git.PullRequestAsyncStatusValues.Succeeded {
			return domain.PRStatusMerged
		}
		return domain.PRStatusClosed
	case git.PullRequestStatusValues.Abandoned:
		return domain.PRStatusClosed
	default:
		return domain.PRStatusOpen
	}
}
