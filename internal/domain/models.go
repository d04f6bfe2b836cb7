package domain

import "time"

type ProviderType string

const (
	ProviderGitHub      ProviderType = "github"
	ProviderAzureDevOps ProviderType = "azuredevops"
)

type PRStatus string

const (
	PRStatusOpen   PRStatus = "open"
	PRStatusClosed PRStatus = "closed"
	PRStatusMerged PRStatus = "merged"
)

type User struct {
	ID       string
	Username string
	Email    string
	Avatar   string
}

type Repo struct {
	ID       string
	Name     string
	FullName string
	Owner    string
	URL      string
}

type PullRequest struct {
	ID           string
	Number       int
	Title        string
	Description  string
	Author       User
	Repository   Repo
	SourceBranch string
	TargetBranch string
	HeadSHA      string
	Status       PRStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	URL          string
	IsDraft      bool
	IsLocked     bool
}

type PRIdentifier struct {
	Provider   ProviderType
	Repository string
	Number     int
}

type DiffLineType string

const (
	DiffLineAdd     DiffLineType = "add"
	DiffLineDelete  DiffLineType = "delete"
	DiffLineContext DiffLineType = "context"
)

// DiffLine is one change inside a hunk. OldLine and NewLine are 1-based,
// zero when the line does not exist on that side.
type DiffLine struct {
	Type    DiffLineType
	Content string
	OldLine int
	NewLine int
}

type DiffHunk struct {
	Header string
	Lines  []DiffLine
}

type FileDiff struct {
	OldPath   string
	NewPath   string
	IsNew     bool
	IsDeleted bool
	IsRenamed bool
	Hunks     []DiffHunk
}

// Path is the path comments are anchored to: the new path, or the old
// one for deleted files.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

type Diff struct {
	Files []FileDiff
}

type CommentType string

const (
	CommentTypeComment  CommentType = "COMMENT"
	CommentTypeTaskTodo CommentType = "TASK_TODO"
	CommentTypeTaskDone CommentType = "TASK_DONE"
)

func (t CommentType) IsTask() bool {
	return t == CommentTypeTaskTodo || t == CommentTypeTaskDone
}

// Location anchors a comment inside a diff. Hunk holds the literal hunk
// header; when it is empty the comment is anchored to the file as a whole.
// Line numbers are 1-based and zero means absent.
type Location struct {
	File          string
	Hunk          string
	OldLineNumber int
	NewLineNumber int
}

// Actions lists what the server allows the current user to do with a
// comment or reply.
type Actions struct {
	Update bool
	Delete bool
	Reply  bool
}

type Comment struct {
	ID       string
	Text     string
	Author   User
	Date     time.Time
	Location *Location
	Outdated bool
	Type     CommentType
	Replies  []Reply
	Actions  Actions
}

// Reply belongs to exactly one root Comment. It carries no location and
// no replies of its own.
type Reply struct {
	ID      string
	Text    string
	Author  User
	Date    time.Time
	Type    CommentType
	Actions Actions
}

type CommentCollection struct {
	Comments  []Comment
	CanCreate bool
}

// CommentDraft is what the user typed before the server assigned an id.
type CommentDraft struct {
	Text     string
	Location *Location
	Type     CommentType
}

type ReplyDraft struct {
	Text string
}
