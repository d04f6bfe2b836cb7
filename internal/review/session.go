package review

import (
	"fmt"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
)

type SessionOptions struct {
	// SuppressRefreshWhileEditing makes Refresh skip a full reload while
	// any editor is in Editing.
	SuppressRefreshWhileEditing bool
}

// Session is the comment model of one open pull request view. The view
// creates it, passes it to whoever needs it and drops it on close.
type Session struct {
	Store   *Store
	Editors *Editors
	opts    SessionOptions
}

func NewSession(opts SessionOptions) *Session {
	return &Session{
		Store:   NewStore(EmptyState()),
		Editors: NewEditors(),
		opts:    opts,
	}
}

// Load replaces all comments with a fresh snapshot.
func (s *Session) Load(collection domain.CommentCollection) error {
	s.Editors.SetCommentingPermitted(collection.CanCreate)
	if err := s.Store.Dispatch(FetchAll{Comments: collection.Comments}); err != nil {
		return err
	}
	logger.Log("Review: loaded %d comments (commenting permitted: %v)", len(collection.Comments), collection.CanCreate)
	return nil
}

// Refresh is Load for pushed or periodic reloads. It reports false when
// the reload was skipped to protect an editor in progress.
func (s *Session) Refresh(collection domain.CommentCollection) (bool, error) {
	if s.opts.SuppressRefreshWhileEditing && s.Editors.AnyEditing() {
		logger.Log("Review: skipped refresh of %d comments while editing", len(collection.Comments))
		return false, nil
	}
	return true, s.Load(collection)
}

// CommentCreated stores the server's version of a new comment and closes
// the editor it was submitted from, in that order.
func (s *Session) CommentCreated(anchor Anchor, comment domain.Comment) error {
	if err := s.Store.Dispatch(CreateComment{Comment: comment}); err != nil {
		return err
	}
	if _, ok := s.Store.State().Comment(comment.ID); !ok {
		return fmt.Errorf("created comment %s missing from store", comment.ID)
	}
	if s.Editors.Status(anchor) == EditorSubmitting {
		return s.Editors.Confirm(anchor)
	}
	return nil
}

// CommentFailed sends the editor back to Editing so the draft survives.
func (s *Session) CommentFailed(anchor Anchor) error {
	return s.Editors.Fail(anchor)
}

func (s *Session) ReplyCreated(parentID string, reply domain.Reply) error {
	if err := s.Store.Dispatch(CreateReply{ParentID: parentID, Reply: reply}); err != nil {
		return err
	}
	anchor := ReplyAnchor(parentID)
	if s.Editors.Status(anchor) == EditorSubmitting {
		return s.Editors.Confirm(anchor)
	}
	return nil
}

func (s *Session) CommentUpdated(comment domain.Comment) error {
	return s.Store.Dispatch(UpdateComment{Comment: comment})
}

func (s *Session) CommentDeleted(comment domain.Comment) error {
	return s.Store.Dispatch(DeleteComment{Comment: comment})
}

func (s *Session) ReplyUpdated(parentID string, reply domain.Reply) error {
	return s.Store.Dispatch(UpdateReply{ParentID: parentID, Reply: reply})
}

func (s *Session) ReplyDeleted(parentID string, reply domain.Reply) error {
	return s.Store.Dispatch(DeleteReply{ParentID: parentID, Reply: reply})
}

// Annotator returns a snapshot view for one render pass.
func (s *Session) Annotator() Annotator {
	return NewAnnotator(s.Store.State(), s.Editors)
}
