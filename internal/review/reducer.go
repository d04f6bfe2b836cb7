package review

import (
	"fmt"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

// Action is one state transition of the comment store.
type Action interface {
	actionName() string
}

type FetchAll struct {
	Comments []domain.Comment
}

type CreateComment struct {
	Comment domain.Comment
}

type UpdateComment struct {
	Comment domain.Comment
}

type DeleteComment struct {
	Comment domain.Comment
}

type CreateReply struct {
	ParentID string
	Reply    domain.Reply
}

type UpdateReply struct {
	ParentID string
	Reply    domain.Reply
}

type DeleteReply struct {
	ParentID string
	Reply    domain.Reply
}

func (FetchAll) actionName() string      { return "fetchAll" }
func (CreateComment) actionName() string { return "createComment" }
func (UpdateComment) actionName() string { return "updateComment" }
func (DeleteComment) actionName() string { return "deleteComment" }
func (CreateReply) actionName() string   { return "createReply" }
func (UpdateReply) actionName() string   { return "updateReply" }
func (DeleteReply) actionName() string   { return "deleteReply" }

// Reduce applies action to state and returns the next state. References to
// comments or replies that do not exist are no-ops: deliveries that race
// with a delete must not break rendering. The only error is an
// *InvalidLocationError for an inline location without line numbers, in
// which case the previous state is returned unchanged.
func Reduce(state State, action Action) (State, error) {
	switch a := action.(type) {
	case FetchAll:
		return Normalize(a.Comments)
	case CreateComment:
		return createComment(state, a.Comment)
	case UpdateComment:
		return updateComment(state, a.Comment), nil
	case DeleteComment:
		return deleteComment(state, a.Comment)
	case CreateReply:
		return createReply(state, a.ParentID, a.Reply), nil
	case UpdateReply:
		return updateReply(state, a.ParentID, a.Reply), nil
	case DeleteReply:
		return deleteReply(state, a.ParentID, a.Reply), nil
	default:
		return state, fmt.Errorf("unknown action %T", action)
	}
}

func createComment(state State, comment domain.Comment) (State, error) {
	if _, exists := state.Comments[comment.ID]; exists {
		return state, nil
	}

	next := state
	switch placementOf(comment) {
	case PlacementInline:
		hunk, change, err := LineKey(*comment.Location)
		if err != nil {
			return state, err
		}
		next.Lines = cloneHunks(state.Lines)
		changes := cloneChanges(state.Lines[hunk])
		bucket := &LineBucket{Location: *comment.Location}
		if existing, ok := changes[change]; ok {
			bucket.Location = existing.Location
			bucket.Comments = appendID(existing.Comments, comment.ID)
		} else {
			bucket.Comments = []string{comment.ID}
		}
		changes[change] = bucket
		next.Lines[hunk] = changes
	case PlacementFile:
		path := comment.Location.File
		next.Files = cloneFiles(state.Files)
		var ids []string
		if existing, ok := state.Files[path]; ok {
			ids = existing.Comments
		}
		next.Files[path] = &FileBucket{Comments: appendID(ids, comment.ID)}
	}

	next.Comments = cloneComments(state.Comments)
	next.Comments[comment.ID] = copyComment(comment)
	return next, nil
}

// updateComment replaces the stored object but keeps bucket membership.
// Location and Outdated stay as stored so the bucket can still be found
// from the comment. A payload without replies keeps the stored ones,
// since update responses do not carry the thread.
func updateComment(state State, comment domain.Comment) State {
	existing, ok := state.Comments[comment.ID]
	if !ok {
		return state
	}
	updated := copyComment(comment)
	keepPlacement(updated, existing)
	if comment.Replies == nil {
		updated.Replies = existing.Replies
	}
	next := state
	next.Comments = cloneComments(state.Comments)
	next.Comments[comment.ID] = updated
	return next
}

// deleteComment resolves the bucket from the stored comment so a stale
// payload cannot leave a dangling id behind. Emptied buckets are pruned.
func deleteComment(state State, comment domain.Comment) (State, error) {
	stored, ok := state.Comments[comment.ID]
	if !ok {
		return state, nil
	}

	next := state
	switch placementOf(*stored) {
	case PlacementInline:
		hunk, change, err := LineKey(*stored.Location)
		if err != nil {
			return state, err
		}
		bucket, ok := state.Lines[hunk][change]
		if !ok {
			return state, nil
		}
		ids, removed := removeID(bucket.Comments, comment.ID)
		if !removed {
			return state, nil
		}
		next.Lines = cloneHunks(state.Lines)
		changes := cloneChanges(state.Lines[hunk])
		if len(ids) == 0 {
			delete(changes, change)
		} else {
			changes[change] = &LineBucket{Location: bucket.Location, Comments: ids}
		}
		if len(changes) == 0 {
			delete(next.Lines, hunk)
		} else {
			next.Lines[hunk] = changes
		}
	case PlacementFile:
		path := stored.Location.File
		bucket, ok := state.Files[path]
		if !ok {
			return state, nil
		}
		ids, removed := removeID(bucket.Comments, comment.ID)
		if !removed {
			return state, nil
		}
		next.Files = cloneFiles(state.Files)
		if len(ids) == 0 {
			delete(next.Files, path)
		} else {
			next.Files[path] = &FileBucket{Comments: ids}
		}
	}

	next.Comments = cloneComments(state.Comments)
	delete(next.Comments, comment.ID)
	return next, nil
}

func createReply(state State, parentID string, reply domain.Reply) State {
	parent, ok := state.Comments[parentID]
	if !ok || replyIndex(parent.Replies, reply.ID) >= 0 {
		return state
	}
	updated := *parent
	updated.Replies = make([]domain.Reply, len(parent.Replies), len(parent.Replies)+1)
	copy(updated.Replies, parent.Replies)
	updated.Replies = append(updated.Replies, reply)
	return withComment(state, &updated)
}

func updateReply(state State, parentID string, reply domain.Reply) State {
	parent, ok := state.Comments[parentID]
	if !ok {
		return state
	}
	i := replyIndex(parent.Replies, reply.ID)
	if i < 0 {
		return state
	}
	updated := *parent
	updated.Replies = make([]domain.Reply, len(parent.Replies))
	copy(updated.Replies, parent.Replies)
	updated.Replies[i] = reply
	return withComment(state, &updated)
}

func deleteReply(state State, parentID string, reply domain.Reply) State {
	parent, ok := state.Comments[parentID]
	if !ok {
		return state
	}
	i := replyIndex(parent.Replies, reply.ID)
	if i < 0 {
		return state
	}
	updated := *parent
	updated.Replies = make([]domain.Reply, 0, len(parent.Replies)-1)
	updated.Replies = append(updated.Replies, parent.Replies[:i]...)
	updated.Replies = append(updated.Replies, parent.Replies[i+1:]...)
	return withComment(state, &updated)
}

func withComment(state State, comment *domain.Comment) State {
	next := state
	next.Comments = cloneComments(state.Comments)
	next.Comments[comment.ID] = comment
	return next
}

func replyIndex(replies []domain.Reply, id string) int {
	for i, r := range replies {
		if r.ID == id {
			return i
		}
	}
	return -1
}
