package review

import (
	"errors"
	"fmt"
	"sync"
)

type EditorStatus int

const (
	EditorClosed EditorStatus = iota
	EditorEditing
	EditorSubmitting
)

func (s EditorStatus) String() string {
	switch s {
	case EditorEditing:
		return "editing"
	case EditorSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

var (
	ErrInvalidTransition      = errors.New("invalid editor transition")
	ErrCommentingNotPermitted = errors.New("commenting is not permitted")
)

// Editors tracks which anchors have an open "new comment" editor. It is
// kept apart from State so that editor changes never invalidate comment
// buckets.
//
//	Closed -> Editing -> Submitting -> Closed   (confirmed)
//	          Editing -> Closed                 (cancel)
//	          Submitting -> Editing             (submit failed)
type Editors struct {
	mu        sync.RWMutex
	status    map[Anchor]EditorStatus
	permitted bool
}

func NewEditors() *Editors {
	return &Editors{status: map[Anchor]EditorStatus{}}
}

// SetCommentingPermitted mirrors the create capability of the comment
// collection.
func (e *Editors) SetCommentingPermitted(permitted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.permitted = permitted
}

func (e *Editors) CommentingPermitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.permitted
}

func (e *Editors) Status(anchor Anchor) EditorStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status[anchor]
}

// IsOpen reports whether the anchor has an editor in Editing or Submitting.
func (e *Editors) IsOpen(anchor Anchor) bool {
	return e.Status(anchor) != EditorClosed
}

// Open moves an anchor from Closed to Editing. Opening an already open
// editor is a no-op. Only one reply editor per thread can be open, but any
// number of file and line editors can.
func (e *Editors) Open(anchor Anchor) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.permitted && !anchor.IsReply() {
		return ErrCommentingNotPermitted
	}
	switch e.status[anchor] {
	case EditorEditing, EditorSubmitting:
		return nil
	}
	e.status[anchor] = EditorEditing
	return nil
}

func (e *Editors) Cancel(anchor Anchor) error {
	return e.transition(anchor, EditorEditing, EditorClosed)
}

func (e *Editors) Submit(anchor Anchor) error {
	return e.transition(anchor, EditorEditing, EditorSubmitting)
}

// Fail returns a submitting editor to Editing; the draft text lives in
// the editor widget and is kept.
func (e *Editors) Fail(anchor Anchor) error {
	return e.transition(anchor, EditorSubmitting, EditorEditing)
}

// Confirm closes a submitting editor. Callers must only confirm once the
// created comment is in the store; Session.CommentCreated does that.
func (e *Editors) Confirm(anchor Anchor) error {
	return e.transition(anchor, EditorSubmitting, EditorClosed)
}

func (e *Editors) transition(anchor Anchor, from, to EditorStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	current := e.status[anchor]
	if current != from {
		return fmt.Errorf("%w: %s is %s, want %s", ErrInvalidTransition, anchor, current, from)
	}
	if to == EditorClosed {
		delete(e.status, anchor)
	} else {
		e.status[anchor] = to
	}
	return nil
}

// OpenAnchors returns the anchors whose editor is not closed.
func (e *Editors) OpenAnchors() []Anchor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	anchors := make([]Anchor, 0, len(e.status))
	for a := range e.status {
		anchors = append(anchors, a)
	}
	return anchors
}

// AnyEditing reports whether any editor holds text the user is still
// typing. A full refresh at that moment could clobber the draft context.
func (e *Editors) AnyEditing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range e.status {
		if s == EditorEditing {
			return true
		}
	}
	return false
}

// Reset closes every editor, for example when a new pull request is opened.
func (e *Editors) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = map[Anchor]EditorStatus{}
}
