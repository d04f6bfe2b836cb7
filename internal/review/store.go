package review

import (
	"cmp"
	"slices"
	"sync"

	"github.com/johanforsgren/lgtmthreads/internal/logger"
)

type Listener func(prev, next State)

type subscription struct {
	id int
	fn Listener
}

// Store owns the comment state of one open pull request. Dispatch applies
// actions one at a time in call order. Listeners run after each step in
// subscription order, outside the state lock; notifications are delivered
// in the same order as the state changes they describe. A listener must
// not call Dispatch.
type Store struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     State
	listeners []subscription
	nextID    int
}

func NewStore(initial State) *Store {
	if initial.Comments == nil {
		initial = EmptyState()
	}
	return &Store{state: initial}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(action Action) error {
	s.mu.Lock()
	prev := s.state
	next, err := Reduce(prev, action)
	if err != nil {
		s.mu.Unlock()
		logger.LogError("REVIEW_DISPATCH", action.actionName(), err)
		return err
	}
	s.state = next
	listeners := slices.Clone(s.listeners)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, l := range listeners {
		l.fn(prev, next)
	}
	return nil
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Select runs query against the current state.
func Select[T any](s *Store, query func(State) T) T {
	return query(s.State())
}

type LineRef struct {
	Hunk   HunkID
	Change ChangeID
}

// Changes lists the anchors whose bucket differs between two states, and
// the comments whose object was replaced, added or removed.
type Changes struct {
	Files    []string
	Lines    []LineRef
	Comments []string
}

func (c Changes) Empty() bool {
	return len(c.Files) == 0 && len(c.Lines) == 0 && len(c.Comments) == 0
}

// Changed compares two states by pointer. Since reducer steps reuse every
// bucket they do not touch, the result is exactly the set of anchors a
// renderer has to redraw.
func Changed(prev, next State) Changes {
	var changes Changes

	for path, b := range next.Files {
		if prev.Files[path] != b {
			changes.Files = append(changes.Files, path)
		}
	}
	for path := range prev.Files {
		if _, ok := next.Files[path]; !ok {
			changes.Files = append(changes.Files, path)
		}
	}

	for hunk, changesByID := range next.Lines {
		before := prev.Lines[hunk]
		for change, b := range changesByID {
			if before[change] != b {
				changes.Lines = append(changes.Lines, LineRef{Hunk: hunk, Change: change})
			}
		}
	}
	for hunk, changesByID := range prev.Lines {
		after := next.Lines[hunk]
		for change := range changesByID {
			if _, ok := after[change]; !ok {
				changes.Lines = append(changes.Lines, LineRef{Hunk: hunk, Change: change})
			}
		}
	}

	for id, c := range next.Comments {
		if prev.Comments[id] != c {
			changes.Comments = append(changes.Comments, id)
		}
	}
	for id := range prev.Comments {
		if _, ok := next.Comments[id]; !ok {
			changes.Comments = append(changes.Comments, id)
		}
	}

	slices.Sort(changes.Files)
	slices.Sort(changes.Comments)
	slices.SortFunc(changes.Lines, func(a, b LineRef) int {
		if c := cmp.Compare(a.Hunk, b.Hunk); c != 0 {
			return c
		}
		return cmp.Compare(a.Change, b.Change)
	})
	return changes
}
