package review

import "github.com/johanforsgren/lgtmthreads/internal/domain"

type FileBucket struct {
	Comments []string
}

type LineBucket struct {
	Location domain.Location
	Comments []string
}

// State is the normalized comment store. It is treated as immutable:
// reducer steps copy the map levels they touch and reuse every bucket
// and comment pointer they do not, so pointer comparison tells a
// renderer which anchors changed.
type State struct {
	Comments map[string]*domain.Comment
	Files    map[string]*FileBucket
	Lines    map[HunkID]map[ChangeID]*LineBucket
}

func EmptyState() State {
	return State{
		Comments: map[string]*domain.Comment{},
		Files:    map[string]*FileBucket{},
		Lines:    map[HunkID]map[ChangeID]*LineBucket{},
	}
}

func (s State) Comment(id string) (*domain.Comment, bool) {
	c, ok := s.Comments[id]
	return c, ok
}

func (s State) FileComments(path string) []string {
	if b, ok := s.Files[path]; ok {
		return b.Comments
	}
	return nil
}

func (s State) LineComments(hunk HunkID, change ChangeID) []string {
	if b, ok := s.Lines[hunk][change]; ok {
		return b.Comments
	}
	return nil
}

func (s State) Len() int {
	return len(s.Comments)
}

func cloneComments(m map[string]*domain.Comment) map[string]*domain.Comment {
	out := make(map[string]*domain.Comment, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFiles(m map[string]*FileBucket) map[string]*FileBucket {
	out := make(map[string]*FileBucket, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneHunks(m map[HunkID]map[ChangeID]*LineBucket) map[HunkID]map[ChangeID]*LineBucket {
	out := make(map[HunkID]map[ChangeID]*LineBucket, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneChanges(m map[ChangeID]*LineBucket) map[ChangeID]*LineBucket {
	out := make(map[ChangeID]*LineBucket, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// appendID never writes into the backing array of ids.
func appendID(ids []string, id string) []string {
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

func copyComment(c domain.Comment) *domain.Comment {
	if c.Location != nil {
		loc := *c.Location
		c.Location = &loc
	}
	if c.Replies != nil {
		replies := make([]domain.Reply, len(c.Replies))
		copy(replies, c.Replies)
		c.Replies = replies
	}
	return &c
}
