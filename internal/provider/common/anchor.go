package common

import (
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
)

// Side says which version of a file a line number refers to.
type Side string

const (
	SideOld Side = "LEFT"
	SideNew Side = "RIGHT"
)

type LineRef struct {
	Hunk string
	Line domain.DiffLine
}

type fileLines struct {
	old map[int]LineRef
	new map[int]LineRef
}

// AnchorIndex maps file line numbers of the current diff to the hunk and
// diff line that display them. Providers use it to turn server-side line
// positions into locations.
type AnchorIndex struct {
	files map[string]*fileLines
}

func NewAnchorIndex(diff *domain.Diff) *AnchorIndex {
	idx := &AnchorIndex{files: map[string]*fileLines{}}
	if diff == nil {
		return idx
	}

	for _, file := range diff.Files {
		fl := &fileLines{old: map[int]LineRef{}, new: map[int]LineRef{}}
		for _, hunk := range file.Hunks {
			for _, line := range hunk.Lines {
				ref := LineRef{Hunk: hunk.Header, Line: line}
				if line.OldLine > 0 {
					fl.old[line.OldLine] = ref
				}
				if line.NewLine > 0 {
					fl.new[line.NewLine] = ref
				}
			}
		}
		idx.files[file.Path()] = fl
		if file.IsRenamed && file.OldPath != "" {
			idx.files[file.OldPath] = fl
		}
	}
	return idx
}

func (idx *AnchorIndex) HasFile(path string) bool {
	_, ok := idx.files[path]
	return ok
}

func (idx *AnchorIndex) Resolve(path string, side Side, line int) (LineRef, bool) {
	fl, ok := idx.files[path]
	if !ok || line <= 0 {
		return LineRef{}, false
	}
	if side == SideOld {
		ref, ok := fl.old[line]
		return ref, ok
	}
	ref, ok := fl.new[line]
	return ref, ok
}

// Location resolves a line to an inline location. A context line gets
// both numbers, whichever side it was addressed from.
func (idx *AnchorIndex) Location(path string, side Side, line int) (*domain.Location, bool) {
	ref, ok := idx.Resolve(path, side, line)
	if !ok {
		return nil, false
	}
	loc := review.LocationForLine(path, ref.Hunk, ref.Line)
	return &loc, true
}

// SideLocation builds a location from one side's line number without
// consulting the diff. Used for lines the current diff does not show.
func SideLocation(path, hunk string, side Side, line int) *domain.Location {
	loc := &domain.Location{File: path, Hunk: hunk}
	if side == SideOld {
		loc.OldLineNumber = line
	} else {
		loc.NewLineNumber = line
	}
	return loc
}
