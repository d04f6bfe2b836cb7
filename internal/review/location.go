package review

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

// HunkID identifies a hunk: file path, underscore, literal hunk header.
type HunkID string

// ChangeID identifies a line inside a hunk: N<old> for unchanged lines,
// I<new> for inserted lines and D<old> for deleted lines.
type ChangeID string

type Placement int

const (
	PlacementNone Placement = iota
	PlacementFile
	PlacementInline
)

func (p Placement) String() string {
	switch p {
	case PlacementFile:
		return "file"
	case PlacementInline:
		return "inline"
	default:
		return "none"
	}
}

var ErrInvalidLocation = errors.New("invalid location")

type InvalidLocationError struct {
	Location domain.Location
	Reason   string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("%s: %s (file %q, hunk %q)", ErrInvalidLocation, e.Reason, e.Location.File, e.Location.Hunk)
}

func (e *InvalidLocationError) Is(target error) bool {
	return target == ErrInvalidLocation
}

// HunkIDFor does not normalize whitespace. Callers must pass the header
// exactly as the renderer sees it or anchors will not match.
func HunkIDFor(file, header string) HunkID {
	return HunkID(file + "_" + header)
}

func ChangeIDFor(loc domain.Location) (ChangeID, error) {
	switch {
	case loc.OldLineNumber > 0 && loc.NewLineNumber > 0:
		return ChangeID("N" + strconv.Itoa(loc.OldLineNumber)), nil
	case loc.NewLineNumber > 0:
		return ChangeID("I" + strconv.Itoa(loc.NewLineNumber)), nil
	case loc.OldLineNumber > 0:
		return ChangeID("D" + strconv.Itoa(loc.OldLineNumber)), nil
	default:
		return "", &InvalidLocationError{Location: loc, Reason: "neither old nor new line number set"}
	}
}

func IsInline(loc domain.Location) bool {
	return loc.Hunk != ""
}

func Classify(loc *domain.Location) Placement {
	switch {
	case loc == nil:
		return PlacementNone
	case IsInline(*loc):
		return PlacementInline
	case loc.File != "":
		return PlacementFile
	default:
		return PlacementNone
	}
}

// LineKey returns both identifiers of an inline location.
func LineKey(loc domain.Location) (HunkID, ChangeID, error) {
	change, err := ChangeIDFor(loc)
	if err != nil {
		return "", "", err
	}
	return HunkIDFor(loc.File, loc.Hunk), change, nil
}

// LocationForLine builds the location of a rendered diff line.
func LocationForLine(file, hunkHeader string, line domain.DiffLine) domain.Location {
	loc := domain.Location{File: file, Hunk: hunkHeader}
	switch line.Type {
	case domain.DiffLineAdd:
		loc.NewLineNumber = line.NewLine
	case domain.DiffLineDelete:
		loc.OldLineNumber = line.OldLine
	default:
		loc.OldLineNumber = line.OldLine
		loc.NewLineNumber = line.NewLine
	}
	return loc
}

// Anchor is the key of an editor: a file, a line in a hunk, or a reply
// thread when ReplyTo is set. Line anchors leave File empty since the
// hunk id already carries it.
type Anchor struct {
	File    string
	Hunk    HunkID
	Change  ChangeID
	ReplyTo string
}

func FileAnchor(path string) Anchor {
	return Anchor{File: path}
}

func LineAnchor(hunk HunkID, change ChangeID) Anchor {
	return Anchor{Hunk: hunk, Change: change}
}

func ReplyAnchor(parentID string) Anchor {
	return Anchor{ReplyTo: parentID}
}

// AnchorFor returns the editor anchor of a location. File-level locations
// map to FileAnchor; inline ones carry both identifiers.
func AnchorFor(loc domain.Location) (Anchor, error) {
	if !IsInline(loc) {
		if loc.File == "" {
			return Anchor{}, &InvalidLocationError{Location: loc, Reason: "no file"}
		}
		return FileAnchor(loc.File), nil
	}
	hunk, change, err := LineKey(loc)
	if err != nil {
		return Anchor{}, err
	}
	return LineAnchor(hunk, change), nil
}

func (a Anchor) IsReply() bool {
	return a.ReplyTo != ""
}

func (a Anchor) IsInline() bool {
	return a.Hunk != ""
}

func (a Anchor) String() string {
	switch {
	case a.IsReply():
		return "reply:" + a.ReplyTo
	case a.IsInline():
		return string(a.Hunk) + "#" + string(a.Change)
	default:
		return a.File
	}
}
