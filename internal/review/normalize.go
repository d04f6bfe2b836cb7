package review

import "github.com/johanforsgren/lgtmthreads/internal/domain"

// Normalize indexes comments by id, by file and by line in one pass.
// Input order becomes bucket order. A comment listed twice keeps its first
// position and its last content, minus the placement fields, which stay
// with the bucket it was indexed into. An inline location without line numbers
// fails with an *InvalidLocationError.
func Normalize(comments []domain.Comment) (State, error) {
	state := EmptyState()
	for _, comment := range comments {
		stored := copyComment(comment)
		if first, seen := state.Comments[comment.ID]; seen {
			keepPlacement(stored, first)
			state.Comments[comment.ID] = stored
			continue
		}
		state.Comments[comment.ID] = stored
		if err := index(state, comment); err != nil {
			return EmptyState(), err
		}
	}
	return state, nil
}

// index appends the comment id to its bucket, mutating state in place.
// Only Normalize calls it, on maps nobody else has seen yet.
func index(state State, comment domain.Comment) error {
	switch placementOf(comment) {
	case PlacementInline:
		hunk, change, err := LineKey(*comment.Location)
		if err != nil {
			return err
		}
		changes, ok := state.Lines[hunk]
		if !ok {
			changes = map[ChangeID]*LineBucket{}
			state.Lines[hunk] = changes
		}
		bucket, ok := changes[change]
		if !ok {
			bucket = &LineBucket{Location: *comment.Location}
			changes[change] = bucket
		}
		bucket.Comments = append(bucket.Comments, comment.ID)
	case PlacementFile:
		bucket, ok := state.Files[comment.Location.File]
		if !ok {
			bucket = &FileBucket{}
			state.Files[comment.Location.File] = bucket
		}
		bucket.Comments = append(bucket.Comments, comment.ID)
	}
	return nil
}

// keepPlacement copies the fields that decide bucket membership from the
// indexed version of a comment onto its replacement.
func keepPlacement(replacement, indexed *domain.Comment) {
	replacement.Location = nil
	if indexed.Location != nil {
		loc := *indexed.Location
		replacement.Location = &loc
	}
	replacement.Outdated = indexed.Outdated
}

// placementOf folds the outdated flag into Classify: an outdated inline
// comment has lost its line and is shown at file level instead.
func placementOf(comment domain.Comment) Placement {
	placement := Classify(comment.Location)
	if placement == PlacementInline && comment.Outdated {
		if comment.Location.File == "" {
			return PlacementNone
		}
		return PlacementFile
	}
	return placement
}
