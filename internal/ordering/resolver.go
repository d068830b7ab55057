package ordering

import "organizer/internal/model"

// visibleIndices returns the positions in full whose task id is in visibleIDs,
// in full-sequence order. Unknown and duplicate ids are ignored.
func visibleIndices(full []model.Task, visibleIDs []string) []int {
	set := make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		set[id] = struct{}{}
	}
	idx := make([]int, 0, len(visibleIDs))
	for i := range full {
		if _, ok := set[full[i].ID]; ok {
			idx = append(idx, i)
		}
	}
	return idx
}

func pick(full []model.Task, idx []int) []model.Task {
	sub := make([]model.Task, len(idx))
	for slot, i := range idx {
		sub[slot] = full[i]
	}
	return sub
}

// writeBack places sub into a copy of full at exactly the idx positions.
// Tasks outside idx keep their absolute slots.
func writeBack(full []model.Task, idx []int, sub []model.Task) []model.Task {
	out := make([]model.Task, len(full))
	copy(out, full)
	for slot, i := range idx {
		out[i] = sub[slot]
	}
	return out
}

// ReorderVisible moves movedID to the position overID holds within the
// visible subsequence of full, then writes the subsequence back into the
// slots it came from. Tasks outside visibleIDs never move.
//
// It is a no-op (returning full, false) when either id is not visible or
// the ids are equal.
func ReorderVisible(full []model.Task, movedID, overID string, visibleIDs []string) ([]model.Task, bool) {
	if movedID == "" || movedID == overID {
		return full, false
	}
	idx := visibleIndices(full, visibleIDs)
	sub := pick(full, idx)

	oldIndex := indexOfTask(sub, movedID)
	newIndex := indexOfTask(sub, overID)
	if oldIndex < 0 || newIndex < 0 || oldIndex == newIndex {
		return full, false
	}

	reordered := moveAndShift(sub, oldIndex, newIndex)
	return Densify(writeBack(full, idx, reordered)), true
}

// ReorderAcrossGroups handles a drop into a group (board column).
//
// The moved task first adopts target. With a reference task (refID != "")
// it lands immediately before the reference in the visible subsequence.
// Without one it lands after the last visible member of target, the moved
// task itself included, or at the end of the subsequence when target has
// no visible member.
//
// The end-of-group scan only sees visible tasks. When a filter hides the
// true last member of target, the insertion point is computed from the
// visible members alone.
//
// Any missing id makes the whole call a no-op: the group is not reassigned
// either.
//
// Membership in target is exact reference equality. Use
// ReorderAcrossGroupsFunc with MemberOf to count tasks the way the board
// shows them.
func ReorderAcrossGroups(full []model.Task, movedID, refID string, target model.GroupRef, visibleIDs []string) ([]model.Task, bool) {
	return ReorderAcrossGroupsFunc(full, movedID, refID, target, visibleIDs, func(ref model.GroupRef) bool {
		return ref == target
	})
}

// ReorderAcrossGroupsFunc is ReorderAcrossGroups with the end-of-group scan
// counting every task whose reference satisfies in as a member of target.
func ReorderAcrossGroupsFunc(full []model.Task, movedID, refID string, target model.GroupRef, visibleIDs []string, in func(model.GroupRef) bool) ([]model.Task, bool) {
	if movedID == "" || movedID == refID {
		return full, false
	}
	regrouped, ok := ReassignGroup(full, movedID, target)
	if !ok {
		return full, false
	}

	idx := visibleIndices(regrouped, visibleIDs)
	sub := pick(regrouped, idx)

	fromIndex := indexOfTask(sub, movedID)
	if fromIndex < 0 {
		return full, false
	}

	var toIndex int
	if refID != "" {
		toIndex = indexOfTask(sub, refID)
		if toIndex < 0 {
			return full, false
		}
	} else {
		toIndex = len(sub)
		for i := len(sub) - 1; i >= 0; i-- {
			if in(sub[i].GroupID) {
				toIndex = i + 1
				break
			}
		}
	}

	// Removal shifts everything after fromIndex down by one.
	insertAt := toIndex
	if toIndex > fromIndex {
		insertAt = toIndex - 1
	}

	reordered := moveAndShift(sub, fromIndex, insertAt)
	out := Densify(writeBack(regrouped, idx, reordered))
	if sameSequence(full, out) {
		return full, false
	}
	return out, true
}
