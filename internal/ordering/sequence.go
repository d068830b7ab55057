// Package ordering maintains the canonical task and project sequences.
//
// Every function here is a pure transformation: it takes the current
// sequence (slice position is canonical order) and returns a new slice.
// Inputs are never modified, so a caller holding the previous slice keeps
// a consistent snapshot.
package ordering

import (
	"sort"

	"organizer/internal/model"
)

// densify returns a copy of xs with the order field of every element set to
// its index.
func densify[T any](xs []T, setOrder func(*T, int)) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := range out {
		setOrder(&out[i], i)
	}
	return out
}

// moveAndShift removes the element at from and reinserts it so that it ends
// at index to. Elements strictly between the two positions shift by one
// toward the vacated slot.
func moveAndShift[T any](xs []T, from, to int) []T {
	rest := make([]T, 0, len(xs)-1)
	rest = append(rest, xs[:from]...)
	rest = append(rest, xs[from+1:]...)
	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}
	out := make([]T, 0, len(xs))
	out = append(out, rest[:to]...)
	out = append(out, xs[from])
	out = append(out, rest[to:]...)
	return out
}

// MoveID applies the move-and-shift to an id list: activeID ends up at the
// index overID had. It reports false when either id is missing or they are
// equal.
func MoveID(ids []string, activeID, overID string) ([]string, bool) {
	if activeID == overID {
		return ids, false
	}
	from, to := -1, -1
	for i, id := range ids {
		switch id {
		case activeID:
			from = i
		case overID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return ids, false
	}
	return moveAndShift(ids, from, to), true
}

func setTaskOrder(t *model.Task, i int)       { t.Order = i }
func setProjectOrder(p *model.Project, i int) { p.Order = i }

// Densify returns tasks with Order re-assigned to 0..n-1 in slice order.
func Densify(tasks []model.Task) []model.Task {
	return densify(tasks, setTaskOrder)
}

// DensifyProjects returns projects with Order re-assigned to 0..n-1 in slice order.
func DensifyProjects(projects []model.Project) []model.Project {
	return densify(projects, setProjectOrder)
}

// SortByOrder returns a copy of tasks sorted by Order. Ties keep their input order.
func SortByOrder(tasks []model.Task) []model.Task {
	out := append([]model.Task{}, tasks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// SortProjectsByOrder returns a copy of projects sorted by Order. Ties keep their input order.
func SortProjectsByOrder(projects []model.Project) []model.Project {
	out := append([]model.Project{}, projects...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// IsDense reports whether the tasks are in slice order with Order == index.
func IsDense(tasks []model.Task) bool {
	for i := range tasks {
		if tasks[i].Order != i {
			return false
		}
	}
	return true
}

// ProjectsDense reports whether the projects are in slice order with Order == index.
func ProjectsDense(projects []model.Project) bool {
	for i := range projects {
		if projects[i].Order != i {
			return false
		}
	}
	return true
}

// MemberOf returns a membership test for group that treats references to
// projects missing from projects as Unassigned, which is where the board
// shows such tasks. A group that names an unknown project itself matches
// by reference only.
func MemberOf(group model.GroupRef, projects []model.Project) func(model.GroupRef) bool {
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}
	if pid, ok := group.ProjectID(); ok && !known[pid] {
		return func(ref model.GroupRef) bool { return ref == group }
	}
	return func(ref model.GroupRef) bool {
		if pid, ok := ref.ProjectID(); ok && !known[pid] {
			ref = model.Unassigned()
		}
		return ref == group
	}
}
