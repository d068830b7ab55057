// Package views derives read-only projections from the canonical task
// sequence. Nothing here is cached; callers recompute on every read.
package views

import (
	"organizer/internal/model"
	"organizer/internal/ordering"
)

// UnassignedID is the reserved id of the synthetic "no project" group.
// It is never stored and never a valid project id.
const UnassignedID = "__unassigned__"

const (
	unassignedName  = "Unassigned"
	unassignedColor = "#94a3b8"
)

// Group is one board column: a project (or the unassigned placeholder) and
// the induced subsequence of its tasks.
type Group struct {
	Project    model.Project `json:"project"`
	Unassigned bool          `json:"unassigned"`
	Tasks      []model.Task  `json:"tasks"`
}

// Ref returns the group reference a task dropped into this group adopts.
func (g Group) Ref() model.GroupRef {
	if g.Unassigned {
		return model.Unassigned()
	}
	return model.Group(g.Project.ID)
}

// UnassignedProject builds the placeholder shown for tasks without a project.
// Its order sorts after every real project.
func UnassignedProject(projects []model.Project) model.Project {
	max := -1
	for _, p := range projects {
		if p.Order > max {
			max = p.Order
		}
	}
	return model.Project{
		ID:    UnassignedID,
		Name:  unassignedName,
		Color: unassignedColor,
		Order: max + 1,
	}
}

// FilterByStatus keeps the tasks matching mode, preserving order.
// An unknown mode behaves like FilterAll.
func FilterByStatus(tasks []model.Task, mode model.StatusFilter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case model.FilterActive:
			if t.Completed() {
				continue
			}
		case model.FilterCompleted:
			if !t.Completed() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// GroupByProject returns one group per project in project order followed by
// the unassigned group. Tasks whose group references no known project are
// shown as unassigned.
func GroupByProject(tasks []model.Task, projects []model.Project) []Group {
	sorted := ordering.SortProjectsByOrder(projects)
	out := make([]Group, 0, len(sorted)+1)
	pos := make(map[string]int, len(sorted))
	for _, p := range sorted {
		pos[p.ID] = len(out)
		out = append(out, Group{Project: p, Tasks: []model.Task{}})
	}
	unassigned := len(out)
	out = append(out, Group{Project: UnassignedProject(projects), Unassigned: true, Tasks: []model.Task{}})

	for _, t := range tasks {
		i := unassigned
		if pid, ok := t.GroupID.ProjectID(); ok {
			if j, known := pos[pid]; known {
				i = j
			}
		}
		out[i].Tasks = append(out[i].Tasks, t)
	}
	return out
}

// PickFocusTask returns the first incomplete task, else the first task.
func PickFocusTask(tasks []model.Task) (model.Task, bool) {
	for _, t := range tasks {
		if !t.Completed() {
			return t, true
		}
	}
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	return tasks[0], true
}

// CountCompleted returns the number of completed tasks.
func CountCompleted(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed() {
			n++
		}
	}
	return n
}

// IDs returns the task ids in order; this is the visible id set a view hands
// to the reorder operations.
func IDs(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

// InGroup keeps the tasks belonging to ref, using the same unknown-project
// fallback as GroupByProject.
func InGroup(tasks []model.Task, projects []model.Project, ref model.GroupRef) []model.Task {
	for _, g := range GroupByProject(tasks, projects) {
		if g.Ref() == ref {
			return g.Tasks
		}
	}
	return []model.Task{}
}

// Upcoming returns up to n incomplete tasks that follow id in the sequence.
func Upcoming(tasks []model.Task, id string, n int) []model.Task {
	out := []model.Task{}
	after := false
	for _, t := range tasks {
		if len(out) >= n {
			break
		}
		if t.ID == id {
			after = true
			continue
		}
		if after && !t.Completed() {
			out = append(out, t)
		}
	}
	return out
}
