package ordering

import (
	"time"

	"organizer/internal/model"
)

// FindTask returns the task with the given id.
func FindTask(tasks []model.Task, id string) (model.Task, bool) {
	if i := indexOfTask(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return model.Task{}, false
}

func indexOfTask(tasks []model.Task, id string) int {
	if id == "" {
		return -1
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func maxTaskOrder(tasks []model.Task) int {
	max := -1
	for _, t := range tasks {
		if t.Order > max {
			max = t.Order
		}
	}
	return max
}

// Append adds t at the end of the sequence with Order = max+1 (0 when empty).
func Append(tasks []model.Task, t model.Task) []model.Task {
	t.Order = maxTaskOrder(tasks) + 1
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// InsertAtTop prepends t and re-densifies, so t is order 0 and every other
// task shifts up by one rank.
func InsertAtTop(tasks []model.Task, t model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, t)
	out = append(out, tasks...)
	return Densify(out)
}

// InsertAfterLastOfGroup inserts t immediately after the last task of group
// in the full sequence, or at the end when the group has no members.
func InsertAfterLastOfGroup(tasks []model.Task, t model.Task, group model.GroupRef) []model.Task {
	return InsertAfterLastFunc(tasks, t, func(ref model.GroupRef) bool { return ref == group })
}

// InsertAfterLastFunc inserts t immediately after the last task whose group
// reference satisfies in, or at the end when none does.
func InsertAfterLastFunc(tasks []model.Task, t model.Task, in func(model.GroupRef) bool) []model.Task {
	at := len(tasks)
	for i := len(tasks) - 1; i >= 0; i-- {
		if in(tasks[i].GroupID) {
			at = i + 1
			break
		}
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks[:at]...)
	out = append(out, t)
	out = append(out, tasks[at:]...)
	return Densify(out)
}

// Remove deletes the task with the given id and re-densifies the rest.
func Remove(tasks []model.Task, id string) ([]model.Task, bool) {
	i := indexOfTask(tasks, id)
	if i < 0 {
		return tasks, false
	}
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return Densify(out), true
}

// RemoveCompleted deletes every completed task and returns how many were removed.
func RemoveCompleted(tasks []model.Task) ([]model.Task, int) {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed() {
			out = append(out, t)
		}
	}
	removed := len(tasks) - len(out)
	if removed == 0 {
		return tasks, 0
	}
	return Densify(out), removed
}

// ReassignGroup sets the task's group. Order is not changed.
func ReassignGroup(tasks []model.Task, id string, group model.GroupRef) ([]model.Task, bool) {
	return updateTask(tasks, id, func(t *model.Task) { t.GroupID = group })
}

// UnassignGroup moves every member of the project to the unassigned group.
// No task's order or other group reference changes.
func UnassignGroup(tasks []model.Task, projectID string) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].GroupID.Is(projectID) {
			out[i].GroupID = model.Unassigned()
		}
	}
	return out
}

// SetCompleted sets or clears the completion timestamp. The task keeps its
// position. Completing an already completed task keeps the original time.
func SetCompleted(tasks []model.Task, id string, at *time.Time) ([]model.Task, bool) {
	i := indexOfTask(tasks, id)
	if i < 0 {
		return tasks, false
	}
	cur := tasks[i]
	if at == nil && !cur.Completed() {
		return tasks, false
	}
	if at != nil && cur.Completed() {
		return tasks, false
	}
	return updateTask(tasks, id, func(t *model.Task) {
		if at == nil {
			t.CompletedAt = nil
			return
		}
		ts := *at
		t.CompletedAt = &ts
	})
}

// Rename sets the task's title.
func Rename(tasks []model.Task, id, title string) ([]model.Task, bool) {
	i := indexOfTask(tasks, id)
	if i < 0 || tasks[i].Title == title {
		return tasks, false
	}
	return updateTask(tasks, id, func(t *model.Task) { t.Title = title })
}

func updateTask(tasks []model.Task, id string, fn func(*model.Task)) ([]model.Task, bool) {
	i := indexOfTask(tasks, id)
	if i < 0 {
		return tasks, false
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	fn(&out[i])
	return out, true
}

func sameSequence(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].GroupID != b[i].GroupID || a[i].Order != b[i].Order {
			return false
		}
	}
	return true
}
