package views

import (
	"testing"
	"time"

	"organizer/internal/model"

	"github.com/google/go-cmp/cmp"
)

var doneAt = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func task(id, group string, order int, done bool) model.Task {
	t := model.Task{ID: id, Title: id, GroupID: model.Group(group), Order: order}
	if done {
		at := doneAt
		t.CompletedAt = &at
	}
	return t
}

func TestFilterByStatus(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("a", "", 0, false),
		task("b", "", 1, true),
		task("c", "", 2, false),
		task("d", "", 3, true),
	}
	cases := []struct {
		mode model.StatusFilter
		want []string
	}{
		{model.FilterAll, []string{"a", "b", "c", "d"}},
		{model.FilterActive, []string{"a", "c"}},
		{model.FilterCompleted, []string{"b", "d"}},
		{model.StatusFilter("bogus"), []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, IDs(FilterByStatus(tasks, tc.mode))); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupByProject_InducedSubsequence(t *testing.T) {
	t.Parallel()

	projects := []model.Project{
		{ID: "p2", Name: "Work", Order: 1},
		{ID: "p1", Name: "Personal", Order: 0},
	}
	tasks := []model.Task{
		task("a", "p2", 0, false),
		task("b", "", 1, false),
		task("c", "p1", 2, false),
		task("d", "p2", 3, true),
		task("e", "gone", 4, false),
	}

	got := GroupByProject(tasks, projects)
	if len(got) != 3 {
		t.Fatalf("groups = %d; want 3", len(got))
	}

	type col struct {
		ID    string
		Tasks []string
	}
	var cols []col
	for _, g := range got {
		cols = append(cols, col{ID: g.Project.ID, Tasks: IDs(g.Tasks)})
	}
	want := []col{
		{ID: "p1", Tasks: []string{"c"}},
		{ID: "p2", Tasks: []string{"a", "d"}},
		{ID: UnassignedID, Tasks: []string{"b", "e"}},
	}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
	if !got[2].Unassigned || got[2].Project.Order != 2 {
		t.Fatalf("unassigned group should sort last: %#v", got[2].Project)
	}
	if !got[2].Ref().IsUnassigned() || got[1].Ref() != model.Group("p2") {
		t.Fatalf("unexpected group refs: %v %v", got[1].Ref(), got[2].Ref())
	}
}

func TestGroupByProject_EmptyGroupsPresent(t *testing.T) {
	t.Parallel()

	got := GroupByProject(nil, []model.Project{{ID: "p1", Order: 0}})
	if len(got) != 2 {
		t.Fatalf("groups = %d; want 2", len(got))
	}
	for _, g := range got {
		if g.Tasks == nil || len(g.Tasks) != 0 {
			t.Fatalf("expected empty non-nil task list for %s", g.Project.ID)
		}
	}
}

func TestPickFocusTask(t *testing.T) {
	t.Parallel()

	if _, ok := PickFocusTask(nil); ok {
		t.Fatalf("empty set should have no focus task")
	}

	mixed := []model.Task{task("a", "", 0, true), task("b", "", 1, false), task("c", "", 2, false)}
	if got, ok := PickFocusTask(mixed); !ok || got.ID != "b" {
		t.Fatalf("focus = %v, %v; want b", got.ID, ok)
	}

	allDone := []model.Task{task("a", "", 0, true), task("b", "", 1, true)}
	if got, ok := PickFocusTask(allDone); !ok || got.ID != "a" {
		t.Fatalf("focus = %v, %v; want a", got.ID, ok)
	}
}

func TestCountCompletedAndInGroup(t *testing.T) {
	t.Parallel()

	projects := []model.Project{{ID: "p1", Order: 0}}
	tasks := []model.Task{task("a", "p1", 0, true), task("b", "", 1, false), task("c", "p1", 2, false)}

	if n := CountCompleted(tasks); n != 1 {
		t.Fatalf("completed = %d; want 1", n)
	}
	if diff := cmp.Diff([]string{"a", "c"}, IDs(InGroup(tasks, projects, model.Group("p1")))); diff != "" {
		t.Fatalf("p1 members (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, IDs(InGroup(tasks, projects, model.Unassigned()))); diff != "" {
		t.Fatalf("unassigned members (-want +got):\n%s", diff)
	}
}

func TestUpcoming(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("a", "", 0, false),
		task("b", "", 1, false),
		task("c", "", 2, true),
		task("d", "", 3, false),
		task("e", "", 4, false),
	}
	if diff := cmp.Diff([]string{"b", "d"}, IDs(Upcoming(tasks, "a", 2))); diff != "" {
		t.Fatalf("upcoming (-want +got):\n%s", diff)
	}
	if got := Upcoming(tasks, "missing", 3); len(got) != 0 {
		t.Fatalf("unknown id should yield nothing, got %v", IDs(got))
	}
}
