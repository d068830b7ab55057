package ordering

import (
	"fmt"
	"testing"
	"time"

	"organizer/internal/model"

	"github.com/google/go-cmp/cmp"
)

func mk(id, group string) model.Task {
	return model.Task{ID: id, Title: id, GroupID: model.Group(group)}
}

func seq(ts ...model.Task) []model.Task { return Densify(ts) }

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

func groups(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].GroupID.String()
	}
	return out
}

func assertDense(t *testing.T, tasks []model.Task) {
	t.Helper()
	seen := map[int]bool{}
	for i, tk := range tasks {
		if tk.Order != i {
			t.Fatalf("task %s at index %d has order %d; want dense ranks (orders: %v)", tk.ID, i, tk.Order, orders(tasks))
		}
		if seen[tk.Order] {
			t.Fatalf("duplicate order %d", tk.Order)
		}
		seen[tk.Order] = true
	}
}

func orders(tasks []model.Task) []int {
	out := make([]int, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Order
	}
	return out
}

func TestAppend_AssignsMaxPlusOne(t *testing.T) {
	t.Parallel()

	got := Append(nil, mk("a", ""))
	if got[0].Order != 0 {
		t.Fatalf("first append: order=%d; want 0", got[0].Order)
	}
	got = Append(got, mk("b", "p1"))
	got = Append(got, mk("c", ""))
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	assertDense(t, got)
}

func TestInsertAtTop_ShiftsEveryoneDown(t *testing.T) {
	t.Parallel()

	in := seq(mk("a", "p1"), mk("b", "p2"), mk("c", ""))
	got := InsertAtTop(in, mk("new", ""))

	if diff := cmp.Diff([]string{"new", "a", "b", "c"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, orders(got)); diff != "" {
		t.Fatalf("orders (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, orders(in)); diff != "" {
		t.Fatalf("input was modified (-want +got):\n%s", diff)
	}
}

func TestInsertAfterLastOfGroup(t *testing.T) {
	t.Parallel()

	base := seq(mk("a", "p1"), mk("b", "p2"), mk("c", "p1"))

	cases := []struct {
		name  string
		group model.GroupRef
		want  []string
	}{
		{name: "after last member", group: model.Group("p1"), want: []string{"a", "b", "c", "new"}},
		{name: "middle group", group: model.Group("p2"), want: []string{"a", "b", "new", "c"}},
		{name: "empty group appends", group: model.Group("p9"), want: []string{"a", "b", "c", "new"}},
		{name: "unassigned with no members appends", group: model.Unassigned(), want: []string{"a", "b", "c", "new"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			nt := model.Task{ID: "new", GroupID: tc.group}
			got := InsertAfterLastOfGroup(base, nt, tc.group)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
			assertDense(t, got)
		})
	}
}

func TestInsertAfterLastOfGroup_MatchesUnassigned(t *testing.T) {
	t.Parallel()

	base := seq(mk("a", ""), mk("b", "p1"), mk("c", ""), mk("d", "p1"))
	got := InsertAfterLastOfGroup(base, mk("new", ""), model.Unassigned())
	if diff := cmp.Diff([]string{"a", "b", "c", "new", "d"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
}

func TestRemove_Redensifies(t *testing.T) {
	t.Parallel()

	base := seq(mk("a", ""), mk("b", ""), mk("c", ""))
	got, ok := Remove(base, "b")
	if !ok {
		t.Fatalf("expected remove to report true")
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	assertDense(t, got)

	same, ok := Remove(base, "missing")
	if ok {
		t.Fatalf("expected missing id to be a no-op")
	}
	if diff := cmp.Diff(base, same); diff != "" {
		t.Fatalf("no-op changed the sequence:\n%s", diff)
	}
}

func TestReassignGroup_DoesNotMove(t *testing.T) {
	t.Parallel()

	base := seq(mk("a", "p1"), mk("b", "p2"), mk("c", "p1"))
	got, ok := ReassignGroup(base, "a", model.Group("p2"))
	if !ok {
		t.Fatalf("expected reassign to find task")
	}
	if diff := cmp.Diff(ids(base), ids(got)); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
	if got[0].GroupID != model.Group("p2") {
		t.Fatalf("group = %v; want p2", got[0].GroupID)
	}
	if base[0].GroupID != model.Group("p1") {
		t.Fatalf("input was modified")
	}
}

func TestUnassignGroup_OnlyTouchesMembers(t *testing.T) {
	t.Parallel()

	base := seq(mk("a", "p1"), mk("b", "p2"), mk("c", "p1"), mk("d", ""))
	got := UnassignGroup(base, "p1")

	if diff := cmp.Diff([]string{"unassigned", "p2", "unassigned", "unassigned"}, groups(got)); diff != "" {
		t.Fatalf("groups (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orders(base), orders(got)); diff != "" {
		t.Fatalf("orders changed (-want +got):\n%s", diff)
	}
}

func TestSetCompleted_KeepsPosition(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := at.Add(time.Hour)
	base := seq(mk("a", ""), mk("b", ""), mk("c", ""))

	done, ok := SetCompleted(base, "b", &at)
	if !ok {
		t.Fatalf("expected completion to apply")
	}
	if diff := cmp.Diff(ids(base), ids(done)); diff != "" {
		t.Fatalf("completion moved tasks (-want +got):\n%s", diff)
	}
	if done[1].CompletedAt == nil || !done[1].CompletedAt.Equal(at) {
		t.Fatalf("completedAt = %v; want %v", done[1].CompletedAt, at)
	}

	again, ok := SetCompleted(done, "b", &later)
	if ok || !again[1].CompletedAt.Equal(at) {
		t.Fatalf("re-completing should keep the original timestamp; ok=%v at=%v", ok, again[1].CompletedAt)
	}

	reopened, ok := SetCompleted(done, "b", nil)
	if !ok || reopened[1].CompletedAt != nil {
		t.Fatalf("reopen failed: ok=%v at=%v", ok, reopened[1].CompletedAt)
	}
	if _, ok := SetCompleted(base, "missing", &at); ok {
		t.Fatalf("missing id should be a no-op")
	}
}

func TestRemoveCompleted(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	base := seq(mk("a", ""), mk("b", ""), mk("c", ""), mk("d", ""))
	base[1].CompletedAt = &at
	base[3].CompletedAt = &at

	got, n := RemoveCompleted(base)
	if n != 2 {
		t.Fatalf("removed %d; want 2", n)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	assertDense(t, got)

	if _, n := RemoveCompleted(got); n != 0 {
		t.Fatalf("second pass removed %d; want 0", n)
	}
}

func TestDensify_Idempotent(t *testing.T) {
	t.Parallel()

	in := []model.Task{{ID: "a", Order: 7}, {ID: "b", Order: 3}, {ID: "c", Order: 3}}
	once := Densify(in)
	twice := Densify(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("densify not idempotent:\n%s", diff)
	}
	assertDense(t, once)
	if in[0].Order != 7 {
		t.Fatalf("input was modified")
	}
}

func TestSortByOrder_StableOnTies(t *testing.T) {
	t.Parallel()

	in := []model.Task{{ID: "x", Order: 2}, {ID: "a", Order: 1}, {ID: "b", Order: 1}, {ID: "c", Order: 0}}
	got := SortByOrder(in)
	if diff := cmp.Diff([]string{"c", "a", "b", "x"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
}

func TestMoveID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		active, over string
		want         []string
		ok           bool
	}{
		{"a", "c", []string{"b", "c", "a"}, true},
		{"c", "a", []string{"c", "a", "b"}, true},
		{"b", "b", []string{"a", "b", "c"}, false},
		{"a", "zz", []string{"a", "b", "c"}, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_over_%s", tc.active, tc.over), func(t *testing.T) {
			got, ok := MoveID([]string{"a", "b", "c"}, tc.active, tc.over)
			if ok != tc.ok {
				t.Fatalf("ok=%v; want %v", ok, tc.ok)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertAfterLastFunc_OrphansCountAsUnassigned(t *testing.T) {
	t.Parallel()

	projects := []model.Project{{ID: "p1", Name: "Personal", Order: 0}}
	base := seq(mk("a", ""), mk("b", "ghost"), mk("c", "p1"))
	got := InsertAfterLastFunc(base, mk("new", ""), MemberOf(model.Unassigned(), projects))
	if diff := cmp.Diff([]string{"a", "b", "new", "c"}, ids(got)); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	assertDense(t, got)
}

func TestMemberOf(t *testing.T) {
	t.Parallel()

	projects := []model.Project{{ID: "p1", Name: "Personal", Order: 0}}
	cases := []struct {
		group, ref model.GroupRef
		want       bool
	}{
		{model.Group("p1"), model.Group("p1"), true},
		{model.Group("p1"), model.Unassigned(), false},
		{model.Unassigned(), model.Unassigned(), true},
		{model.Unassigned(), model.Group("ghost"), true},
		{model.Unassigned(), model.Group("p1"), false},
		{model.Group("ghost"), model.Group("ghost"), true},
		{model.Group("ghost"), model.Unassigned(), false},
	}
	for _, tc := range cases {
		if got := MemberOf(tc.group, projects)(tc.ref); got != tc.want {
			t.Fatalf("MemberOf(%s)(%s) = %v; want %v", tc.group, tc.ref, got, tc.want)
		}
	}
}
