package store

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"organizer/internal/model"

	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDecodeTasks_CleanPayloadUnchanged(t *testing.T) {
	t.Parallel()

	in := `[
		{"id":"a","title":"A","groupId":"p1","order":0,"completedAt":null},
		{"id":"b","title":"B","groupId":null,"order":1,"completedAt":"2026-01-05T12:00:00Z"}
	]`
	tasks, changed := DecodeTasks([]byte(in))
	require.False(t, changed)
	require.Equal(t, []string{"a", "b"}, taskIDs(tasks))
	require.True(t, tasks[0].GroupID.Is("p1"))
	require.True(t, tasks[1].GroupID.IsUnassigned())
	require.NotNil(t, tasks[1].CompletedAt)
	require.True(t, tasks[1].CompletedAt.Equal(time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)))
}

func TestDecodeTasks_MissingOrderUsesPosition(t *testing.T) {
	t.Parallel()

	in := `[
		{"id":"a","title":"A","groupId":null,"completedAt":null},
		{"id":"b","title":"B","groupId":null,"completedAt":null},
		{"id":"c","title":"C","groupId":null,"order":0,"completedAt":null}
	]`
	tasks, changed := DecodeTasks([]byte(in))
	require.True(t, changed)
	// a gets 0 and c has 0: the stable sort keeps a before c.
	require.Equal(t, []string{"a", "c", "b"}, taskIDs(tasks))
	for i, tk := range tasks {
		require.Equal(t, i, tk.Order)
	}
}

func TestDecodeTasks_SortsAndDensifies(t *testing.T) {
	t.Parallel()

	in := `[
		{"id":"a","title":"A","groupId":null,"order":9,"completedAt":null},
		{"id":"b","title":"B","groupId":null,"order":2,"completedAt":null}
	]`
	tasks, changed := DecodeTasks([]byte(in))
	require.True(t, changed)
	require.Equal(t, []string{"b", "a"}, taskIDs(tasks))
	require.Equal(t, 0, tasks[0].Order)
	require.Equal(t, 1, tasks[1].Order)
}

func TestDecodeTasks_CoercesGroupID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		record    string
		wantGroup model.GroupRef
	}{
		{"number", `{"id":"a","title":"A","groupId":5,"order":0,"completedAt":null}`, model.Unassigned()},
		{"object", `{"id":"a","title":"A","groupId":{"x":1},"order":0,"completedAt":null}`, model.Unassigned()},
		{"blank string", `{"id":"a","title":"A","groupId":"  ","order":0,"completedAt":null}`, model.Unassigned()},
		{"legacy projectId", `{"id":"a","title":"A","projectId":"p2","order":0,"completedAt":null}`, model.Group("p2")},
		{"legacy projectId null", `{"id":"a","title":"A","projectId":null,"order":0,"completedAt":null}`, model.Unassigned()},
		{"missing", `{"id":"a","title":"A","order":0,"completedAt":null}`, model.Unassigned()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tasks, changed := DecodeTasks([]byte("[" + tc.record + "]"))
			require.True(t, changed)
			require.Len(t, tasks, 1)
			require.True(t, tc.wantGroup.Equal(tasks[0].GroupID), "group = %v", tasks[0].GroupID)
		})
	}
}

func TestDecodeTasks_NotAnArrayLoadsEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"id":"a"}`, `"tasks"`, `not json`, `null`} {
		tasks, changed := DecodeTasks([]byte(in))
		require.Empty(t, tasks, in)
		require.NotNil(t, tasks, in)
		require.False(t, changed, in)
	}
}

func TestDecodeTasks_RepairsIDsAndDropsNonObjects(t *testing.T) {
	t.Parallel()

	in := `[
		{"id":"a","title":"A","groupId":null,"order":0,"completedAt":null},
		42,
		{"id":"a","title":"dup","groupId":null,"order":1,"completedAt":null},
		{"title":"no id","groupId":null,"order":2,"completedAt":null}
	]`
	tasks, changed := DecodeTasks([]byte(in))
	require.True(t, changed)
	require.Len(t, tasks, 3)
	require.Equal(t, "a", tasks[0].ID)
	seen := map[string]bool{}
	for _, tk := range tasks {
		require.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
	require.True(t, strings.HasPrefix(tasks[1].ID, TaskIDPrefix+"-"))
	require.Equal(t, "dup", tasks[1].Title)
}

func TestDecodeTasks_EpochMillisCompletedAt(t *testing.T) {
	t.Parallel()

	ms := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC).UnixMilli()
	in := `[{"id":"a","title":"A","groupId":null,"order":0,"completedAt":` + strconv.FormatInt(ms, 10) + `}]`
	tasks, changed := DecodeTasks([]byte(in))
	require.True(t, changed)
	require.NotNil(t, tasks[0].CompletedAt)
	require.Equal(t, ms, tasks[0].CompletedAt.UnixMilli())
}

func TestDecodeProjects(t *testing.T) {
	t.Parallel()

	clean := `[{"id":"p1","name":"Personal","color":"#16a34a","order":0}]`
	projects, changed := DecodeProjects([]byte(clean))
	require.False(t, changed)
	require.Equal(t, []model.Project{{ID: "p1", Name: "Personal", Color: "#16a34a", Order: 0}}, projects)

	messy := `[{"id":"p2","name":"Work","color":"#2563eb","order":4},{"id":"p1","name":"Personal","color":"#16a34a"}]`
	projects, changed = DecodeProjects([]byte(messy))
	require.True(t, changed)
	require.Equal(t, "p2", projects[0].ID)
	require.Equal(t, 0, projects[0].Order)
	require.Equal(t, "p1", projects[1].ID)
	require.Equal(t, 1, projects[1].Order)
}

func TestEncodeDecode_NormalizedFormIsStable(t *testing.T) {
	t.Parallel()

	in := `[{"title":"x","projectId":"p1"},{"id":"b","title":"y","groupId":7,"order":0}]`
	tasks, changed := DecodeTasks([]byte(in))
	require.True(t, changed)

	b, err := EncodeTasks(tasks)
	require.NoError(t, err)
	again, changed := DecodeTasks(b)
	require.False(t, changed, "normalized payload should decode clean: %s", b)
	require.Equal(t, taskIDs(tasks), taskIDs(again))
}

func TestDecodeFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    model.StatusFilter
		changed bool
	}{
		{"active", model.FilterActive, false},
		{"completed", model.FilterCompleted, false},
		{"all", model.FilterAll, false},
		{" active\n", model.FilterActive, true},
		{`"active"`, model.FilterActive, true},
		{"weird", model.FilterAll, true},
		{`"weird"`, model.FilterAll, true},
		{`"broken`, model.FilterAll, true},
	}
	for _, tc := range tests {
		f, changed := DecodeFilter([]byte(tc.in))
		require.Equal(t, tc.want, f, "DecodeFilter(%q)", tc.in)
		require.Equal(t, tc.changed, changed, "DecodeFilter(%q) changed", tc.in)
	}

	require.Equal(t, "completed", string(EncodeFilter(model.FilterCompleted)))
	require.Equal(t, "all", string(EncodeFilter("")))
}
