package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no args", []string{"organizer"}, []string{"organizer"}},
		{"task id first", []string{"organizer", "task-1"}, []string{"organizer", "tasks", "show", "task-1"}},
		{"after value flag", []string{"organizer", "--dir", "./ws", "task-ab12cd"}, []string{"organizer", "--dir", "./ws", "tasks", "show", "task-ab12cd"}},
		{"after equals flag", []string{"organizer", "--backend=sqlite", "task-1"}, []string{"organizer", "--backend=sqlite", "tasks", "show", "task-1"}},
		{"after bool flag", []string{"organizer", "--pretty", "task-1"}, []string{"organizer", "--pretty", "tasks", "show", "task-1"}},
		{"after double dash", []string{"organizer", "--", "task-1"}, []string{"organizer", "--", "tasks", "show", "task-1"}},
		{"subcommand untouched", []string{"organizer", "tasks", "show", "task-1"}, []string{"organizer", "tasks", "show", "task-1"}},
		{"value flag holding a task id", []string{"organizer", "--dir", "task-1", "board"}, []string{"organizer", "--dir", "task-1", "board"}},
		{"bare prefix is not an id", []string{"organizer", "task-"}, []string{"organizer", "task-"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, rewriteDirectTaskLookupArgs(tc.in)); diff != "" {
				t.Fatalf("argv (-want +got):\n%s", diff)
			}
		})
	}
}
