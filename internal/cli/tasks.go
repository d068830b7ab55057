package cli

import (
	"context"
	"errors"
	"slices"
	"strings"

	"organizer/internal/model"
	"organizer/internal/organizer"
	"organizer/internal/ordering"
	"organizer/internal/views"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksRenameCmd(app))
	cmd.AddCommand(newTasksCompleteCmd(app, true))
	cmd.AddCommand(newTasksCompleteCmd(app, false))
	cmd.AddCommand(newTasksRemoveCmd(app))
	cmd.AddCommand(newTasksClearCompletedCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksDropCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in sequence order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				tasks, err := view.visible(o, o.Snapshot())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": tasks})
			})
		},
	}
	view.addFilter(cmd)
	view.addScope(cmd, "Only")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				t, ok := ordering.FindTask(o.Snapshot().Tasks, args[0])
				if !ok {
					return writeErr(cmd, errNotFound("task", args[0]))
				}
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		title      string
		project    string
		unassigned bool
		top        bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				group := model.Unassigned()
				p := strings.TrimSpace(project)
				if p != "" && unassigned {
					return writeErr(cmd, errors.New("--project and --unassigned are mutually exclusive"))
				}
				if p != "" {
					if _, ok := ordering.FindProject(o.Snapshot().Projects, p); !ok {
						return writeErr(cmd, errNotFound("project", p))
					}
					group = model.Group(p)
				}

				var t model.Task
				var err error
				switch {
				case top:
					t, err = o.AddTaskAtTop(ctx, title, group)
				case p != "" || unassigned:
					t, err = o.AddTaskAfterGroup(ctx, title, group)
				default:
					t, err = o.Append(ctx, model.Task{Title: title})
				}
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&project, "project", "", "Project id; inserts after the project's last task")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "Insert after the last task without a project")
	cmd.Flags().BoolVar(&top, "top", false, "Insert at the top of the sequence")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <task-id>",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				id := args[0]
				if _, ok := ordering.FindTask(o.Snapshot().Tasks, id); !ok {
					return writeErr(cmd, errNotFound("task", id))
				}
				if _, err := o.RenameTask(ctx, id, title); err != nil {
					return writeErr(cmd, err)
				}
				t, _ := ordering.FindTask(o.Snapshot().Tasks, id)
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksCompleteCmd(app *App, done bool) *cobra.Command {
	use, short := "complete <task-id>", "Mark a task completed"
	if !done {
		use, short = "reopen <task-id>", "Mark a task not completed"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				id := args[0]
				if _, ok := ordering.FindTask(o.Snapshot().Tasks, id); !ok {
					return writeErr(cmd, errNotFound("task", id))
				}
				o.SetCompleted(ctx, id, done)
				t, _ := ordering.FindTask(o.Snapshot().Tasks, id)
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}
	return cmd
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				if !o.RemoveTask(ctx, args[0]) {
					return writeErr(cmd, errNotFound("task", args[0]))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "removed": true}})
			})
		},
	}
	return cmd
}

func newTasksClearCompletedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				n := o.RemoveCompleted(ctx)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": n}})
			})
		},
	}
	return cmd
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var (
		view viewFlags
		over string
	)

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task onto another task's slot within a view",
		Long: strings.TrimSpace(`
Moves the task into the position of --over, shifting the tasks in between.
Only tasks visible in the view (--filter plus optional --project/--unassigned)
take part; hidden tasks keep their positions.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				snap := o.Snapshot()
				if err := requireTasks(snap, args[0], over); err != nil {
					return writeErr(cmd, err)
				}
				visible, err := view.visible(o, snap)
				if err != nil {
					return writeErr(cmd, err)
				}
				ids := views.IDs(visible)
				for _, id := range []string{args[0], over} {
					if !slices.Contains(ids, id) {
						return writeErr(cmd, errNotVisible(id))
					}
				}

				o.ReorderVisible(ctx, args[0], over, ids)
				after, _ := view.visible(o, o.Snapshot())
				return writeOut(cmd, app, map[string]any{"data": after})
			})
		},
	}
	view.addFilter(cmd)
	view.addScope(cmd, "View only")
	cmd.Flags().StringVar(&over, "over", "", "Task whose slot the moved task takes")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}

func newTasksDropCmd(app *App) *cobra.Command {
	var (
		view viewFlags
		over string
	)

	cmd := &cobra.Command{
		Use:   "drop <task-id>",
		Short: "Move a task into a project (or unassigned), like dropping it on a board column",
		Long: strings.TrimSpace(`
Reassigns the task to the target group and places it before --over, or after
the last member of the group visible in the board when --over is omitted.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				snap := o.Snapshot()
				target, ok, err := view.scope(snap)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errors.New("drop needs --project or --unassigned"))
				}
				if err := requireTasks(snap, args[0], over); err != nil {
					return writeErr(cmd, err)
				}

				// The board shows every group, so only the status filter narrows it.
				board := viewFlags{filter: view.filter}
				visible, err := board.visible(o, snap)
				if err != nil {
					return writeErr(cmd, err)
				}
				ids := views.IDs(visible)
				for _, id := range []string{args[0], over} {
					if id != "" && !slices.Contains(ids, id) {
						return writeErr(cmd, errNotVisible(id))
					}
				}

				o.MoveAcrossGroups(ctx, args[0], over, target, ids)
				t, _ := ordering.FindTask(o.Snapshot().Tasks, args[0])
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}
	view.addFilter(cmd)
	view.addScope(cmd, "Target")
	cmd.Flags().StringVar(&over, "over", "", "Task to place the moved task before")
	return cmd
}

// requireTasks checks that every non-empty id names an existing task.
func requireTasks(snap organizer.Snapshot, ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := ordering.FindTask(snap.Tasks, id); !ok {
			return errNotFound("task", id)
		}
	}
	return nil
}
