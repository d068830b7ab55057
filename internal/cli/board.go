package cli

import (
	"context"
	"fmt"

	"organizer/internal/model"
	"organizer/internal/organizer"
	"organizer/internal/ordering"
	"organizer/internal/views"

	"github.com/spf13/cobra"
)

const upcomingCount = 3

func newBoardCmd(app *App) *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks grouped by project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				snap := o.Snapshot()
				visible, err := view.visible(o, snap)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": views.GroupByProject(visible, snap.Projects)})
			})
		},
	}
	view.addFilter(cmd)
	return cmd
}

type focusView struct {
	Task     *model.Task    `json:"task"`
	Project  *model.Project `json:"project"`
	Upcoming []model.Task   `json:"upcoming"`
}

func (f focusView) String() string {
	if f.Task == nil {
		return "nothing to focus on"
	}
	s := f.Task.Title
	if f.Project != nil {
		s = fmt.Sprintf("%s  (%s)", s, f.Project.Name)
	}
	for _, t := range f.Upcoming {
		s += "\n  next: " + t.Title
	}
	return s
}

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show the task to work on now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				snap := o.Snapshot()
				out := focusView{Upcoming: []model.Task{}}
				if t, ok := views.PickFocusTask(snap.Tasks); ok {
					out.Task = &t
					if id, set := t.GroupID.ProjectID(); set {
						if p, found := ordering.FindProject(snap.Projects, id); found {
							out.Project = &p
						}
					}
					out.Upcoming = views.Upcoming(snap.Tasks, t.ID, upcomingCount)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
	return cmd
}

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "filter [all|active|completed]",
		Short:     "Show or set the saved status filter",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.FilterAll), string(model.FilterActive), string(model.FilterCompleted)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				if len(args) == 1 {
					if !model.ValidStatusFilter(args[0]) {
						return writeErr(cmd, fmt.Errorf("invalid filter %q (want all|active|completed)", args[0]))
					}
					o.SetFilter(ctx, model.ParseStatusFilter(args[0]))
				}
				snap := o.Snapshot()
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"filter":    o.Filter(),
					"completed": views.CountCompleted(snap.Tasks),
					"total":     len(snap.Tasks),
				}})
			})
		},
	}
	return cmd
}
