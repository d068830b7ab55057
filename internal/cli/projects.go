package cli

import (
	"context"

	"organizer/internal/organizer"
	"organizer/internal/ordering"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	cmd.AddCommand(newProjectsMoveCmd(app))
	cmd.AddCommand(newProjectsReorderCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				return writeOut(cmd, app, map[string]any{"data": o.Snapshot().Projects})
			})
		},
	}
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				p, err := o.CreateProject(ctx, name, color)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", "Project color (default: config defaultColor)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:     "update <project-id>",
		Aliases: []string{"rename", "recolor"},
		Short:   "Rename or recolor a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				id := args[0]
				if _, ok := ordering.FindProject(o.Snapshot().Projects, id); !ok {
					return writeErr(cmd, errNotFound("project", id))
				}
				var upd ordering.ProjectUpdate
				if cmd.Flags().Changed("name") {
					upd.Name = &name
				}
				if cmd.Flags().Changed("color") {
					upd.Color = &color
				}
				if _, err := o.UpdateProject(ctx, id, upd); err != nil {
					return writeErr(cmd, err)
				}
				p, _ := ordering.FindProject(o.Snapshot().Projects, id)
				return writeOut(cmd, app, map[string]any{"data": p})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <project-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project; its tasks become unassigned",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				if !o.DeleteProject(ctx, args[0]) {
					return writeErr(cmd, errNotFound("project", args[0]))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
			})
		},
	}
	return cmd
}

func newProjectsMoveCmd(app *App) *cobra.Command {
	var over string

	cmd := &cobra.Command{
		Use:   "move <project-id>",
		Short: "Move a project onto another project's slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				projects := o.Snapshot().Projects
				for _, id := range []string{args[0], over} {
					if _, ok := ordering.FindProject(projects, id); !ok {
						return writeErr(cmd, errNotFound("project", id))
					}
				}
				if ids, ok := ordering.MoveID(ordering.ProjectIDs(projects), args[0], over); ok {
					o.ReorderProjects(ctx, ids)
				}
				return writeOut(cmd, app, map[string]any{"data": o.Snapshot().Projects})
			})
		},
	}
	cmd.Flags().StringVar(&over, "over", "", "Project whose slot the moved project takes")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}

func newProjectsReorderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <project-id>...",
		Short: "Set the project order; unlisted projects keep their relative order after the listed ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, app, func(ctx context.Context, o *organizer.Organizer) error {
				projects := o.Snapshot().Projects
				for _, id := range args {
					if _, ok := ordering.FindProject(projects, id); !ok {
						return writeErr(cmd, errNotFound("project", id))
					}
				}
				o.ReorderProjects(ctx, args)
				return writeOut(cmd, app, map[string]any{"data": o.Snapshot().Projects})
			})
		},
	}
	return cmd
}
