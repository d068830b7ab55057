package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var sample, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.openStore(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			empty, err := st.Empty(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			seeded := false
			switch {
			case sample && !empty && !force:
				return writeErr(cmd, errors.New("store already has data; pass --force to replace it with the sample set"))
			case sample:
				if err := st.Seed(ctx); err != nil {
					return writeErr(cmd, err)
				}
				seeded = true
			case empty:
				if err := st.SaveProjects(ctx, nil); err != nil {
					return writeErr(cmd, err)
				}
				if err := st.SaveTasks(ctx, nil); err != nil {
					return writeErr(cmd, err)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":     app.Dir,
					"backend": app.Backend,
					"sample":  seeded,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Seed the sample projects and tasks")
	cmd.Flags().BoolVar(&force, "force", false, "With --sample, replace existing data")
	return cmd
}
