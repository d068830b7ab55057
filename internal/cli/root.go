package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"organizer/internal/format"
	"organizer/internal/organizer"
	"organizer/internal/store"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	Format     string
	PrettyJSON bool
	LogLevel   string

	cfg *store.Config
	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "organizer",
		Short:        "Task organizer: ordered tasks grouped by project",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a store with sample data
  organizer init --sample

  # Show the board as text
  organizer board --format text

  # Move a task before another one in the active view
  organizer tasks move task-5 --over task-1 --filter active

  # Direct task lookup (shortcut for: organizer tasks show <task-id>)
  organizer task-1
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ORGANIZER_DIR", ""), "Path to store dir (default: nearest .organizer directory)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("ORGANIZER_BACKEND", ""), "Storage backend (file|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ORGANIZER_FORMAT", ""), "Output format (json|edn|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("ORGANIZER_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newFocusCmd(app))
	cmd.AddCommand(newFilterCmd(app))

	return cmd
}

// resolve fills unset options from the config file, then from defaults.
// Flags and environment variables are already applied at this point.
func (app *App) resolve(cmd *cobra.Command) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring config: %v\n", err)
		cfg = &store.Config{}
	}
	app.cfg = cfg

	app.Backend = firstNonEmpty(app.Backend, cfg.Backend, store.BackendFile)
	app.Format = strings.ToLower(firstNonEmpty(app.Format, cfg.Format, format.JSON))
	app.LogLevel = firstNonEmpty(app.LogLevel, cfg.LogLevel, "warn")
	if !format.Valid(app.Format) {
		return writeErr(cmd, fmt.Errorf("unknown format: %s (want json|edn|text)", app.Format))
	}
	if app.Format == format.Text {
		format.ApplyColorProfile()
	}

	level, err := log.ParseLevel(app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log.New()
	app.log.SetOutput(cmd.ErrOrStderr())
	app.log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	app.log.SetLevel(level)

	if app.Dir == "" {
		app.Dir = cfg.Dir
	}
	if app.Dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Dir = d
	}
	return nil
}

func (app *App) openStore(ctx context.Context) (*store.Store, error) {
	b, err := store.OpenBackend(ctx, app.Backend, app.Dir)
	if err != nil {
		return nil, err
	}
	return store.New(b, app.log.WithField("dir", app.Dir)), nil
}

// withOrganizer opens the store, runs fn against the organizer and closes the
// store again. A failed write after fn is reported as the command's error.
func withOrganizer(cmd *cobra.Command, app *App, fn func(ctx context.Context, o *organizer.Organizer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := app.openStore(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer st.Close()

	opts := []organizer.Option{organizer.WithLogger(app.log)}
	if app.cfg != nil {
		opts = append(opts, organizer.WithDefaultColor(app.cfg.DefaultColor))
	}
	o, err := organizer.Open(ctx, st, opts...)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(ctx, o); err != nil {
		return err
	}
	if err := o.PersistErr(); err != nil {
		return writeErr(cmd, fmt.Errorf("save: %w", err))
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
