package cli

import (
	"fmt"
	"slices"
	"strings"

	"organizer/internal/format"
	"organizer/internal/store"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change user defaults",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path, "config": cfg}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config key (omit value to clear it)",
		Long:  "Keys: " + strings.Join(store.ConfigKeys, ", "),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], ""
			if len(args) == 2 {
				value = args[1]
			}
			if err := validateConfigValue(key, value); err != nil {
				return writeErr(cmd, err)
			}

			// app.cfg is empty when the file failed to parse; reload to surface the error.
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Set(key, value); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}

func validateConfigValue(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	switch key {
	case "backend":
		if !slices.Contains([]string{store.BackendFile, store.BackendSQLite, store.BackendMemory}, value) {
			return fmt.Errorf("unknown backend: %s (want file|sqlite|memory)", value)
		}
	case "format":
		if !format.Valid(value) {
			return fmt.Errorf("unknown format: %s (want json|edn|text)", value)
		}
	case "logLevel":
		if _, err := log.ParseLevel(value); err != nil {
			return err
		}
	}
	return nil
}
