package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/store"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize kanban configuration and boards",
		Long: "Create the configuration and data directories, write config.yaml if it is missing,\n" +
			"convert legacy board files, and save every board (seeding the default board on first use).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	created, err := writeConfigIfMissing(a.configDir)
	if err != nil {
		return systemError(fmt.Errorf("write config: %w", err))
	}
	if created {
		a.log.WithField("config_dir", a.configDir).Info("wrote default config.yaml")
	}

	if err := os.MkdirAll(a.dataDir, 0o755); err != nil {
		return systemError(fmt.Errorf("create data directory: %w", err))
	}

	var titles []string
	err = a.withStore(cmd, func(s *store.Store) error {
		if err := s.Save(); err != nil {
			return systemError(fmt.Errorf("save boards: %w", err))
		}
		titles = s.Titles()
		return nil
	})
	if err != nil {
		return err
	}

	if a.flags.jsonMode {
		return writeJSON(cmd, map[string]any{
			"config_dir": a.configDir,
			"data_dir":   a.dataDir,
			"boards":     titles,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config: %s\n", a.configDir)
	fmt.Fprintf(out, "Boards: %s (%d)\n", a.dataDir, len(titles))
	fmt.Fprintln(out, "kanban initialized successfully")
	return nil
}
