package cli

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/sakeena/internal/config"
	"github.com/smokyabdulrahman/sakeena/internal/ui"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	place, err := configuredPlace(cfg)
	if err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	opts := ui.Options{
		Config:     cfg,
		ConfigPath: path,
		Loader:     newLoader(cfg),
		Place:      place,
		Log:        logger,
	}

	// Watching needs the directory to exist; a missing one only costs the
	// live reload.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if w, err := config.Watch(path, logger); err == nil {
			defer w.Close()
			opts.Watcher = w
		} else {
			logger.Warn().Err(err).Msg("config watch disabled")
		}
	}

	_, err = tea.NewProgram(ui.NewModel(opts)).Run()
	return err
}
