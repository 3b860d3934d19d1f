// Command prompter is the terminal teleprompter recorder.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jwulff/prompter/internal/app"
	"github.com/jwulff/prompter/internal/auth"
	"github.com/jwulff/prompter/internal/config"
	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prompter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting", zap.String("db_path", cfg.DBPath), zap.String("media_dir", cfg.MediaDir))

	m := app.New(context.Background(), app.Deps{
		Gateway:     store,
		Auth:        auth.NewService(store, log.Named("auth")),
		Log:         log.Named("app"),
		MediaDir:    cfg.MediaDir,
		ScrollSpeed: cfg.Teleprompter.ScrollSpeed,
		FontSize:    cfg.Teleprompter.FontSize,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
