package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwhitfield/clavier/internal/session"
	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/mwhitfield/clavier/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the sheet catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/clavier-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	db, creds, err := r.openCredentials()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	model := ui.NewModel(ui.ModelConfig{
		Context:  ctx,
		Auth:     r.auth,
		Sheets:   r.sheets,
		Sources:  r.sources,
		Levels:   r.levels,
		Genres:   r.genres,
		Stats:    r.stats,
		Logger:   fileLogger,
		PageSize: r.config.UI.PageSize,
	})

	store := session.NewStore(session.StoreConfig{
		Credentials: creds,
		Verifier:    r.auth,
		OnChange:    model.SessionChanged,
		Logger:      fileLogger,
	})
	model.SetSession(store)

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Attach(p)

	go store.Verify(ctx)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
