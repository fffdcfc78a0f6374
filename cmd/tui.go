package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/petstore/internal/shared"
	"github.com/desertthunder/petstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive pet store browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	service, err := r.petStores(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui.NewModel(ctx, service), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
