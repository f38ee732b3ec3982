package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/scenic/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive widget and blocks until the user quits.
func Run(ctx context.Context, predictor widget.Predictor, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Canceling stops requests that are still in flight on exit.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := NewSurface()
	controller := widget.New(surface, predictor,
		widget.WithMaxSize(cfg.MaxSize),
		widget.WithLogger(slog.Default()),
	)

	program := tea.NewProgram(
		newModel(ctx, controller, cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	surface.Attach(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
