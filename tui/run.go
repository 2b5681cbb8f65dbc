package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive chunk browser and blocks until it exits.
func Run(config ModelConfig) error {
	if config.Context == nil {
		config.Context = context.Background()
	}
	model := NewModel(config)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(config.Context),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
