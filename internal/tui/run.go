package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"kharcha/internal/service"
)

// Run starts the quick-capture interface and blocks until the user quits
// or the context is cancelled.
func Run(ctx context.Context, store service.Store, parser service.ExpenseParser) error {
	if store == nil {
		return fmt.Errorf("storage is required")
	}
	if parser == nil {
		return fmt.Errorf("parser is required")
	}

	program := tea.NewProgram(
		newModel(store, parser),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		// Context cancellation is a normal way to leave the screen.
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("capture interface failed: %w", err)
	}
	return nil
}
