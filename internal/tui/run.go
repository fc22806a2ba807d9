package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvallesteros/rumbo/internal/flow"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/service"
)

// Run starts the browse screen and blocks until the user quits or the
// context is canceled.
func Run(ctx context.Context, controller *flow.Controller[model.RecurringTransaction], recurring service.RecurringService) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(ctx, controller, recurring), tea.WithContext(ctx))

	go func() {
		select {
		case <-sigChan:
			cancel()
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("browse screen failed: %w", err)
	}
	return nil
}
