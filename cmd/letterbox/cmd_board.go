package main

import (
	"fmt"

	"letterbox/cmd/letterbox/board"
	"letterbox/cmd/letterbox/ui"
	"letterbox/internal/solver"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runBoard launches the interactive board
func runBoard(cmd *cobra.Command, args []string) error {
	client := solver.NewClient(cfg.Endpoint(), solver.WithTimeout(cfg.GetTimeout()))

	m := board.New(cmd.Context(), board.Options{
		Solver:             client,
		PromptOnIncomplete: cfg.PromptOnIncomplete(),
		Separator:          cfg.UI.Separator,
		Prefill:            cfg.Input.Prefill,
		Styles:             ui.NewStyles(ui.ThemeNamed(cfg.UI.Theme)),
	})

	logger.Info("starting board", zap.String("endpoint", client.Endpoint()))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board failed: %w", err)
	}
	return nil
}
