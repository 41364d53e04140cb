package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fskanban/internal/daemon"
	"fskanban/tui"
	"fskanban/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch a keyboard-driven view of the board.

When fskanband is running the view reloads as soon as the daemon sees a
change; otherwise it polls every tui.refresh.

Keyboard shortcuts:
  ←/h, →/l       - Move between columns
  ↑/k, ↓/j       - Move between tasks
  tab/J, K       - Next and previous row
  m/Enter, M     - Move task one column right or left
  a              - Add a task to the focused cell
  d d            - Delete the selected task
  r              - Reload from disk
  ?              - Show all keys
  q/Ctrl+C       - Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		style.InitStyles(cfg)

		board, err := container.GetBoardUseCase.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		notifications, err := daemon.NewClient(daemon.GetSocketPath(cfg)).Subscribe(ctx)
		if err != nil {
			container.Logger.WithError(err).Debug("daemon not available, polling instead")
			notifications = nil
		}

		m := tui.NewModel(board, container, notifications)

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
