package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/monkey/internal/tui/console"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long: `Starts the terminal user interface of the REPL.

Navigation:
  Enter       - evaluate the input line
  Up/Down     - previous inputs
  PgUp/PgDn   - scroll output
  Ctrl+L      - clear output
  Esc, Ctrl+C - quit`,
	RunE: runTUI,
}

func init() {
	addREPLFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Log lines would corrupt the alternate screen
	if logFile != nil {
		logger = logger.WithOutput(logFile)
	} else {
		logger = logger.WithOutput(io.Discard)
	}

	r, hist := newREPL()
	if hist != nil {
		defer hist.Close()
	}

	p := tea.NewProgram(
		console.New(context.Background(), r, hist),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return printError(cmd, "running TUI", err)
	}

	return nil
}
