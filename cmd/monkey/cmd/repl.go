package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/msto63/monkey/internal/history/store"
	"github.com/msto63/monkey/internal/repl"
)

var (
	replMode      string
	replStrict    bool
	replNoHistory bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the line-oriented REPL",
	Long: `Reads lines from stdin and prints the result for each line.

Modes:
  tokens  - print every token of the line (default)
  ast     - parse the line and print the statements or the parser errors

REPL commands:
  .mode [tokens|ast]  - show or switch the mode
  .help               - show help
  .exit               - leave (configurable via repl.exit_command)`,
	RunE: runREPL,
}

func init() {
	addREPLFlags(replCmd)
	rootCmd.AddCommand(replCmd)
}

func addREPLFlags(c *cobra.Command) {
	c.Flags().StringVarP(&replMode, "mode", "m", "", "output mode: tokens or ast (default from config)")
	c.Flags().BoolVar(&replStrict, "strict", false, "report unexpected statement starts as errors")
	c.Flags().BoolVar(&replNoHistory, "no-history", false, "do not record inputs")
}

// newREPL builds a REPL from config and flags. The returned store may be
// nil and must be closed by the caller otherwise.
func newREPL() (*repl.REPL, store.HistoryStore) {
	var hist store.HistoryStore
	if !replNoHistory {
		h, err := openHistory(false)
		if err != nil {
			// History is optional, the REPL works without it
			logger.LogError(err)
		} else {
			hist = h
		}
	}

	mode := replMode
	if mode == "" {
		mode = cfg.REPL.Mode
	}

	r := repl.New(repl.Options{
		Prompt:         cfg.REPL.Prompt,
		ExitCommand:    cfg.REPL.ExitCommand,
		Mode:           mode,
		Engine:         newEngine(replStrict, cfg.Lexer.MaxInputLength),
		Logger:         logger,
		Store:          hist,
		HistoryTimeout: cfg.History.Timeout.Duration,
	})

	return r, hist
}

func runREPL(cmd *cobra.Command, args []string) error {
	r, hist := newREPL()
	if hist != nil {
		defer hist.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return r.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
