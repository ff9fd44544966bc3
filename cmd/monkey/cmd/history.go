package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historySession string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded REPL inputs",
	Long: `Shows or deletes the inputs recorded by the REPL.

History is written when history.enabled is set in the configuration.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded inputs, oldest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded inputs",
	RunE:  runHistoryClear,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE:  runHistoryStats,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries")
	historyListCmd.Flags().StringVar(&historySession, "session", "", "only entries of this session")

	historyCmd.AddCommand(historyListCmd, historyClearCmd, historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.History.Timeout.Duration)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	hist, err := openHistory(true)
	if err != nil {
		return printError(cmd, "opening history", err)
	}
	defer hist.Close()

	ctx, cancel := historyContext()
	defer cancel()

	entries, err := hist.List(ctx, historySession, historyLimit, 0)
	if err != nil {
		return printError(cmd, "listing history", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries.")
		return nil
	}

	// List returns newest first
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Fprintln(out, entries[i].String())
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	hist, err := openHistory(true)
	if err != nil {
		return printError(cmd, "opening history", err)
	}
	defer hist.Close()

	ctx, cancel := historyContext()
	defer cancel()

	n, err := hist.Clear(ctx)
	if err != nil {
		return printError(cmd, "clearing history", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	hist, err := openHistory(true)
	if err != nil {
		return printError(cmd, "opening history", err)
	}
	defer hist.Close()

	ctx, cancel := historyContext()
	defer cancel()

	stats, err := hist.Statistics(ctx)
	if err != nil {
		return printError(cmd, "reading statistics", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Entries:     %v\n", stats["total_entries"])
	fmt.Fprintf(out, "Sessions:    %v\n", stats["sessions"])
	fmt.Fprintf(out, "With errors: %v\n", stats["entries_with_errors"])

	if modes, ok := stats["entries_by_mode"].(map[string]int64); ok && len(modes) > 0 {
		names := make([]string, 0, len(modes))
		for name := range modes {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(out, "By mode:")
		for _, name := range names {
			fmt.Fprintf(out, "  %-8s %d\n", name, modes[name])
		}
	}
	return nil
}
