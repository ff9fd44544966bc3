package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/internal/history/store"
	"github.com/msto63/monkey/pkg/core/config"
	"github.com/msto63/monkey/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	// Set by loadConfig before any command runs
	cfg     *config.Config
	logger  *mdwlog.Logger
	logFile *os.File // nil unless general.log_file is set
)

var rootCmd = &cobra.Command{
	Use:   "monkey",
	Short: "monkey - tokenizer and parser for the Monkey language",
	Long: `monkey is the front end of the Monkey programming language.

Without a subcommand an interactive REPL is started that prints the
tokens of every line you enter.

Commands:
  repl     - line-oriented REPL (tokens or AST)
  tui      - terminal UI variant of the REPL
  tokens   - print the tokens of a file
  parse    - parse a file and print the program
  history  - inspect recorded REPL inputs`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLogFile,
	RunE:               runREPL,
}

// Execute runs the command tree. Errors not printed by a command, such as
// unknown flags, are printed here.
func Execute() error {
	err := rootCmd.Execute()
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MONKEY_CONFIG or ./configs/monkey.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	addREPLFlags(rootCmd)
}

// loadConfig reads the configuration and sets up the default logger
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return printError(cmd, "loading config", err)
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}

	logCfg := logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	}
	if cfg.General.LogFile != "" {
		logFile, err = logging.OpenLogFile(cfg.General.LogFile)
		if err != nil {
			return printError(cmd, "opening log file", err)
		}
		logCfg.AdditionalOutputs = []io.Writer{logFile}
	}

	logger = logging.NewLogger(logCfg)
	mdwlog.SetDefault(logger)

	return nil
}

func closeLogFile(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// newEngine builds the language engine from the configuration. File
// commands pass lang.NoInputLimit, interactive input uses the configured
// limit.
func newEngine(strict bool, maxInputLength int) *lang.Engine {
	return lang.New(lang.Options{
		Logger:         logger,
		MaxInputLength: maxInputLength,
		Strict:         strict || cfg.REPL.Strict,
		CacheSize:      cfg.Lexer.CacheSize,
	})
}

// openHistory opens the history store, or returns nil when disabled
func openHistory(force bool) (store.HistoryStore, error) {
	if !cfg.History.Enabled && !force {
		return nil, nil
	}

	hist, err := store.NewSQLiteHistoryStore(store.SQLiteHistoryConfig{
		Path:       cfg.History.Path,
		MaxEntries: cfg.History.MaxEntries,
	})
	if err != nil {
		return nil, err
	}
	return hist, nil
}

// reportedError marks an error a command has already printed
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// printError writes err to the command's stderr and marks it as reported
func printError(cmd *cobra.Command, msg string, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", msg, err)
	return reportedError{err}
}
