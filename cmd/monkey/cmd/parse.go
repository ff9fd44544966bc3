package cmd

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/foundation/lang/ast"
)

var (
	parseDump   bool
	parseStrict bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a source file and print the program",
	Long: `Parses a source file (or stdin with "-") and prints the program, one
statement per line. On syntax errors every error is printed and the command
fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseDump, "dump", false, "dump the AST structure")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "report unexpected statement starts as errors")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return printError(cmd, "reading source", err)
	}

	out := cmd.OutOrStdout()

	program, err := newEngine(parseStrict, lang.NoInputLimit).Parse(src)
	if err != nil {
		var mdwErr *mdwerror.Error
		if errors.As(err, &mdwErr) && mdwErr.Code() == mdwerror.CodeSyntax {
			printSyntaxErrors(cmd, mdwErr)
			return reportedError{err}
		}
		return printError(cmd, "parsing", err)
	}

	if parseDump {
		cs := spew.ConfigState{
			Indent:                  "  ",
			DisableMethods:          true,
			DisablePointerAddresses: true,
			SortKeys:                true,
		}
		cs.Fdump(out, program)
		return nil
	}

	for _, s := range program.Statements {
		fmt.Fprintln(out, s.String())
	}

	lets, returns := ast.CountStatements(program)
	logger.Debug("Program parsed", mdwlog.Fields{
		"lets":    lets,
		"returns": returns,
	})

	return nil
}

func printSyntaxErrors(cmd *cobra.Command, err *mdwerror.Error) {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "parser errors:")

	msgs, _ := err.Detail("errors")
	list, _ := msgs.([]string)
	for _, msg := range list {
		fmt.Fprintf(w, "\t%s\n", msg)
	}
}
