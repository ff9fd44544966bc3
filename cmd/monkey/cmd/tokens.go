package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/foundation/lang/lexer"
	"github.com/msto63/monkey/foundation/lang/token"
)

var tokensPositions bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file|->",
	Short: "Print the tokens of a source file",
	Long: `Tokenizes a source file (or stdin with "-") and prints one token per
line up to and including EOF.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVarP(&tokensPositions, "positions", "p", false, "prefix tokens with line:column")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return printError(cmd, "reading source", err)
	}

	out := cmd.OutOrStdout()

	if !tokensPositions {
		tokens, err := newEngine(false, lang.NoInputLimit).Tokenize(src)
		if err != nil {
			return printError(cmd, "tokenizing", err)
		}
		for _, tok := range tokens {
			fmt.Fprintln(out, tok)
		}
		return nil
	}

	// Positions are only known while lexing
	l := lexer.New(src)
	for {
		tok := l.NextToken()
		pos := l.Pos()
		fmt.Fprintf(out, "%d:%d\t%s\n", pos.Line, pos.Column, tok)
		if tok.Type == token.EOF {
			return nil
		}
	}
}

// readSource reads the named file, or stdin for "-"
func readSource(cmd *cobra.Command, name string) (string, error) {
	var data []byte
	var err error

	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to read source").
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("source", name)
	}
	return string(data), nil
}
