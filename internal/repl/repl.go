// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     repl
// Description: Line-oriented read-print loop over the language engine
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package repl implements the interactive loop: read a line, run it through
// a fresh lexer (or parser), print the result and prompt again.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/foundation/lang/token"
	"github.com/msto63/monkey/foundation/utils/stringx"
	"github.com/msto63/monkey/internal/history/store"
)

// Output modes
const (
	ModeTokens = "tokens"
	ModeAST    = "ast"
)

// LineKind classifies output lines so front ends can style them
type LineKind int

const (
	LineToken LineKind = iota
	LineStatement
	LineError
	LineInfo
)

// Line is one line of evaluation output
type Line struct {
	Kind  LineKind
	Text  string
	Token token.Token // set for LineToken
}

// Options configures a REPL
type Options struct {
	Prompt      string
	ExitCommand string
	Mode        string

	Engine *lang.Engine
	Logger *mdwlog.Logger

	// Store records every evaluated line when set
	Store          store.HistoryStore
	SessionID      string
	HistoryTimeout time.Duration
}

// REPL evaluates input lines. It is safe for concurrent use; evaluations
// run one at a time.
type REPL struct {
	options Options
	engine  *lang.Engine
	logger  *mdwlog.Logger

	evalMu sync.Mutex // serializes Eval

	mu   sync.RWMutex // guards mode
	mode string
}

// New creates a REPL with defaults for unset options
func New(opts Options) *REPL {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Engine == nil {
		opts.Engine = lang.New(lang.Options{Logger: opts.Logger})
	}
	opts.Prompt = stringx.FirstNonBlank(opts.Prompt, ">> ")
	opts.ExitCommand = stringx.FirstNonBlank(opts.ExitCommand, ".exit")
	if opts.Mode != ModeAST {
		opts.Mode = ModeTokens
	}
	if opts.SessionID == "" {
		opts.SessionID = store.NewEntryID()
	}
	if opts.HistoryTimeout <= 0 {
		opts.HistoryTimeout = 5 * time.Second
	}

	return &REPL{
		options: opts,
		engine:  opts.Engine,
		logger:  opts.Logger.WithField("component", "repl").WithRequestID(opts.SessionID),
		mode:    opts.Mode,
	}
}

// Prompt returns the configured prompt
func (r *REPL) Prompt() string { return r.options.Prompt }

// Mode returns the current output mode
func (r *REPL) Mode() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

func (r *REPL) setMode(mode string) {
	r.mu.Lock()
	r.mode = mode
	r.mu.Unlock()
}

// InputLimit returns the maximum input length in bytes, negative when
// unlimited
func (r *REPL) InputLimit() int {
	return r.engine.Options().MaxInputLength
}

// SessionID returns the ID under which history is recorded
func (r *REPL) SessionID() string { return r.options.SessionID }

// IsExit reports whether line is the exit command
func (r *REPL) IsExit(line string) bool {
	return strings.TrimSpace(line) == r.options.ExitCommand
}

// Run reads lines from in until EOF, the exit command or cancellation of
// ctx and writes results to out. A read failure is returned as error.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	r.logger.Debug("REPL started", mdwlog.Fields{"mode": r.Mode()})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, r.options.Prompt)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				r.logger.WarnWithErr("Reading input failed", err)
				return mdwerror.Wrap(err, "failed to read input").
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("repl.Run")
			}
			fmt.Fprintln(out)
			return nil
		}

		line := scanner.Text()
		if r.IsExit(line) {
			return nil
		}

		for _, l := range r.Eval(ctx, line) {
			fmt.Fprintln(out, l.Text)
		}
	}
}

// Eval evaluates one input line in the current mode. Lines starting with
// a dot are REPL commands.
func (r *REPL) Eval(ctx context.Context, line string) []Line {
	if stringx.IsBlank(line) {
		return nil
	}

	r.evalMu.Lock()
	defer r.evalMu.Unlock()

	if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ".") {
		if out, ok := r.command(trimmed); ok {
			return out
		}
	}

	result, err := r.engine.Analyze(line)
	if err != nil {
		return []Line{{Kind: LineError, Text: "error: " + err.Error()}}
	}

	mode := r.Mode()
	r.record(ctx, result, mode)

	if mode == ModeAST {
		return astLines(result)
	}
	return tokenLines(result)
}

// command handles REPL meta commands
func (r *REPL) command(line string) ([]Line, bool) {
	fields := strings.Fields(line)

	switch fields[0] {
	case ".mode":
		if len(fields) == 1 {
			return []Line{{Kind: LineInfo, Text: "mode: " + r.Mode()}}, true
		}
		switch fields[1] {
		case ModeTokens, ModeAST:
			r.setMode(fields[1])
			return []Line{{Kind: LineInfo, Text: "mode: " + fields[1]}}, true
		default:
			return []Line{{Kind: LineError, Text: fmt.Sprintf("unknown mode %q (use tokens or ast)", fields[1])}}, true
		}

	case ".help":
		return []Line{
			{Kind: LineInfo, Text: ".mode [tokens|ast]  show or switch output mode"},
			{Kind: LineInfo, Text: ".help               show this help"},
			{Kind: LineInfo, Text: r.options.ExitCommand + "               leave the REPL"},
		}, true
	}

	return nil, false
}

func (r *REPL) record(ctx context.Context, result *lang.Result, mode string) {
	if r.options.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.options.HistoryTimeout)
	defer cancel()

	entry := &store.Entry{
		SessionID:  r.options.SessionID,
		Input:      result.Input,
		Mode:       mode,
		TokenCount: len(result.Tokens),
		Errors:     result.Errors,
	}
	if err := r.options.Store.Append(ctx, entry); err != nil {
		r.logger.LogError(err)
	}
}

// tokenLines prints every token before EOF
func tokenLines(result *lang.Result) []Line {
	lines := make([]Line, 0, len(result.Tokens))
	for _, t := range result.Tokens {
		if t.Type == token.EOF {
			break
		}
		lines = append(lines, Line{Kind: LineToken, Text: t.String(), Token: t})
	}
	return lines
}

// astLines prints one line per statement or the parser errors
func astLines(result *lang.Result) []Line {
	if !result.OK() {
		lines := []Line{{Kind: LineError, Text: "parser errors:"}}
		for _, msg := range result.Errors {
			lines = append(lines, Line{Kind: LineError, Text: "\t" + msg})
		}
		return lines
	}

	lines := make([]Line, 0, len(result.Program.Statements))
	for _, s := range result.Program.Statements {
		lines = append(lines, Line{Kind: LineStatement, Text: s.String()})
	}
	return lines
}
