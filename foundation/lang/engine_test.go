// File: engine_test.go
// Title: Language Engine Tests
// Description: Tests for tokenize, parse and analyze through the engine,
//              including input limits and logging.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial test coverage

package lang

import (
	"bytes"
	"strings"
	"testing"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang/token"
)

func newTestEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	return New(opts)
}

func TestNew_Defaults(t *testing.T) {
	e := newTestEngine(Options{})
	if e.Options().MaxInputLength != DefaultMaxInputLength {
		t.Errorf("MaxInputLength = %d, want %d", e.Options().MaxInputLength, DefaultMaxInputLength)
	}
}

func TestEngine_Tokenize(t *testing.T) {
	e := newTestEngine(Options{})

	tokens, err := e.Tokenize("let x = 5;")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []token.Token{
		token.New(token.Let),
		token.NewIdent("x"),
		token.New(token.Assign),
		token.NewInt(5),
		token.New(token.Semicolon),
		token.New(token.EOF),
	}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, tokens[i], want[i])
		}
	}
}

func TestEngine_InputTooLong(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelTrace,
		Format: mdwlog.FormatJSON,
		Output: &buf,
	})
	e := New(Options{Logger: logger, MaxInputLength: 8})

	input := "let abc = 12345;"

	if _, err := e.Tokenize(input); !mdwerror.HasCode(err, mdwerror.CodeInputTooLong) {
		t.Errorf("Tokenize() error = %v, want INPUT_TOO_LONG", err)
	}
	if _, err := e.Parse(input); !mdwerror.HasCode(err, mdwerror.CodeInputTooLong) {
		t.Errorf("Parse() error = %v, want INPUT_TOO_LONG", err)
	}
	if _, err := e.Analyze(input); !mdwerror.HasCode(err, mdwerror.CodeInputTooLong) {
		t.Errorf("Analyze() error = %v, want INPUT_TOO_LONG", err)
	}

	if !strings.Contains(buf.String(), `"error_code":"INPUT_TOO_LONG"`) {
		t.Errorf("log output missing error_code: %s", buf.String())
	}
}

func TestEngine_UnlimitedInput(t *testing.T) {
	e := newTestEngine(Options{MaxInputLength: -1})
	input := strings.Repeat("let x = 1;", 1000)

	program, err := e.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(program.Statements) != 1000 {
		t.Errorf("got %d statements, want 1000", len(program.Statements))
	}
}

func TestEngine_Parse(t *testing.T) {
	tests := []struct {
		name     string
		strict   bool
		input    string
		wantErr  bool
		wantStmt int
	}{
		{"let and return", false, "let x = 1; return x;", false, 2},
		{"syntax error", false, "let = 1;", true, 0},
		{"unhandled token lenient", false, "x; let y = 2;", false, 1},
		{"unhandled token strict", true, "x; let y = 2;", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(Options{Strict: tt.strict})
			program, err := e.Parse(tt.input)

			if tt.wantErr {
				if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
					t.Fatalf("Parse() error = %v, want SYNTAX", err)
				}
				if program != nil {
					t.Errorf("Parse() program = %v, want nil", program)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(program.Statements) != tt.wantStmt {
				t.Errorf("got %d statements, want %d", len(program.Statements), tt.wantStmt)
			}
		})
	}
}

func TestEngine_Analyze(t *testing.T) {
	e := newTestEngine(Options{})

	result, err := e.Analyze("let = 5;")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.OK() {
		t.Error("OK() = true, want false")
	}
	if result.Program != nil {
		t.Errorf("Program = %v, want nil", result.Program)
	}
	if len(result.Tokens) != 5 {
		t.Errorf("got %d tokens, want 5", len(result.Tokens))
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Expected IDENT but found ASSIGN" {
		t.Errorf("Errors = %q", result.Errors)
	}

	result, _ = e.Analyze("return 1;")
	if !result.OK() || result.Program == nil {
		t.Errorf("Analyze(return 1;) = %+v, want program", result)
	}
}

func TestEngine_AnalyzeCache(t *testing.T) {
	e := newTestEngine(Options{CacheSize: 2})

	first, err := e.Analyze("let x = 5;")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := e.Analyze("let x = 5;")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if first != second {
		t.Error("second Analyze() did not reuse the cached result")
	}

	if _, err := e.Analyze("return 1;"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	hits, misses := e.CacheStats()
	if hits != 1 || misses != 2 {
		t.Errorf("CacheStats() = %d, %d, want 1, 2", hits, misses)
	}
}

func TestEngine_AnalyzeWithoutCache(t *testing.T) {
	e := newTestEngine(Options{})

	first, _ := e.Analyze("let x = 5;")
	second, _ := e.Analyze("let x = 5;")
	if first == second {
		t.Error("results shared although the cache is disabled")
	}
	if hits, misses := e.CacheStats(); hits != 0 || misses != 0 {
		t.Errorf("CacheStats() = %d, %d, want 0, 0", hits, misses)
	}
}
