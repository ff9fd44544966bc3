package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/internal/history/store"
)

func newTestREPL(opts Options) *REPL {
	opts.Logger = mdwlog.NewNop()
	return New(opts)
}

func TestRun_TokenMode(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(Options{})

	err := r.Run(context.Background(), strings.NewReader("let x = 5;\n"), &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := ">> LET\nIDENT(x)\nASSIGN\nINT(5)\nSEMICOLON\n>> \n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_Exit(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(Options{Prompt: "> ", ExitCommand: ":q"})

	err := r.Run(context.Background(), strings.NewReader("+\n:q\nlet\n"), &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "> PLUS\n> "
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_ASTMode(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(Options{Mode: ModeAST})

	input := "let x = 5; return x;\nlet = 5;\n"
	if err := r.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := ">> let x;\nreturn;\n>> parser errors:\n\tExpected IDENT but found ASSIGN\n>> \n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestRun_ReadFailure(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(Options{})

	if err := r.Run(context.Background(), failingReader{}, &out); err == nil {
		t.Fatal("Run() should return the read error")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestREPL(Options{})
	if err := r.Run(ctx, strings.NewReader("x\n"), &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestEval_Commands(t *testing.T) {
	r := newTestREPL(Options{})
	ctx := context.Background()

	tests := []struct {
		input    string
		wantKind LineKind
		wantText string
		wantMode string
	}{
		{".mode", LineInfo, "mode: tokens", ModeTokens},
		{".mode ast", LineInfo, "mode: ast", ModeAST},
		{".mode eval", LineError, `unknown mode "eval" (use tokens or ast)`, ModeAST},
		{" .mode tokens ", LineInfo, "mode: tokens", ModeTokens},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lines := r.Eval(ctx, tt.input)
			if len(lines) != 1 {
				t.Fatalf("Eval() = %v, want 1 line", lines)
			}
			if lines[0].Kind != tt.wantKind || lines[0].Text != tt.wantText {
				t.Errorf("Eval() = %+v, want %v %q", lines[0], tt.wantKind, tt.wantText)
			}
			if r.Mode() != tt.wantMode {
				t.Errorf("Mode() = %v, want %v", r.Mode(), tt.wantMode)
			}
		})
	}

	if help := r.Eval(ctx, ".help"); len(help) != 3 {
		t.Errorf(".help returned %d lines, want 3", len(help))
	}
}

func TestEval_UnknownDotInput(t *testing.T) {
	r := newTestREPL(Options{})

	// Not a command: tokenized like any other input
	lines := r.Eval(context.Background(), ".x")
	if len(lines) != 2 || lines[0].Text != `ILLEGAL(".")` || lines[1].Text != "IDENT(x)" {
		t.Errorf("Eval(.x) = %+v", lines)
	}
}

func TestEval_InputTooLong(t *testing.T) {
	engine := lang.New(lang.Options{Logger: mdwlog.NewNop(), MaxInputLength: 4})
	r := newTestREPL(Options{Engine: engine})

	lines := r.Eval(context.Background(), "let x = 1;")
	if len(lines) != 1 || lines[0].Kind != LineError {
		t.Fatalf("Eval() = %+v, want one error line", lines)
	}
	if !strings.HasPrefix(lines[0].Text, "error: input exceeds maximum length") {
		t.Errorf("Text = %q", lines[0].Text)
	}
}

func TestEval_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	hist := store.NewMemoryHistoryStore(0)
	r := newTestREPL(Options{Store: hist, SessionID: "session-1"})

	r.Eval(ctx, "let x = 5;")
	r.Eval(ctx, "   ")
	r.Eval(ctx, ".mode ast")
	r.Eval(ctx, "let = 5;")

	entries, err := hist.List(ctx, "session-1", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(entries))
	}

	latest, first := entries[0], entries[1]
	if first.Input != "let x = 5;" || first.Mode != ModeTokens || first.TokenCount != 6 || len(first.Errors) != 0 {
		t.Errorf("first entry = %+v", first)
	}
	if latest.Mode != ModeAST || len(latest.Errors) != 1 {
		t.Errorf("latest entry = %+v", latest)
	}
}

func TestNew_Defaults(t *testing.T) {
	r := newTestREPL(Options{Mode: "bogus"})
	if r.Prompt() != ">> " {
		t.Errorf("Prompt() = %q, want \">> \"", r.Prompt())
	}
	if r.Mode() != ModeTokens {
		t.Errorf("Mode() = %v, want %v", r.Mode(), ModeTokens)
	}
	if r.SessionID() == "" {
		t.Error("SessionID() should be generated")
	}
	if !r.IsExit(" .exit ") {
		t.Error("IsExit(.exit) = false")
	}
}

// Run with -race: front ends evaluate off their UI goroutine
func TestEval_Concurrent(t *testing.T) {
	hist := store.NewMemoryHistoryStore(0)
	r := newTestREPL(Options{Store: hist})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Eval(ctx, ".mode ast")
			} else {
				r.Eval(ctx, "let x = 5;")
			}
		}(i)
	}
	for i := 0; i < 100; i++ {
		_ = r.Mode()
	}
	wg.Wait()

	if r.Mode() != ModeAST {
		t.Errorf("Mode() = %q, want %q", r.Mode(), ModeAST)
	}
	if n, _ := hist.Count(ctx); n != 4 {
		t.Errorf("recorded %d entries, want 4", n)
	}
}
