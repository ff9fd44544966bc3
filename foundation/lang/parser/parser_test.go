// File: parser_test.go
// Title: Parser Tests
// Description: Tests for let and return statements, shape-match errors,
//              error gating, strict mode and the Parse shorthand.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial test coverage

package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang/ast"
	"github.com/msto63/monkey/foundation/lang/lexer"
	"github.com/msto63/monkey/foundation/lang/token"
)

// dumpConfig prints node structure instead of the String() rendering
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
}

func dump(node ast.Node) string {
	return dumpConfig.Sdump(node)
}

func TestDump_ShowsStructure(t *testing.T) {
	out := dump(mustParse(t, "let x = 5;"))
	for _, want := range []string{"ast.LetStatement", "Name: (*ast.Identifier)"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(let x;)") {
		t.Errorf("dump used String():\n%s", out)
	}
}

func newTestParser(input string, strict bool) *Parser {
	return New(lexer.New(input), Options{Logger: mdwlog.NewNop(), Strict: strict})
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := newTestParser(input, false)
	program := p.ParseProgram()
	if program == nil {
		t.Fatalf("ParseProgram(%q) = nil, errors: %v", input, p.Errors())
	}
	return program
}

func TestLetStatements(t *testing.T) {
	program := mustParse(t, `
let x = 5;
let y = 10;
let foobar = 838383;
`)

	if len(program.Statements) != 3 {
		t.Fatalf("got %d statements, want 3:\n%s", len(program.Statements), dump(program))
	}

	for i, name := range []string{"x", "y", "foobar"} {
		stmt, ok := program.Statements[i].(*ast.LetStatement)
		if !ok {
			t.Fatalf("statement[%d] = %T, want *ast.LetStatement", i, program.Statements[i])
		}
		if stmt.Token != token.New(token.Let) {
			t.Errorf("statement[%d].Token = %v, want LET", i, stmt.Token)
		}
		if stmt.Name.Value != name {
			t.Errorf("statement[%d].Name.Value = %q, want %q", i, stmt.Name.Value, name)
		}
		if stmt.Name.Token != token.NewIdent(name) {
			t.Errorf("statement[%d].Name.Token = %v, want IDENT(%s)", i, stmt.Name.Token, name)
		}
		if stmt.Value != nil {
			t.Errorf("statement[%d].Value = %v, want nil", i, stmt.Value)
		}
	}
}

func TestReturnStatements(t *testing.T) {
	program := mustParse(t, `
return 5;
return 10;
return 993322;
`)

	if len(program.Statements) != 3 {
		t.Fatalf("got %d statements, want 3:\n%s", len(program.Statements), dump(program))
	}

	for i, s := range program.Statements {
		stmt, ok := s.(*ast.ReturnStatement)
		if !ok {
			t.Fatalf("statement[%d] = %T, want *ast.ReturnStatement", i, s)
		}
		if stmt.Token != token.New(token.Return) {
			t.Errorf("statement[%d].Token = %v, want RETURN", i, stmt.Token)
		}
		if stmt.ReturnValue != nil {
			t.Errorf("statement[%d].ReturnValue = %v, want nil", i, stmt.ReturnValue)
		}
	}
}

func TestParseProgram_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "missing identifier",
			input: "let = 5;",
			want:  []string{"Expected IDENT but found ASSIGN"},
		},
		{
			name:  "missing assign",
			input: "let x 5;",
			want:  []string{"Expected ASSIGN but found INT(5)"},
		},
		{
			name:  "keyword as name",
			input: "let let = 1;",
			want: []string{
				"Expected IDENT but found LET",
				"Expected IDENT but found ASSIGN",
			},
		},
		{
			name:  "errors in source order",
			input: "let = 1; let y = 2; let z 3; let 4;",
			want: []string{
				"Expected IDENT but found ASSIGN",
				"Expected ASSIGN but found INT(3)",
				"Expected IDENT but found INT(4)",
			},
		},
		{
			name:  "dangling let",
			input: "let",
			want:  []string{"Expected IDENT but found EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(tt.input, false)
			if program := p.ParseProgram(); program != nil {
				t.Fatalf("ParseProgram() = %s, want nil", dump(program))
			}
			if got := p.Errors(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Errors() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseProgram_MissingSemicolon(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"let x = 5", "let x;"},
		{"return 5", "return;"},
		{"return", "return;"},
		{"let a = 1; return a", "let a;return;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := mustParse(t, tt.input)
			if got := program.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseProgram_SkipsUnhandledTokens(t *testing.T) {
	program := mustParse(t, "5 + 5; let x = 1; foo; @; return x;")

	lets, returns := ast.CountStatements(program)
	if lets != 1 || returns != 1 {
		t.Errorf("CountStatements() = %d, %d, want 1, 1", lets, returns)
	}
}

func TestParseProgram_Empty(t *testing.T) {
	program := mustParse(t, "  \n ")
	if len(program.Statements) != 0 {
		t.Errorf("got %d statements, want 0", len(program.Statements))
	}
	if program.TokenLiteral().Type != token.Illegal {
		t.Errorf("TokenLiteral() = %v, want ILLEGAL", program.TokenLiteral())
	}
}

func TestParseProgram_Strict(t *testing.T) {
	p := newTestParser("let x = 1;\nfoo;", true)
	if program := p.ParseProgram(); program != nil {
		t.Fatalf("ParseProgram() = %s, want nil", dump(program))
	}

	want := []string{"Unexpected token IDENT(foo)", "Unexpected token SEMICOLON"}
	if got := p.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Errors() = %q, want %q", got, want)
	}
}

func TestDiagnostics_Position(t *testing.T) {
	p := newTestParser("let x = 1;\nlet = 2;", false)
	p.ParseProgram()

	diags := p.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Line != 2 || d.Column != 5 {
		t.Errorf("position = %d:%d, want 2:5", d.Line, d.Column)
	}
	if d.Token.Type != token.Assign {
		t.Errorf("Token = %v, want ASSIGN", d.Token)
	}
}

func TestParse(t *testing.T) {
	program, err := Parse("let x = 5;", Options{Logger: mdwlog.NewNop()})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := ast.BoundNames(program); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("BoundNames() = %v, want [x]", got)
	}

	program, err = Parse("let = 5; let 6;", Options{Logger: mdwlog.NewNop()})
	if program != nil {
		t.Errorf("Parse() program = %v, want nil", program)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Fatalf("Parse() error = %v, want code SYNTAX", err)
	}
	if err.Error() != "Expected IDENT but found ASSIGN (and 1 more)" {
		t.Errorf("Error() = %q", err.Error())
	}

	var mdwErr *mdwerror.Error
	if e, ok := err.(*mdwerror.Error); ok {
		mdwErr = e
	}
	msgs, _ := mdwErr.Detail("errors")
	if n := len(msgs.([]string)); n != 2 {
		t.Errorf("errors detail has %d entries, want 2", n)
	}
	if line, _ := mdwErr.Detail("line"); line != 1 {
		t.Errorf("line detail = %v, want 1", line)
	}
}
