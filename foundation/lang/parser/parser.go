// File: parser.go
// Title: Recursive Descent Parser
// Description: Builds let and return statements from the token stream
//              produced by the lexer. Errors accumulate in source order;
//              any error discards the whole program.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang/ast"
	"github.com/msto63/monkey/foundation/lang/lexer"
	"github.com/msto63/monkey/foundation/lang/token"
)

// Parser implements recursive descent parsing over a lexer
type Parser struct {
	lexer *lexer.Lexer

	curr    token.Token
	peek    token.Token
	currPos lexer.Position
	peekPos lexer.Position

	errors  []ParseError
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// Strict records an error for statements that start with a token no
	// grammar rule handles. By default such tokens are skipped silently.
	Strict bool
}

// ParseError is a single syntax error with the position of the offending
// token
type ParseError struct {
	Message string
	Line    int
	Column  int
	Token   token.Token
}

func (pe ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", pe.Line, pe.Column, pe.Message)
}

// New creates a parser reading from l and primes the token window
func New(l *lexer.Lexer, opts ...Options) *Parser {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = mdwlog.GetDefault()
	}

	p := &Parser{
		lexer:   l,
		logger:  o.Logger.WithField("component", "parser"),
		options: o,
	}

	// Load curr and peek
	p.advance()
	p.advance()

	return p
}

// ParseProgram parses statements until EOF. It returns nil if any syntax
// error was recorded.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.currIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.advance()
	}

	if len(p.errors) > 0 {
		p.logger.Debug("Parsing failed", mdwlog.Fields{
			"errors":     len(p.errors),
			"first":      p.errors[0].Message,
			"statements": len(program.Statements),
		})
		return nil
	}

	p.logger.Debug("Parsing completed", mdwlog.Fields{
		"statements": len(program.Statements),
	})
	return program
}

// Errors returns the recorded error messages in source order
func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.errors))
	for i, e := range p.errors {
		msgs[i] = e.Message
	}
	return msgs
}

// Diagnostics returns the recorded errors with position information
func (p *Parser) Diagnostics() []ParseError {
	result := make([]ParseError, len(p.errors))
	copy(result, p.errors)
	return result
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curr.Type {
	case token.Let:
		return p.parseLetStatement()
	case token.Return:
		return p.parseReturnStatement()
	default:
		if p.options.Strict {
			p.errorAt(p.curr, p.currPos, fmt.Sprintf("Unexpected token %s", p.curr))
		}
		return nil
	}
}

// parseLetStatement parses let <ident> = <expr>;
func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curr}

	if !p.expectPeek(token.Ident) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curr, Value: p.curr.Literal}

	if !p.expectPeek(token.Assign) {
		return nil
	}

	// Value expressions are not parsed yet
	p.skipToTerminator()

	return stmt
}

// parseReturnStatement parses return <expr>;
func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curr}

	p.advance()
	p.skipToTerminator()

	return stmt
}

// skipToTerminator advances until curr is ';' or EOF
func (p *Parser) skipToTerminator() {
	for !p.currIs(token.Semicolon) && !p.currIs(token.EOF) {
		p.advance()
	}
}

func (p *Parser) advance() {
	p.curr, p.currPos = p.peek, p.peekPos
	p.peek = p.lexer.NextToken()
	p.peekPos = p.lexer.Pos()
}

func (p *Parser) currIs(tt token.TokenType) bool {
	return p.curr.Type == tt
}

func (p *Parser) peekIs(tt token.TokenType) bool {
	return p.peek.Type == tt
}

// expectPeek advances if the peek token has type tt and records an error
// otherwise
func (p *Parser) expectPeek(tt token.TokenType) bool {
	if p.peekIs(tt) {
		p.advance()
		return true
	}
	p.errorAt(p.peek, p.peekPos, fmt.Sprintf("Expected %s but found %s", tt, p.peek))
	return false
}

func (p *Parser) errorAt(tok token.Token, pos lexer.Position, message string) {
	p.errors = append(p.errors, ParseError{
		Message: message,
		Line:    pos.Line,
		Column:  pos.Column,
		Token:   tok,
	})
}

// Parse tokenizes and parses input. Syntax errors are returned as a single
// structured error with code SYNTAX; the ordered messages are available as
// the "errors" detail.
func Parse(input string, opts ...Options) (*ast.Program, error) {
	p := New(lexer.New(input), opts...)

	program := p.ParseProgram()
	if program != nil {
		return program, nil
	}

	return nil, p.syntaxError()
}

func (p *Parser) syntaxError() *mdwerror.Error {
	first := p.errors[0]

	msg := first.Message
	if n := len(p.errors); n > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, n-1)
	}

	return mdwerror.New(msg).
		WithCode(mdwerror.CodeSyntax).
		WithOperation("parser.Parse").
		WithDetail("errors", p.Errors()).
		WithDetail("line", first.Line).
		WithDetail("column", first.Column)
}
