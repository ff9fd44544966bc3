// File: doc.go
// Title: Parser Package Documentation
// Description: Recursive descent parser turning a token stream into an
//              AST program.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial parser implementation

/*
Package parser implements a recursive descent parser for monkey programs.

The parser pulls tokens from a lexer and keeps a two-token window: the
current token and the peek token. Grammar rules match the peek token by
type only (a shape match); a mismatch records an "Expected X but found Y"
error and parsing continues with the next statement.

Errors never abort parsing. When at least one error was recorded the
program is discarded and ParseProgram returns nil.

Usage:

	p := parser.New(lexer.New("let x = 5;"))
	program := p.ParseProgram()
	if program == nil {
		for _, msg := range p.Errors() {
			fmt.Println(msg)
		}
	}

Parse is a shorthand that returns a structured error with code SYNTAX
instead of a nil program.
*/
package parser
