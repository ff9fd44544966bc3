// File: doc.go
// Title: Language Front End Package Documentation
// Description: High-level entry point combining lexer and parser with
//              input limits, logging and timing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial engine facade

/*
Package lang is the high-level front end for monkey source code.

The subpackages do the work:
  - token:  token types and keyword lookup
  - lexer:  converts source text into tokens
  - ast:    syntax tree nodes and traversal
  - parser: builds a Program from the token stream

Engine wraps them for callers such as the REPL and the CLI:

	engine := lang.New(lang.Options{Logger: logger})
	program, err := engine.Parse("let x = 5;")
	if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		// report err
	}
*/
package lang
