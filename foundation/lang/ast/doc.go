// File: doc.go
// Title: Abstract Syntax Tree Package Documentation
// Description: Defines the AST nodes built by the parser and helpers for
//              traversing them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial AST package

/*
Package ast defines the Abstract Syntax Tree of monkey programs.

A Program is the root of a successful parse and owns an ordered list of
statements. Statements and expressions are closed sets: only types in this
package implement Statement and Expression.

Statement variants:
  - LetStatement:    let <name> = <value>;
  - ReturnStatement: return <value>;

Expression variants:
  - Identifier

Value expressions of let and return statements are not parsed yet and are
always nil.

Traversal:

	ast.Inspect(program, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			fmt.Println(id.Value)
		}
		return true
	})
*/
package ast
