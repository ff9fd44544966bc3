// File: nodes.go
// Title: AST Node Definitions
// Description: Defines the program root, statement and expression nodes
//              together with their source-like string renderings.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial node definitions

package ast

import (
	"strings"

	"github.com/msto63/monkey/foundation/lang/token"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// TokenLiteral returns the token the node was built from
	TokenLiteral() token.Token

	// String returns a source-like representation of the node
	String() string
}

// Statement is a node that appears directly in a program
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every parsed source
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the token of the first statement, or ILLEGAL for an
// empty program.
func (p *Program) TokenLiteral() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return token.New(token.Illegal)
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Identifier is a name reference
type Identifier struct {
	Token token.Token // the IDENT token
	Value string
}

func (i *Identifier) expressionNode() {}

// TokenLiteral returns the IDENT token
func (i *Identifier) TokenLiteral() token.Token { return i.Token }

func (i *Identifier) String() string { return i.Value }

// LetStatement binds a value to a name
type LetStatement struct {
	Token token.Token // the LET token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode() {}

// TokenLiteral returns the LET token
func (ls *LetStatement) TokenLiteral() token.Token { return ls.Token }

// String renders "let <name> = <value>;", omitting the missing parts
func (ls *LetStatement) String() string {
	var sb strings.Builder

	sb.WriteString(ls.Token.Source())
	if ls.Name != nil {
		sb.WriteString(" ")
		sb.WriteString(ls.Name.String())
	}
	if ls.Value != nil {
		sb.WriteString(" = ")
		sb.WriteString(ls.Value.String())
	}
	sb.WriteString(";")

	return sb.String()
}

// ReturnStatement returns a value from the enclosing scope
type ReturnStatement struct {
	Token       token.Token // the RETURN token
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode() {}

// TokenLiteral returns the RETURN token
func (rs *ReturnStatement) TokenLiteral() token.Token { return rs.Token }

func (rs *ReturnStatement) String() string {
	var sb strings.Builder

	sb.WriteString(rs.Token.Source())
	if rs.ReturnValue != nil {
		sb.WriteString(" ")
		sb.WriteString(rs.ReturnValue.String())
	}
	sb.WriteString(";")

	return sb.String()
}
