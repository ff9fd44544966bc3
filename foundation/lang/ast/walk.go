// File: walk.go
// Title: AST Traversal
// Description: Depth-first traversal of AST nodes with a Visitor, plus the
//              Inspect shorthand and a few collection helpers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial traversal implementation

package ast

import "fmt"

// Visitor is called for every node encountered by Walk. If the returned
// visitor w is not nil, Walk visits the children of the node with w and
// finally calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first order
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Walk(v, s)
		}

	case *LetStatement:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *ReturnStatement:
		if n.ReturnValue != nil {
			Walk(v, n.ReturnValue)
		}

	case *Identifier:
		// leaf

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at node, calling f for each node.
// Children are skipped when f returns false. After the children of a node
// were visited f is called with nil.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// CountStatements returns the number of let and return statements
func CountStatements(p *Program) (lets, returns int) {
	for _, s := range p.Statements {
		switch s.(type) {
		case *LetStatement:
			lets++
		case *ReturnStatement:
			returns++
		}
	}
	return lets, returns
}

// BoundNames returns the names bound by let statements in source order
func BoundNames(p *Program) []string {
	var names []string
	Inspect(p, func(n Node) bool {
		if ls, ok := n.(*LetStatement); ok && ls.Name != nil {
			names = append(names, ls.Name.Value)
			return false
		}
		return true
	})
	return names
}
