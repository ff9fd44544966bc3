// File: token.go
// Title: Lexical Token Definitions
// Description: Defines the closed set of token types produced by the lexer,
//              the Token value type and the keyword table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial token set

// Package token defines the lexical tokens of the monkey language.
package token

import (
	"fmt"
)

// TokenType is the variant of a token. Comparing TokenType values is a
// shape match: payloads are ignored.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	Illegal

	// Identifiers and literals
	Ident // add, foobar, x, y
	Int   // 1343456

	// Operators
	Assign   // =
	Plus     // +
	Minus    // -
	Bang     // !
	Asterisk // *
	Slash    // /
	LT       // <
	GT       // >
	EQ       // ==
	NotEQ    // !=

	// Delimiters
	Comma     // ,
	Semicolon // ;
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	// Keywords
	Function // fn
	Let      // let
	True     // true
	False    // false
	If       // if
	Else     // else
	Return   // return
)

var typeNames = [...]string{
	EOF:       "EOF",
	Illegal:   "ILLEGAL",
	Ident:     "IDENT",
	Int:       "INT",
	Assign:    "ASSIGN",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Bang:      "BANG",
	Asterisk:  "ASTERISK",
	Slash:     "SLASH",
	LT:        "LT",
	GT:        "GT",
	EQ:        "EQ",
	NotEQ:     "NOT_EQ",
	Comma:     "COMMA",
	Semicolon: "SEMICOLON",
	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	Function:  "FUNCTION",
	Let:       "LET",
	True:      "TRUE",
	False:     "FALSE",
	If:        "IF",
	Else:      "ELSE",
	Return:    "RETURN",
}

// String returns the upper-case name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(typeNames) {
		return typeNames[tt]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the type is one of the reserved words
func (tt TokenType) IsKeyword() bool {
	return tt >= Function && tt <= Return
}

// Token is one lexical unit. Literal holds the text of identifiers and the
// offending character of illegal tokens; Value holds the parsed integer of
// Int tokens. Tokens are plain values and compare with ==.
type Token struct {
	Type    TokenType
	Literal string
	Value   int64
}

// New creates a payload-free token of the given type
func New(tt TokenType) Token {
	return Token{Type: tt}
}

// NewIdent creates an identifier token
func NewIdent(name string) Token {
	return Token{Type: Ident, Literal: name}
}

// NewInt creates an integer literal token
func NewInt(value int64) Token {
	return Token{Type: Int, Value: value}
}

// NewIllegal creates an illegal token for the unrecognized character
func NewIllegal(ch rune) Token {
	return Token{Type: Illegal, Literal: string(ch)}
}

// Is reports whether the token has the given shape
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// String returns the debug representation, e.g. LET, IDENT(x), INT(5)
func (t Token) String() string {
	switch t.Type {
	case Ident:
		return fmt.Sprintf("IDENT(%s)", t.Literal)
	case Int:
		return fmt.Sprintf("INT(%d)", t.Value)
	case Illegal:
		if t.Literal != "" {
			return fmt.Sprintf("ILLEGAL(%q)", t.Literal)
		}
		return "ILLEGAL"
	default:
		return t.Type.String()
	}
}

// Source returns the text the token stands for in source form
func (t Token) Source() string {
	switch t.Type {
	case Ident, Illegal:
		return t.Literal
	case Int:
		return fmt.Sprintf("%d", t.Value)
	case EOF:
		return ""
	}
	if s, ok := symbols[t.Type]; ok {
		return s
	}
	for word, kw := range keywords {
		if kw == t.Type {
			return word
		}
	}
	return ""
}

var symbols = map[TokenType]string{
	Assign:    "=",
	Plus:      "+",
	Minus:     "-",
	Bang:      "!",
	Asterisk:  "*",
	Slash:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NotEQ:     "!=",
	Comma:     ",",
	Semicolon: ";",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"fn":     Function,
	"let":    Let,
	"true":   True,
	"false":  False,
	"if":     If,
	"else":   Else,
	"return": Return,
}

// LookupIdent returns the keyword type for ident, or Ident when it is not
// reserved. Matching is exact and case-sensitive.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return Ident
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Keywords returns the reserved words
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	return words
}
