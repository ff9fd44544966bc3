// File: lexer.go
// Title: Lexical Analyzer (Tokenizer)
// Description: Converts source text into a lazy stream of tokens. The lexer
//              never fails: characters it does not recognize become ILLEGAL
//              tokens and the stream always ends with EOF.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial lexer implementation

package lexer

import (
	"strconv"

	"github.com/msto63/monkey/foundation/lang/token"
)

// eof marks the position past the last character. A NUL character in the
// input is an ordinary (illegal) character, not end of input.
const eof rune = -1

// Position is a location in the source
type Position struct {
	Offset int // Character offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Lexer performs lexical analysis of monkey source
type Lexer struct {
	input    []rune
	position int  // current position in input (points to ch)
	readPos  int  // next reading position (after ch)
	ch       rune // character under examination, eof past the end
	line     int
	column   int
	tokPos   Position // start of the most recently returned token
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: []rune(input),
		line:  1,
	}
	l.readChar()
	return l
}

// NextToken returns the next token. After the input is exhausted every call
// returns EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	l.tokPos = Position{Offset: l.position, Line: l.line, Column: l.column}

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.EQ)
		} else {
			tok = token.New(token.Assign)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.NotEQ)
		} else {
			tok = token.New(token.Bang)
		}
	case '+':
		tok = token.New(token.Plus)
	case '-':
		tok = token.New(token.Minus)
	case '*':
		tok = token.New(token.Asterisk)
	case '/':
		tok = token.New(token.Slash)
	case '<':
		tok = token.New(token.LT)
	case '>':
		tok = token.New(token.GT)
	case ',':
		tok = token.New(token.Comma)
	case ';':
		tok = token.New(token.Semicolon)
	case '(':
		tok = token.New(token.LParen)
	case ')':
		tok = token.New(token.RParen)
	case '{':
		tok = token.New(token.LBrace)
	case '}':
		tok = token.New(token.RBrace)
	case eof:
		return token.New(token.EOF)
	default:
		if isLetter(l.ch) {
			// readIdentifier leaves ch on the first character after the word
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = token.NewIllegal(l.ch)
	}

	l.readChar()
	return tok
}

// Tokenize returns all remaining tokens, including the final EOF
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// Pos returns the start position of the most recently returned token
func (l *Lexer) Pos() Position {
	return l.tokPos
}

// readChar advances to the next character
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = eof
	} else {
		l.ch = l.input[l.readPos]
	}

	if l.position < len(l.input) && l.readPos > 0 && l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.position = l.readPos
	l.readPos++
}

// peekChar returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readWord(accept func(rune) bool) string {
	start := l.position
	for accept(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readIdentifier() token.Token {
	word := l.readWord(func(ch rune) bool {
		return isLetter(ch) || isDigit(ch)
	})

	if tt := token.LookupIdent(word); tt != token.Ident {
		return token.New(tt)
	}
	return token.NewIdent(word)
}

// readNumber reads a digit run. Text that does not fit an int64 yields 0.
func (l *Lexer) readNumber() token.Token {
	digits := l.readWord(isDigit)

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		value = 0
	}
	return token.NewInt(value)
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// TokenizeInput tokenizes input and returns every token including EOF
func TokenizeInput(input string) []token.Token {
	return New(input).Tokenize()
}
