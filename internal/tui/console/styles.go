// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     console
// Description: Styles for the console TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/monkey/foundation/lang/token"
	"github.com/msto63/monkey/internal/repl"
)

// Color Palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	ModeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// Output styles
var (
	EchoStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	KeywordStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	IdentStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	IntStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	OperatorStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	IllegalStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Underline(true)

	StatementStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Frame styles
var (
	OutputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Logo shown in the header
const Logo = "🐒 monkey"

// tokenStyle returns the style for a token
func tokenStyle(t token.Token) lipgloss.Style {
	switch {
	case t.Type.IsKeyword():
		return KeywordStyle
	case t.Type == token.Ident:
		return IdentStyle
	case t.Type == token.Int:
		return IntStyle
	case t.Type == token.Illegal:
		return IllegalStyle
	default:
		return OperatorStyle
	}
}

// renderLine styles one output line by kind
func renderLine(l repl.Line) string {
	switch l.Kind {
	case repl.LineToken:
		return tokenStyle(l.Token).Render(l.Text)
	case repl.LineStatement:
		return StatementStyle.Render(l.Text)
	case repl.LineError:
		return ErrorStyle.Render(l.Text)
	default:
		return InfoStyle.Render(l.Text)
	}
}
