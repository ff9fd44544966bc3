// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     console
// Description: Message types for async operations in the console TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package console

import (
	"github.com/msto63/monkey/internal/repl"
)

// Message types for tea.Cmd async operations

// evalResultMsg is sent when an input line was evaluated
type evalResultMsg struct {
	input string
	lines []repl.Line
}

// historyLoadedMsg is sent when previous inputs were loaded from the store
type historyLoadedMsg struct {
	inputs []string
	err    error
}
