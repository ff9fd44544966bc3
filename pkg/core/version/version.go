// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     version
// Description: Central version management for the monkey tools
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the monkey components
const (
	// Release version of the command line tool
	Platform = "0.1.0"

	// Component versions
	Lexer   = "0.1.0"
	Parser  = "0.1.0"
	REPL    = "0.1.0"
	History = "0.1.0"
)

// Set at build time with -ldflags "-X .../version.GitCommit=..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "repl":
		return REPL
	case "history":
		return History
	default:
		return Platform
	}
}

// Info returns a one-line description of the build
func Info() string {
	return fmt.Sprintf("monkey %s (commit %s, built %s, %s %s/%s)",
		Platform, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
