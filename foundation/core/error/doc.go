// Package error provides structured error handling for the monkey toolchain.
//
// Package: error
// Title: Structured Errors
// Description: Implements an error type carrying a code, a severity, details
//              and the failing operation. Lexer, parser, configuration and
//              history storage report failures through it so callers can
//              branch on codes instead of message text.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Usage:
//
//	import mdwerror "github.com/msto63/monkey/foundation/core/error"
//
//	err := mdwerror.New("program contains syntax errors").
//		WithCode(mdwerror.CodeSyntax).
//		WithDetail("errors", messages)
//
//	if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//		// report syntax errors
//	}
package error
