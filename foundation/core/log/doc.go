// File: doc.go
// Title: Structured Logging Package Documentation
// Description: Structured logging for the monkey toolchain. Loggers are
//              immutable: every With* call returns a configured copy, so a
//              component can tag its logger once and hand it around.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

/*
Package log provides structured logging with levels, fields and pluggable
formatters (JSON, text, console).

	logger := log.NewWithConfig(log.Config{
		Level:  log.LevelDebug,
		Format: log.FormatText,
		Output: os.Stderr,
		Name:   "monkey",
	})

	parserLog := logger.WithField("component", "parser")
	parserLog.Debug("Parsing program", log.Fields{"length": len(input)})

	timer := parserLog.StartTimer("parse")
	defer timer.Stop()

Structured errors from the error package are logged with LogError, which
picks the log level from the error severity and adds code and details as
fields.
*/
package log
