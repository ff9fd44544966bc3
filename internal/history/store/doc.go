// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     store
// Description: Persistence of REPL inputs (SQLite and in-memory)
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package store persists the inputs evaluated in REPL sessions.
//
// SQLiteHistoryStore keeps entries in a SQLite database in WAL mode and
// drops the oldest entries beyond the configured maximum.
// MemoryHistoryStore offers the same behavior without a database.
package store
