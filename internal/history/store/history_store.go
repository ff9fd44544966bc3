package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/foundation/utils/stringx"
)

// Entry is one evaluated REPL input
type Entry struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Input      string    `json:"input"`
	Mode       string    `json:"mode"` // tokens, ast
	TokenCount int       `json:"token_count"`
	Errors     []string  `json:"errors,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryStore defines the interface for REPL history persistence
type HistoryStore interface {
	// Append stores an entry, assigning ID and CreatedAt when empty
	Append(ctx context.Context, entry *Entry) error

	// List returns entries newest first. An empty sessionID lists all
	// sessions.
	List(ctx context.Context, sessionID string, limit, offset int) ([]*Entry, error)

	// Clear deletes all entries and returns how many were removed
	Clear(ctx context.Context) (int64, error)

	Count(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (map[string]interface{}, error)
	Close() error
}

// NewEntryID returns a fresh entry or session ID
func NewEntryID() string {
	return uuid.New().String()
}

func prepareEntry(entry *Entry) error {
	if entry == nil || entry.Input == "" {
		return mdwerror.New("history entry input is required").
			WithCode(mdwerror.CodeInvalidInput)
	}
	if entry.ID == "" {
		entry.ID = NewEntryID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return nil
}

func storageError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db         *sql.DB
	maxEntries int
	mu         sync.RWMutex
}

// SQLiteHistoryConfig holds configuration for the SQLite store
type SQLiteHistoryConfig struct {
	Path string

	// MaxEntries bounds the number of stored entries; oldest entries are
	// dropped first. Zero keeps everything.
	MaxEntries int
}

// DefaultHistoryConfig returns default configuration
func DefaultHistoryConfig() SQLiteHistoryConfig {
	return SQLiteHistoryConfig{
		Path:       "./data/history.db",
		MaxEntries: 1000,
	}
}

// NewSQLiteHistoryStore creates a new SQLite-based history store
func NewSQLiteHistoryStore(cfg SQLiteHistoryConfig) (*SQLiteHistoryStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "history.open")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError(err, "failed to open database", "history.open")
	}

	store := &SQLiteHistoryStore{db: db, maxEntries: cfg.MaxEntries}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "history.open")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL DEFAULT '',
		input TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT 'tokens',
		token_count INTEGER NOT NULL DEFAULT 0,
		errors TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append stores an entry and trims the table to MaxEntries
func (s *SQLiteHistoryStore) Append(ctx context.Context, entry *Entry) error {
	if err := prepareEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	errorsJSON, _ := json.Marshal(entry.Errors)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, session_id, input, mode, token_count, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Input, entry.Mode, entry.TokenCount, string(errorsJSON), entry.CreatedAt)
	if err != nil {
		return storageError(err, "failed to append history entry", "history.append")
	}

	if s.maxEntries > 0 {
		_, err = s.db.ExecContext(ctx, `
			DELETE FROM history
			WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
		`, s.maxEntries)
		if err != nil {
			return storageError(err, "failed to trim history", "history.append")
		}
	}

	return nil
}

// List returns entries newest first
func (s *SQLiteHistoryStore) List(ctx context.Context, sessionID string, limit, offset int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var query string
	var args []interface{}

	if sessionID != "" {
		query = `
			SELECT id, session_id, input, mode, token_count, errors, created_at
			FROM history
			WHERE session_id = ?
			ORDER BY seq DESC
			LIMIT ? OFFSET ?
		`
		args = []interface{}{sessionID, limit, offset}
	} else {
		query = `
			SELECT id, session_id, input, mode, token_count, errors, created_at
			FROM history
			ORDER BY seq DESC
			LIMIT ? OFFSET ?
		`
		args = []interface{}{limit, offset}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to list history", "history.list")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var errorsJSON sql.NullString

		if err := rows.Scan(&e.ID, &e.SessionID, &e.Input, &e.Mode, &e.TokenCount, &errorsJSON, &e.CreatedAt); err != nil {
			return nil, storageError(err, "failed to scan history entry", "history.list")
		}
		if errorsJSON.Valid && errorsJSON.String != "" {
			_ = json.Unmarshal([]byte(errorsJSON.String), &e.Errors)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to list history", "history.list")
	}

	return entries, nil
}

// Clear deletes all entries
func (s *SQLiteHistoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, storageError(err, "failed to clear history", "history.clear")
	}

	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of stored entries
func (s *SQLiteHistoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, storageError(err, "failed to count history", "history.count")
	}
	return n, nil
}

// Statistics returns store statistics
func (s *SQLiteHistoryStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const op = "history.statistics"
	stats := make(map[string]interface{})

	var total, sessions int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT session_id) FROM history`).Scan(&total, &sessions)
	if err != nil {
		return nil, storageError(err, "failed to count history", op)
	}
	stats["total_entries"] = total
	stats["sessions"] = sessions

	// Entries by mode
	modeRows, err := s.db.QueryContext(ctx, `SELECT mode, COUNT(*) FROM history GROUP BY mode`)
	if err != nil {
		return nil, storageError(err, "failed to count history by mode", op)
	}
	defer modeRows.Close()

	modeCounts := make(map[string]int64)
	for modeRows.Next() {
		var mode string
		var count int64
		if err := modeRows.Scan(&mode, &count); err != nil {
			return nil, storageError(err, "failed to scan mode count", op)
		}
		modeCounts[mode] = count
	}
	if err := modeRows.Err(); err != nil {
		return nil, storageError(err, "failed to count history by mode", op)
	}
	stats["entries_by_mode"] = modeCounts

	var failed int64
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE errors IS NOT NULL AND errors NOT IN ('', 'null', '[]')`).Scan(&failed)
	if err != nil {
		return nil, storageError(err, "failed to count failed entries", op)
	}
	stats["entries_with_errors"] = failed

	return stats, nil
}

// Close closes the database
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

// MemoryHistoryStore implements HistoryStore in memory
type MemoryHistoryStore struct {
	entries    []*Entry
	maxEntries int
	mu         sync.RWMutex
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore(maxEntries int) *MemoryHistoryStore {
	return &MemoryHistoryStore{maxEntries: maxEntries}
}

// Append stores a copy of entry
func (s *MemoryHistoryStore) Append(ctx context.Context, entry *Entry) error {
	if err := prepareEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := *entry
	s.entries = append(s.entries, &e)
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
	return nil
}

// List returns entries newest first
func (s *MemoryHistoryStore) List(ctx context.Context, sessionID string, limit, offset int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var result []*Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if sessionID != "" && e.SessionID != sessionID {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		c := *e
		result = append(result, &c)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// Clear deletes all entries
func (s *MemoryHistoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.entries))
	s.entries = nil
	return n, nil
}

// Count returns the number of stored entries
func (s *MemoryHistoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// Statistics returns store statistics
func (s *MemoryHistoryStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make(map[string]struct{})
	modeCounts := make(map[string]int64)
	var failed int64
	for _, e := range s.entries {
		sessions[e.SessionID] = struct{}{}
		modeCounts[e.Mode]++
		if len(e.Errors) > 0 {
			failed++
		}
	}

	return map[string]interface{}{
		"total_entries":       int64(len(s.entries)),
		"sessions":            int64(len(sessions)),
		"entries_by_mode":     modeCounts,
		"entries_with_errors": failed,
	}, nil
}

// Close is a no-op
func (s *MemoryHistoryStore) Close() error {
	return nil
}

// Compile-time interface checks
var (
	_ HistoryStore = (*SQLiteHistoryStore)(nil)
	_ HistoryStore = (*MemoryHistoryStore)(nil)
)

// String renders an entry for listings
func (e *Entry) String() string {
	status := "ok"
	if n := len(e.Errors); n > 0 {
		status = fmt.Sprintf("%d error(s)", n)
	}
	return fmt.Sprintf("%s  [%s] %-6s %s  (%d tokens, %s)",
		e.CreatedAt.Format("2006-01-02 15:04:05"), stringx.Truncate(e.SessionID, 8, ""), e.Mode, e.Input, e.TokenCount, status)
}
