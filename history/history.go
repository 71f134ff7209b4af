// Package history persists executed-statement history in a local SQLite
// database, one file per user, so past queries survive restarts and can be
// searched from the shell.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/avelaine/sqlscribe/internal/quoting"
)

// Entry is one executed statement and its outcome.
type Entry struct {
	ID           string
	ConnectionID string
	Database     string
	Schema       string
	Query        string
	Timestamp    time.Time
	Duration     time.Duration
	RowCount     int
	Success      bool
	ErrorMessage string
}

// Filter narrows a Search. Zero values match everything.
type Filter struct {
	ConnectionID string
	Database     string
	Schema       string
	Query        string // substring match on the statement text
	SuccessOnly  bool
	Limit        int // defaults to 100
	Offset       int
}

// Store is a sqlite-backed history log.
type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS query_history (
	id TEXT PRIMARY KEY,
	connection_id TEXT NOT NULL,
	database TEXT NOT NULL,
	schema TEXT NOT NULL,
	query TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	execution_time_ms INTEGER NOT NULL,
	row_count INTEGER NOT NULL,
	success INTEGER NOT NULL,
	error_message TEXT
)`

var createIndexSQL = []string{
	"CREATE INDEX IF NOT EXISTS idx_connection_db ON query_history(connection_id, database, schema)",
	"CREATE INDEX IF NOT EXISTS idx_timestamp ON query_history(timestamp DESC)",
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create query_history table: %w", err)
	}
	for _, stmt := range createIndexSQL {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create index: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Append records an entry, assigning an ID and timestamp when absent.
func (s *Store) Append(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO query_history
			(id, connection_id, database, schema, query, timestamp,
			 execution_time_ms, row_count, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ConnectionID, e.Database, e.Schema, e.Query,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Duration.Milliseconds(), e.RowCount, e.Success, e.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Search returns matching entries, newest first.
func (s *Store) Search(f Filter) ([]Entry, error) {
	query := `SELECT id, connection_id, database, schema, query, timestamp,
		execution_time_ms, row_count, success, error_message
		FROM query_history`

	var conds []string
	var args []any
	if f.ConnectionID != "" {
		conds = append(conds, "connection_id = ?")
		args = append(args, f.ConnectionID)
	}
	if f.Database != "" {
		conds = append(conds, "database = ?")
		args = append(args, f.Database)
	}
	if f.Schema != "" {
		conds = append(conds, "schema = ?")
		args = append(args, f.Schema)
	}
	if f.Query != "" {
		conds = append(conds, `query LIKE ? ESCAPE '\'`)
		args = append(args, "%"+quoting.EscapeLikePattern(f.Query)+"%")
	}
	if f.SuccessOnly {
		conds = append(conds, "success = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)
	if f.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var ms int64
		var errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.ConnectionID, &e.Database, &e.Schema,
			&e.Query, &ts, &ms, &e.RowCount, &e.Success, &errMsg); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = t
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		e.ErrorMessage = errMsg.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every recorded entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM query_history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
