// Package journal records history events in a SQLite database so that past
// sessions can be inspected after the history file has been overwritten.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/mRW/internal/calculator"
)

// Entry is one journaled history event.
type Entry struct {
	ID         string
	SessionID  string
	Timestamp  time.Time
	Kind       string
	Operator   string
	OperandA   float64
	OperandB   float64
	Result     float64
	HistoryLen int
}

// Filter selects journal entries. Zero fields match everything.
type Filter struct {
	Kind      string
	SessionID string
	Limit     int
}

// Stats summarises the journal.
type Stats struct {
	Total    int64
	ByKind   map[string]int64
	Sessions int64
	Last     time.Time
}

// Config holds the journal configuration.
type Config struct {
	Path string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Path: "./data/journal.db",
	}
}

// Journal is a SQLite event journal.
type Journal struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the journal database.
func Open(cfg Config) (*Journal, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		kind TEXT NOT NULL,
		operator TEXT,
		operand_a REAL,
		operand_b REAL,
		result REAL,
		history_len INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record stores an entry. Missing IDs and timestamps are filled in.
func (j *Journal) Record(ctx context.Context, entry *Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	var operator sql.NullString
	var a, b, result sql.NullFloat64
	if entry.Operator != "" {
		operator = sql.NullString{String: entry.Operator, Valid: true}
		a = sql.NullFloat64{Float64: entry.OperandA, Valid: true}
		b = sql.NullFloat64{Float64: entry.OperandB, Valid: true}
		result = sql.NullFloat64{Float64: entry.Result, Valid: true}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO events (id, session_id, timestamp, kind, operator, operand_a, operand_b, result, history_len)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Timestamp, entry.Kind, operator, a, b, result, entry.HistoryLen)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	return nil
}

// Query returns matching entries, newest first.
func (j *Journal) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	query := `SELECT id, session_id, timestamp, kind, operator, operand_a, operand_b, result, history_len FROM events WHERE 1=1`
	var args []interface{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var operator sql.NullString
		var a, b, result sql.NullFloat64

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Timestamp, &entry.Kind,
			&operator, &a, &b, &result, &entry.HistoryLen); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		entry.Operator = operator.String
		entry.OperandA = a.Float64
		entry.OperandB = b.Float64
		entry.Result = result.Float64
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Stats returns journal statistics.
func (j *Journal) Stats(ctx context.Context) (*Stats, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	stats := &Stats{ByKind: make(map[string]int64)}

	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT session_id) FROM events`).
		Scan(&stats.Total, &stats.Sessions); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count events by kind: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		stats.ByKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		var last Entry
		err := j.db.QueryRowContext(ctx, `SELECT timestamp FROM events ORDER BY timestamp DESC LIMIT 1`).
			Scan(&last.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to read last event: %w", err)
		}
		stats.Last = last.Timestamp
	}

	return stats, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Listener returns a calculator listener that journals every event under
// the given session ID.
func (j *Journal) Listener(sessionID string) calculator.Listener {
	return calculator.ListenerFunc(func(event calculator.Event) error {
		entry := &Entry{
			SessionID:  sessionID,
			Kind:       event.Kind.String(),
			HistoryLen: event.Snapshot.Len(),
		}
		if calc := event.Calculation; calc != nil {
			entry.Operator = calc.Operator.String()
			entry.OperandA = calc.OperandA
			entry.OperandB = calc.OperandB
			entry.Result = calc.Result
			entry.Timestamp = calc.Timestamp
		}
		return j.Record(context.Background(), entry)
	})
}

// Prune deletes entries older than olderThan and returns how many were removed.
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := j.db.ExecContext(ctx, `DELETE FROM events WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return result.RowsAffected()
}
