// Package actionlog provides SQLite-backed durable storage for paint
// sessions.
//
// The log is append-only: every performed action (draw, special, undo,
// redo) is written with its logical-clock seq and a content payload, and
// read back in seq order for deterministic replay. Writes are idempotent
// per action ID, so re-recording an already-logged action is harmless.
//
// The schema is a convenience for replay, not a stability contract.
package actionlog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Kind classifies how an action was performed in the session.
type Kind string

const (
	KindDraw    Kind = "draw"
	KindSpecial Kind = "special"
	KindUndo    Kind = "undo"
	KindRedo    Kind = "redo"
)

// ErrUnknownKind is returned when decoding a record with a kind outside the
// four performed-action kinds.
var ErrUnknownKind = errors.New("actionlog: unknown action kind")

// StepRecord is the stored form of one brush touch. Layers are stored by
// name: names are stable for the process lifetime and survive catalogue
// index reshuffles between builds better than raw indices would.
type StepRecord struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Layer string `json:"layer"`
}

// Record is one logged action.
type Record struct {
	Seq   int64
	ID    string
	Kind  Kind
	Steps []StepRecord
}

// Log is a SQLite-backed action log.
type Log struct {
	db *sql.DB
}

// Open creates or opens a log database at path. ":memory:" gives an
// isolated in-memory log, which the tests and the harness use.
//
// The connection is configured the single-writer way: WAL journal for
// concurrent reads, one open connection to avoid SQLITE_BUSY, and a busy
// timeout for lock contention. Open is idempotent.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("actionlog: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("actionlog: connect: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("actionlog: %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("actionlog: apply schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append writes a record. Duplicate IDs are silently ignored so appending
// is idempotent; other constraint violations still error.
func (l *Log) Append(ctx context.Context, rec Record) error {
	stepsJSON, err := json.Marshal(rec.Steps)
	if err != nil {
		return fmt.Errorf("actionlog: marshal steps: %w", err)
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO actions (seq, id, kind, steps)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.Seq, rec.ID, string(rec.Kind), string(stepsJSON))
	if err != nil {
		return fmt.Errorf("actionlog: append action %s: %w", rec.ID, err)
	}
	return nil
}

// ReadAll returns every record ordered by seq, then ID, so read-back order
// is deterministic. Returns an empty slice, not nil, for an empty log.
func (l *Log) ReadAll(ctx context.Context) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT seq, id, kind, steps
		FROM actions
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("actionlog: query actions: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec       Record
			kind      string
			stepsJSON string
		)
		if err := rows.Scan(&rec.Seq, &rec.ID, &kind, &stepsJSON); err != nil {
			return nil, fmt.Errorf("actionlog: scan action: %w", err)
		}
		rec.Kind = Kind(kind)
		if err := json.Unmarshal([]byte(stepsJSON), &rec.Steps); err != nil {
			return nil, fmt.Errorf("actionlog: decode steps of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("actionlog: iterate actions: %w", err)
	}
	return records, nil
}

// LastSeq returns the highest recorded seq, or zero for an empty log. Use
// it to resume a logical clock after reopening a log.
func (l *Log) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := l.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM actions`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("actionlog: last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}
