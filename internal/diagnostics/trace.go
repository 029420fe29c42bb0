package diagnostics

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Trace records the completion/failure history of a run's assignments, for
// a host that wants to inspect a block's suspend/resume behavior after the
// fact. It mirrors the teacher's pattern of opening a modernc.org/sqlite
// handle and issuing plain database/sql statements.
type Trace struct {
	db *sql.DB
}

// OpenTrace opens (and creates, if needed) a trace database at dsn. Pass
// ":memory:" for a sink that lives only as long as the process.
func OpenTrace(dsn string) (*Trace, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: open trace db: %w", err)
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS trace_events (
			trace_id   TEXT    NOT NULL,
			identifier  INTEGER NOT NULL,
			name       TEXT    NOT NULL,
			phase      TEXT    NOT NULL,
			outcome    TEXT    NOT NULL
		)`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("diagnostics: create trace schema: %w", err)
	}
	return &Trace{db: db}, nil
}

// Record logs one assignment's settlement (complete, failed, or blocked)
// under traceID, for later correlation across a run's suspend/resume
// cycles.
func (t *Trace) Record(ctx context.Context, traceID string, identifier uint64, name string, phase Phase, outcome string) error {
	const insert = `
		INSERT INTO trace_events (trace_id, identifier, name, phase, outcome)
		VALUES (?, ?, ?, ?, ?)`
	_, err := t.db.ExecContext(ctx, insert, traceID, identifier, name, string(phase), outcome)
	return err
}

// History returns every recorded outcome for traceID, in insertion order.
func (t *Trace) History(ctx context.Context, traceID string) ([]TraceEvent, error) {
	const query = `
		SELECT identifier, name, phase, outcome
		FROM trace_events
		WHERE trace_id = ?
		ORDER BY rowid`
	rows, err := t.db.QueryContext(ctx, query, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []TraceEvent
	for rows.Next() {
		var e TraceEvent
		var phase string
		if err := rows.Scan(&e.Identifier, &e.Name, &phase, &e.Outcome); err != nil {
			return nil, err
		}
		e.Phase = Phase(phase)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close releases the underlying database handle.
func (t *Trace) Close() error { return t.db.Close() }

// TraceEvent is one row of a run's recorded history.
type TraceEvent struct {
	Identifier uint64
	Name       string
	Phase      Phase
	Outcome    string
}
