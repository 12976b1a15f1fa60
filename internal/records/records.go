// Package records keeps a history of finished and saved runs in SQLite.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite" // pure Go driver

	"github.com/samdwyer/roguelike/internal/telemetry"
)

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeSaved     Outcome = "saved"
	OutcomeDied      Outcome = "died"
	OutcomeAbandoned Outcome = "abandoned"
)

// Run is one row of the history table.
type Run struct {
	ID        string
	Seed      int64
	Outcome   Outcome
	Turns     int
	Kills     int
	StartedAt time.Time
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	seed       INTEGER NOT NULL,
	outcome    TEXT NOT NULL,
	turns      INTEGER NOT NULL,
	kills      INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store wraps the records database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the records database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("records: empty database path")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, (5 * time.Second).Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("records: open failed: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("records: ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("records: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts the run, or updates it when the id is already known. A
// resumed game keeps its id, so one playthrough is always one row.
func (s *Store) Record(ctx context.Context, run Run) error {
	ctx, span := telemetry.Tracer("records").Start(ctx, "records.record")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", run.ID),
		attribute.String("run.outcome", string(run.Outcome)),
	)

	if run.ID == "" {
		return errors.New("records: run has no id")
	}
	if run.UpdatedAt.IsZero() {
		run.UpdatedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.UpdatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, outcome, turns, kills, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			outcome = excluded.outcome,
			turns = excluded.turns,
			kills = excluded.kills,
			updated_at = excluded.updated_at`,
		run.ID, run.Seed, string(run.Outcome), run.Turns, run.Kills,
		run.StartedAt.UnixMilli(), run.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("records: upsert run %s: %w", run.ID, err)
	}
	return nil
}

// Top returns up to limit runs ordered by kills, then turns survived.
func (s *Store) Top(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seed, outcome, turns, kills, started_at, updated_at
		FROM runs
		ORDER BY kills DESC, turns DESC, updated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("records: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                  Run
			outcome            string
			started, updatedAt int64
		)
		if err := rows.Scan(&r.ID, &r.Seed, &outcome, &r.Turns, &r.Kills, &started, &updatedAt); err != nil {
			return nil, fmt.Errorf("records: scan run: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.StartedAt = time.UnixMilli(started)
		r.UpdatedAt = time.UnixMilli(updatedAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records: iterate runs: %w", err)
	}
	return runs, nil
}
