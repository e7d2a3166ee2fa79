// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps ranked batches for the lifetime of the process.
// Batches live in a private in-memory SQLite database; nothing is written to
// disk and everything is lost on restart. Each session remembers its most
// recent batch. Once more than MaxBatches batches are held, the oldest are
// evicted together with any session pointers to them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/talentrankr/pkg/types"
)

// ErrNotFound is returned when a batch is unknown or has been evicted.
var ErrNotFound = errors.New("batch not found")

// Store manages the in-memory batch database.
type Store struct {
	db         *sql.DB
	maxBatches int
}

// New opens a fresh in-memory database and creates the schema.
func New(cfg types.StoreConfig) (*Store, error) {
	dsn := fmt.Sprintf("file:talentrankr-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// The in-memory database lives as long as its one connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	maxBatches := cfg.MaxBatches
	if maxBatches <= 0 {
		maxBatches = 50
	}

	s := &Store{db: db, maxBatches: maxBatches}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database and discards every stored batch.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			file_name TEXT,
			created_at TEXT,
			summary TEXT,
			cards TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_batch_id ON sessions(batch_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores b and, when sessionID is not empty, records it as that
// session's most recent batch. Saving an existing batch ID replaces it.
func (s *Store) Save(ctx context.Context, sessionID string, b types.Batch) error {
	if b.ID == "" {
		return fmt.Errorf("saving batch: empty batch id")
	}
	cardsJSON, err := json.Marshal(b.Cards)
	if err != nil {
		return fmt.Errorf("encoding cards: %w", err)
	}
	summaryJSON, err := json.Marshal(b.Summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, file_name, created_at, summary, cards) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			file_name=excluded.file_name, created_at=excluded.created_at,
			summary=excluded.summary, cards=excluded.cards`,
		b.ID, b.FileName, b.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(summaryJSON), string(cardsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting batch %s: %w", b.ID, err)
	}

	if sessionID != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (session_id, batch_id) VALUES (?, ?)
			 ON CONFLICT(session_id) DO UPDATE SET batch_id=excluded.batch_id`,
			sessionID, b.ID,
		)
		if err != nil {
			return fmt.Errorf("updating session: %w", err)
		}
	}

	// Evict the oldest batches and any session rows pointing at them.
	_, err = tx.ExecContext(ctx,
		`DELETE FROM batches WHERE seq NOT IN (
			SELECT seq FROM batches ORDER BY seq DESC LIMIT ?
		)`, s.maxBatches)
	if err != nil {
		return fmt.Errorf("evicting batches: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE batch_id NOT IN (SELECT id FROM batches)`)
	if err != nil {
		return fmt.Errorf("evicting sessions: %w", err)
	}

	return tx.Commit()
}

// Get returns the batch with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Batch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file_name, created_at, summary, cards FROM batches WHERE id = ?`, id)
	return scanBatch(row)
}

// Latest returns the most recent batch saved under sessionID.
func (s *Store) Latest(ctx context.Context, sessionID string) (types.Batch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT b.id, b.file_name, b.created_at, b.summary, b.cards
		 FROM sessions s JOIN batches b ON b.id = s.batch_id
		 WHERE s.session_id = ?`, sessionID)
	return scanBatch(row)
}

// Count returns the number of batches currently held.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM batches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting batches: %w", err)
	}
	return n, nil
}

func scanBatch(row *sql.Row) (types.Batch, error) {
	var b types.Batch
	var created, summary, cards string
	if err := row.Scan(&b.ID, &b.FileName, &created, &summary, &cards); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Batch{}, ErrNotFound
		}
		return types.Batch{}, fmt.Errorf("reading batch: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		b.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(summary), &b.Summary); err != nil {
		return types.Batch{}, fmt.Errorf("decoding summary of %s: %w", b.ID, err)
	}
	if err := json.Unmarshal([]byte(cards), &b.Cards); err != nil {
		return types.Batch{}, fmt.Errorf("decoding cards of %s: %w", b.ID, err)
	}
	return b, nil
}
