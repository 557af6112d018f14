// Package audit keeps an optional submission log in Postgres: which result
// artifacts were written, when, by whom, and how many answers each carried.
// The store is disabled when no database is configured; callers must treat a
// nil *Store as "no audit".
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS submissions (
    id           UUID PRIMARY KEY,
    submitted_at TIMESTAMPTZ NOT NULL,
    submitter    TEXT NOT NULL DEFAULT '',
    item_count   INTEGER NOT NULL,
    artifact     TEXT NOT NULL
)`

// Submission is one audit entry.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Submitter   string    `json:"submitter,omitempty"`
	ItemCount   int       `json:"item_count"`
	Artifact    string    `json:"artifact"`
}

// Store records submissions in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store and ensures the submissions table exists.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("creating submissions table: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Log inserts one submission entry.
func (s *Store) Log(ctx context.Context, sub Submission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (id, submitted_at, submitter, item_count, artifact)
		 VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.SubmittedAt, sub.Submitter, sub.ItemCount, sub.Artifact,
	)
	if err != nil {
		return fmt.Errorf("logging submission %s: %w", sub.ID, err)
	}
	return nil
}

// Recent returns the most recent submissions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, submitted_at, submitter, item_count, artifact
		 FROM submissions ORDER BY submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.SubmittedAt, &sub.Submitter, &sub.ItemCount, &sub.Artifact); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading submissions: %w", err)
	}
	return out, nil
}
