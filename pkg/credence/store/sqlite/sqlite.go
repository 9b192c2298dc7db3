// Package sqlite implements store.Store on SQLite via the pure-Go
// modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/credence-io/credence/pkg/credence/internalerr"
	"github.com/credence-io/credence/pkg/credence/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL gives concurrent readers during writes.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	url TEXT,
	title TEXT,
	text TEXT NOT NULL,
	label TEXT NOT NULL,
	confidence REAL NOT NULL,
	entropy REAL NOT NULL,
	kl_divergence REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveAnalysis inserts or replaces a saved analysis.
func (s *sqliteStore) SaveAnalysis(ctx context.Context, a store.Analysis) error {
	if a.ID == "" {
		return internalerr.ErrInvalidInput
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("analyses").
		Columns("id", "url", "title", "text", "label", "confidence", "entropy", "kl_divergence", "created_at").
		Values(a.ID, a.URL, a.Title, a.Text, a.Label, a.Confidence, a.Entropy, a.KLDivergence,
			a.CreatedAt.UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(id) DO UPDATE SET label=excluded.label, confidence=excluded.confidence").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save analysis %s: %w", a.ID, err)
	}
	return nil
}

// GetAnalysis returns one saved analysis by ID.
func (s *sqliteStore) GetAnalysis(ctx context.Context, id string) (store.Analysis, error) {
	query, args, err := analysisSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return store.Analysis{}, fmt.Errorf("build select: %w", err)
	}

	a, err := scanAnalysis(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return store.Analysis{}, internalerr.ErrNotFound
	}
	if err != nil {
		return store.Analysis{}, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return a, nil
}

// ListAnalyses returns saved analyses newest first.
func (s *sqliteStore) ListAnalyses(ctx context.Context, limit int) ([]store.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := analysisSelect().
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []store.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func analysisSelect() sq.SelectBuilder {
	return sq.Select("id", "url", "title", "text", "label", "confidence", "entropy", "kl_divergence", "created_at").
		From("analyses")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (store.Analysis, error) {
	var a store.Analysis
	var created string
	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Text, &a.Label,
		&a.Confidence, &a.Entropy, &a.KLDivergence, &created); err != nil {
		return store.Analysis{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Analysis{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	a.CreatedAt = ts
	return a, nil
}
