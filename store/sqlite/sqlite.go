/*
Package sqlite provides a SQLite-backed implementation of the
jurisprudence record store.

PURPOSE:
  Implements jurisprudence.RecordStore (and the Recent read path) over
  SQLite. In production against a hosted Postgres the same patterns
  apply - only minor SQL dialect differences.

FIRST-WRITE-WINS ENFORCEMENT:
  - No UPDATE statements on the jurisprudence table
  - No DELETE statements on the jurisprudence table
  - UNIQUE index on radicado backstops the importer's check-then-insert
    against concurrent imports from other sessions

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/toga.db")   // ":memory:" for tests
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - jurisprudence/types.go: Interface definitions
  - jurisprudence/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/toga/practice-engine/jurisprudence"
)

// Store implements jurisprudence.RecordStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ jurisprudence.RecordLister = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jurisprudence (
		id TEXT PRIMARY KEY,
		radicado TEXT NOT NULL,
		sentencia_id TEXT,
		ddp_number TEXT,
		tema TEXT,
		tesis TEXT,
		source_url TEXT,
		source_type TEXT NOT NULL,
		analysis_level TEXT NOT NULL DEFAULT 'basic',
		created_at TEXT NOT NULL
	);

	-- The radicado is the natural business key. The unique index is the
	-- only cross-session dedup backstop: the importer's own check is
	-- read-then-write within a single batch.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_jurisprudence_radicado
		ON jurisprudence(radicado);

	-- Read path: recent imports, newest first.
	CREATE INDEX IF NOT EXISTS idx_jurisprudence_created_at
		ON jurisprudence(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD STORE
// =============================================================================

// FindByCaseNumber returns the record with that radicado, or nil.
func (s *Store) FindByCaseNumber(ctx context.Context, caseNumber string) (*jurisprudence.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, radicado, sentencia_id, ddp_number, tema, tesis,
		       source_url, source_type, analysis_level, created_at
		FROM jurisprudence WHERE radicado = ?`, caseNumber)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query radicado %s: %w", caseNumber, err)
	}
	return rec, nil
}

// Insert persists a new record. The unique index rejects duplicates.
func (s *Store) Insert(ctx context.Context, rec jurisprudence.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jurisprudence
			(id, radicado, sentencia_id, ddp_number, tema, tesis,
			 source_url, source_type, analysis_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CaseNumber, rec.DecisionCode, rec.DDPNumber,
		rec.Topic, rec.Thesis, rec.SourceURL, string(rec.SourceType),
		rec.AnalysisLevel, rec.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert radicado %s: %w", rec.CaseNumber, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]jurisprudence.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, radicado, sentencia_id, ddp_number, tema, tesis,
		       source_url, source_type, analysis_level, created_at
		FROM jurisprudence ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	var out []jurisprudence.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jurisprudence`).Scan(&n)
	return n, err
}

// =============================================================================
// SCANNING
// =============================================================================

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*jurisprudence.Record, error) {
	var rec jurisprudence.Record
	var sourceType, createdAt string
	var decisionCode, ddp, topic, thesis, sourceURL sql.NullString

	err := row.Scan(&rec.ID, &rec.CaseNumber, &decisionCode, &ddp, &topic,
		&thesis, &sourceURL, &sourceType, &rec.AnalysisLevel, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.DecisionCode = decisionCode.String
	rec.DDPNumber = ddp.String
	rec.Topic = topic.String
	rec.Thesis = thesis.String
	rec.SourceURL = sourceURL.String
	rec.SourceType = jurisprudence.SourceType(sourceType)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
