package disposition

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// SQLiteStore implements Store using SQLite. The PRIMARY KEY on case_id
// makes the insert the atomic check-and-write that enforces at-most-one
// finalization per case.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a SQLite disposition store, creating the database
// file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS final_dispositions (
		case_id TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		tier TEXT NOT NULL,
		pathway TEXT NOT NULL,
		self_book_allowed INTEGER NOT NULL DEFAULT 0,
		is_override INTEGER NOT NULL DEFAULT 0,
		original_tier TEXT DEFAULT '',
		original_pathway TEXT DEFAULT '',
		rationale TEXT DEFAULT '',
		notes TEXT DEFAULT '',
		clinician_id TEXT NOT NULL,
		finalized_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dispositions_clinician ON final_dispositions(clinician_id);
	CREATE INDEX IF NOT EXISTS idx_dispositions_finalized_at ON final_dispositions(finalized_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Create inserts the final disposition. INSERT OR IGNORE plus a rows-affected
// check keeps the uniqueness test and the write in a single statement.
func (s *SQLiteStore) Create(ctx context.Context, final *domain.FinalDisposition) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO final_dispositions (
			case_id, id, tier, pathway, self_book_allowed,
			is_override, original_tier, original_pathway,
			rationale, notes, clinician_id, finalized_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		final.CaseID,
		final.ID,
		string(final.Tier),
		string(final.Pathway),
		final.SelfBookAllowed,
		final.IsOverride,
		string(final.OriginalTier),
		string(final.OriginalPathway),
		final.Rationale,
		final.Notes,
		final.ClinicianID,
		final.FinalizedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert final disposition: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check insert result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: case %s", domain.ErrAlreadyFinalized, final.CaseID)
	}
	return nil
}

// Get returns the final disposition for a case, or (nil, nil) if none.
func (s *SQLiteStore) Get(ctx context.Context, caseID string) (*domain.FinalDisposition, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT case_id, id, tier, pathway, self_book_allowed,
		       is_override, original_tier, original_pathway,
		       rationale, notes, clinician_id, finalized_at
		FROM final_dispositions WHERE case_id = ?
	`, caseID)

	final, err := scanDisposition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query final disposition: %w", err)
	}
	return final, nil
}

// Count returns the number of finalized cases.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM final_dispositions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dispositions: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner is an interface for sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDisposition(s scanner) (*domain.FinalDisposition, error) {
	final := &domain.FinalDisposition{}
	var tier, pathway, originalTier, originalPathway string
	var finalizedAt time.Time

	err := s.Scan(
		&final.CaseID, &final.ID, &tier, &pathway, &final.SelfBookAllowed,
		&final.IsOverride, &originalTier, &originalPathway,
		&final.Rationale, &final.Notes, &final.ClinicianID, &finalizedAt,
	)
	if err != nil {
		return nil, err
	}

	final.Tier = domain.Tier(tier)
	final.Pathway = domain.Pathway(pathway)
	final.OriginalTier = domain.Tier(originalTier)
	final.OriginalPathway = domain.Pathway(originalPathway)
	final.FinalizedAt = finalizedAt
	return final, nil
}
