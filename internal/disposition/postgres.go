package disposition

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// PostgresStore implements Store using PostgreSQL. ON CONFLICT DO NOTHING
// against the case_id primary key keeps the uniqueness check and the write
// atomic in one statement.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL disposition store over an existing
// connection. The final_dispositions table is expected to exist.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL creates a PostgreSQL disposition store from a
// connection URL.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Create inserts the final disposition, failing with
// domain.ErrAlreadyFinalized when the case already has one.
func (s *PostgresStore) Create(ctx context.Context, final *domain.FinalDisposition) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO final_dispositions (
			case_id, id, tier, pathway, self_book_allowed,
			is_override, original_tier, original_pathway,
			rationale, notes, clinician_id, finalized_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (case_id) DO NOTHING
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
func (s *PostgresStore) Get(ctx context.Context, caseID string) (*domain.FinalDisposition, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT case_id, id, tier, pathway, self_book_allowed,
		       is_override, original_tier, original_pathway,
		       rationale, notes, clinician_id, finalized_at
		FROM final_dispositions WHERE case_id = $1
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
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM final_dispositions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dispositions: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
