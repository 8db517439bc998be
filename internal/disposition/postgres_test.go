package disposition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewPostgresStore(db)
	require.NoError(t, err)
	return store, mock
}

func TestPostgresStore_Create(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO final_dispositions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), sampleDisposition("case-001"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateConflict(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	// ON CONFLICT DO NOTHING reports zero rows affected for a duplicate.
	mock.ExpectExec("INSERT INTO final_dispositions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Create(context.Background(), sampleDisposition("case-001"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadyFinalized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	finalizedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"case_id", "id", "tier", "pathway", "self_book_allowed",
		"is_override", "original_tier", "original_pathway",
		"rationale", "notes", "clinician_id", "finalized_at",
	}).AddRow(
		"case-001", "disp-1", "AMBER", "PSYCHIATRY_ASSESSMENT", false,
		true, "GREEN", "THERAPY_ASSESSMENT",
		"deteriorated since submission", "", "clin-42", finalizedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM final_dispositions WHERE case_id").
		WithArgs("case-001").
		WillReturnRows(rows)

	got, err := store.Get(context.Background(), "case-001")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, domain.TierAmber, got.Tier)
	assert.Equal(t, domain.PathwayPsychiatryAssessment, got.Pathway)
	assert.True(t, got.IsOverride)
	assert.Equal(t, domain.TierGreen, got.OriginalTier)
	assert.Equal(t, "deteriorated since submission", got.Rationale)
	assert.True(t, finalizedAt.Equal(got.FinalizedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAbsent(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT (.+) FROM final_dispositions WHERE case_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"case_id"}))

	got, err := store.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Count(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM final_dispositions").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStore_NilConnection(t *testing.T) {
	store, err := NewPostgresStore(nil)
	assert.Nil(t, store)
	assert.Error(t, err)
}
