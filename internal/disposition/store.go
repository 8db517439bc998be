// Package disposition implements the clinician decision step: it turns a
// draft evaluation result plus a clinician's confirm or override into an
// immutable final disposition, guaranteeing at most one finalization per
// case.
package disposition

import (
	"context"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// Store persists final dispositions. Create must be a single atomic
// check-and-write keyed on case id: if a final disposition already exists
// for the case it returns domain.ErrAlreadyFinalized, and two concurrent
// Create calls for the same case can never both succeed.
type Store interface {
	// Create inserts the final disposition, failing with
	// domain.ErrAlreadyFinalized if the case already has one.
	Create(ctx context.Context, final *domain.FinalDisposition) error

	// Get returns the final disposition for a case. Absence is reported
	// as (nil, nil) so callers can distinguish "not yet finalized" from
	// storage failures.
	Get(ctx context.Context, caseID string) (*domain.FinalDisposition, error)

	// Count returns the total number of final dispositions.
	Count(ctx context.Context) (int64, error)

	// Close releases store resources.
	Close() error
}
