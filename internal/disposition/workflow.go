package disposition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// Workflow is the clinician decision state machine per case:
// NoDraft -> Drafted -> Finalized(confirmed|overridden). Finalized is
// terminal; the store's atomic insert guarantees at most one finalization
// even under concurrent calls.
type Workflow struct {
	logger *logrus.Logger
	store  Store
}

// NewWorkflow creates a disposition workflow over the given store.
func NewWorkflow(logger *logrus.Logger, store Store) *Workflow {
	return &Workflow{logger: logger, store: store}
}

// Confirm finalizes a case by accepting the draft's recommendation verbatim.
// Fails with domain.ErrNoDraft when no draft exists and with
// domain.ErrAlreadyFinalized when the case already has a final disposition.
func (w *Workflow) Confirm(ctx context.Context, draft *domain.DispositionDraft, clinicianID, notes string) (*domain.FinalDisposition, error) {
	if draft == nil {
		return nil, domain.ErrNoDraft
	}
	if clinicianID == "" {
		return nil, fmt.Errorf("clinician id is required")
	}

	final := &domain.FinalDisposition{
		ID:              uuid.NewString(),
		CaseID:          draft.CaseID,
		Tier:            draft.Result.Tier,
		Pathway:         draft.Result.Pathway,
		SelfBookAllowed: draft.Result.SelfBookAllowed,
		IsOverride:      false,
		Notes:           notes,
		ClinicianID:     clinicianID,
		FinalizedAt:     time.Now().UTC(),
	}

	if err := w.finalize(ctx, draft, final); err != nil {
		return nil, err
	}

	w.logger.WithFields(logrus.Fields{
		"case_id":      final.CaseID,
		"tier":         final.Tier.String(),
		"pathway":      final.Pathway.String(),
		"clinician_id": clinicianID,
	}).Info("Disposition confirmed")

	return final, nil
}

// Override finalizes a case with a clinician-chosen tier and pathway in
// place of the draft's. The rationale is a clinical-governance requirement
// and must be non-empty after trimming whitespace; it is enforced here, not
// left to upstream input validation.
//
// self_book_allowed and clinician_review_required are re-derived from the
// new tier rather than copied from the draft, so an override can never
// silently grant self-booking to a RED or AMBER case.
func (w *Workflow) Override(ctx context.Context, draft *domain.DispositionDraft, clinicianID string, newTier domain.Tier, newPathway domain.Pathway, rationale, notes string) (*domain.FinalDisposition, error) {
	if draft == nil {
		return nil, domain.ErrNoDraft
	}
	if clinicianID == "" {
		return nil, fmt.Errorf("clinician id is required")
	}
	if !newTier.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTier, string(newTier))
	}
	if !newPathway.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPathway, string(newPathway))
	}
	if strings.TrimSpace(rationale) == "" {
		return nil, domain.ErrRationaleRequired
	}

	final := &domain.FinalDisposition{
		ID:              uuid.NewString(),
		CaseID:          draft.CaseID,
		Tier:            newTier,
		Pathway:         newPathway,
		SelfBookAllowed: newTier.AllowsSelfBook(),
		IsOverride:      true,
		OriginalTier:    draft.Result.Tier,
		OriginalPathway: draft.Result.Pathway,
		Rationale:       rationale,
		Notes:           notes,
		ClinicianID:     clinicianID,
		FinalizedAt:     time.Now().UTC(),
	}

	if err := w.finalize(ctx, draft, final); err != nil {
		return nil, err
	}

	w.logger.WithFields(logrus.Fields{
		"case_id":       final.CaseID,
		"tier":          final.Tier.String(),
		"original_tier": final.OriginalTier.String(),
		"pathway":       final.Pathway.String(),
		"clinician_id":  clinicianID,
	}).Info("Disposition overridden")

	return final, nil
}

// finalize performs the single atomic transition: the store insert is the
// check-and-write, and the draft is marked applied only once it succeeds.
func (w *Workflow) finalize(ctx context.Context, draft *domain.DispositionDraft, final *domain.FinalDisposition) error {
	if err := final.Validate(); err != nil {
		return err
	}
	if err := w.store.Create(ctx, final); err != nil {
		return err
	}
	draft.IsApplied = true
	return nil
}
