// Package service orchestrates the triage pipeline: raw assessment answers
// are scored, merged into a fact map, evaluated against the named rule set,
// and captured as a disposition draft awaiting a clinician's decision.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rkimidis/acucare-pathways/internal/audit"
	"github.com/rkimidis/acucare-pathways/internal/disposition"
	"github.com/rkimidis/acucare-pathways/internal/domain"
	"github.com/rkimidis/acucare-pathways/internal/engine"
	"github.com/rkimidis/acucare-pathways/internal/facts"
	"github.com/rkimidis/acucare-pathways/internal/ruleset"
	"github.com/rkimidis/acucare-pathways/internal/scoring"
)

// TriageService wires the triage decision core together.
type TriageService struct {
	logger   *logrus.Logger
	rulesets *ruleset.Store
	scoring  *scoring.Engine
	engine   *engine.RulesEngine
	workflow *disposition.Workflow
	recorder audit.Recorder
}

// NewTriageService creates a triage service.
func NewTriageService(
	logger *logrus.Logger,
	rulesets *ruleset.Store,
	store disposition.Store,
	recorder audit.Recorder,
) *TriageService {
	return &TriageService{
		logger:   logger,
		rulesets: rulesets,
		scoring:  scoring.NewEngine(logger),
		engine:   engine.NewRulesEngine(logger),
		workflow: disposition.NewWorkflow(logger, store),
		recorder: recorder,
	}
}

// EvaluateParams are the inputs to one triage evaluation.
type EvaluateParams struct {
	CaseID      string         `json:"case_id"`
	RuleSetName string         `json:"ruleset_name"`
	Answers     map[string]any `json:"answers"`
	Actor       string         `json:"actor"`
}

// EvaluateResult carries the draft decision and the instrument scores that
// fed it, for the caller to persist and present.
type EvaluateResult struct {
	Draft          *domain.DispositionDraft `json:"draft"`
	Scores         []domain.ScoreResult     `json:"scores"`
	ProcessingTime time.Duration            `json:"processing_time"`
}

// Evaluate runs the full pipeline for one case and returns the draft
// disposition. The draft is not binding until a clinician confirms or
// overrides it.
func (s *TriageService) Evaluate(ctx context.Context, params EvaluateParams) (*EvaluateResult, error) {
	startTime := time.Now()

	if params.CaseID == "" {
		return nil, fmt.Errorf("case id is required")
	}
	if params.RuleSetName == "" {
		return nil, fmt.Errorf("ruleset name is required")
	}

	s.logger.WithFields(logrus.Fields{
		"case_id": params.CaseID,
		"ruleset": params.RuleSetName,
	}).Info("Starting triage evaluation")

	// Step 1: load the approved rule set (cached, content-hashed).
	rs, err := s.rulesets.Load(params.RuleSetName)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule set: %w", err)
	}

	// Step 2: score the instruments that have answer data.
	scores := s.scoring.CalculateAllApplicable(params.Answers)

	// Step 3: build the fact map.
	factMap := facts.Build(params.Answers, scores)

	// Step 4: evaluate the rules and apply safeguards.
	result := s.engine.Evaluate(rs, factMap)

	draft := &domain.DispositionDraft{
		ID:        uuid.NewString(),
		CaseID:    params.CaseID,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}

	event := audit.NewEvent(params.Actor, audit.ActionEvaluated, "case:"+params.CaseID)
	event.AfterTier = result.Tier
	event.RuleSetHash = result.RuleSetHash
	event.Details = map[string]any{
		"rules_fired":        result.RulesFired,
		"instruments_scored": len(scores),
	}
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to record audit event")
	}

	s.logger.WithFields(logrus.Fields{
		"case_id":         params.CaseID,
		"tier":            result.Tier.String(),
		"pathway":         result.Pathway.String(),
		"rules_fired":     len(result.RulesFired),
		"processing_time": time.Since(startTime),
	}).Info("Triage evaluation completed")

	return &EvaluateResult{
		Draft:          draft,
		Scores:         scores,
		ProcessingTime: time.Since(startTime),
	}, nil
}

// Confirm finalizes a case with the draft's recommendation and emits the
// audit record.
func (s *TriageService) Confirm(ctx context.Context, draft *domain.DispositionDraft, clinicianID, notes string) (*domain.FinalDisposition, error) {
	final, err := s.workflow.Confirm(ctx, draft, clinicianID, notes)
	if err != nil {
		return nil, err
	}

	event := audit.NewEvent(clinicianID, audit.ActionConfirmed, "case:"+final.CaseID)
	event.BeforeTier = final.Tier
	event.AfterTier = final.Tier
	event.RuleSetHash = draft.Result.RuleSetHash
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to record audit event")
	}

	return final, nil
}

// Override finalizes a case with a clinician-chosen tier/pathway and emits
// the audit record with the tier movement.
func (s *TriageService) Override(ctx context.Context, draft *domain.DispositionDraft, clinicianID string, newTier domain.Tier, newPathway domain.Pathway, rationale, notes string) (*domain.FinalDisposition, error) {
	final, err := s.workflow.Override(ctx, draft, clinicianID, newTier, newPathway, rationale, notes)
	if err != nil {
		return nil, err
	}

	event := audit.NewEvent(clinicianID, audit.ActionOverridden, "case:"+final.CaseID)
	event.BeforeTier = final.OriginalTier
	event.AfterTier = final.Tier
	event.RuleSetHash = draft.Result.RuleSetHash
	event.Details = map[string]any{"rationale": final.Rationale}
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to record audit event")
	}

	return final, nil
}
