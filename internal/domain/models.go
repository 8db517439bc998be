package domain

import (
	"fmt"
	"time"
)

// RuleSet is an immutable, versioned collection of triage rules loaded from
// an approved artifact. ContentHash is a SHA-256 digest over the artifact's
// exact source bytes, computed before parsing, so it proves after the fact
// exactly which artifact produced a decision.
type RuleSet struct {
	ID          string         `json:"id"`
	Version     string         `json:"version"`
	Mode        EvaluationMode `json:"evaluation_mode"`
	Rules       []Rule         `json:"rules"`
	Default     Outcome        `json:"default_outcome"`
	ContentHash string         `json:"content_hash"`
}

// Validate checks the rule set is internally consistent: valid mode and
// default outcome, unique rule ids, and well-formed conditions.
func (rs *RuleSet) Validate() error {
	if rs.ID == "" {
		return fmt.Errorf("rule set validation: id is required")
	}
	if !rs.Mode.IsValid() {
		return fmt.Errorf("rule set validation: invalid evaluation mode %q", string(rs.Mode))
	}
	if err := rs.Default.Validate(); err != nil {
		return fmt.Errorf("rule set validation: default outcome: %w", err)
	}

	seen := make(map[string]bool, len(rs.Rules))
	for i, rule := range rs.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule set validation: rule %d: %w", i, err)
		}
		if seen[rule.ID] {
			return fmt.Errorf("rule set validation: duplicate rule id %q", rule.ID)
		}
		seen[rule.ID] = true
	}
	return nil
}

// Rule is a single triage rule. Lower priority numbers take precedence.
// Rule ids are referenced from audit trails and must stay stable across
// rule-set versions that merely re-tune thresholds.
type Rule struct {
	ID       string    `json:"id"`
	Priority int       `json:"priority"`
	When     Condition `json:"when"`
	Then     Outcome   `json:"then"`
}

// Validate checks the rule has an id, a well-formed condition, and a valid
// outcome.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if err := r.When.Validate(); err != nil {
		return fmt.Errorf("rule %s condition: %w", r.ID, err)
	}
	if err := r.Then.Validate(); err != nil {
		return fmt.Errorf("rule %s outcome: %w", r.ID, err)
	}
	return nil
}

// Outcome is what a matched rule (or the rule-set default) prescribes.
type Outcome struct {
	Tier            Tier    `json:"tier"`
	Pathway         Pathway `json:"pathway"`
	SelfBookAllowed bool    `json:"self_book_allowed"`
	Flags           []Flag  `json:"flags,omitempty"`
	Explain         string  `json:"explain,omitempty"`
}

// Validate checks the outcome's tier, pathway, and flags.
func (o *Outcome) Validate() error {
	if !o.Tier.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTier, string(o.Tier))
	}
	if !o.Pathway.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPathway, string(o.Pathway))
	}
	for i, flag := range o.Flags {
		if flag.Type == "" {
			return fmt.Errorf("flag %d: type is required", i)
		}
		if !flag.Severity.IsValid() {
			return fmt.Errorf("flag %d: invalid severity %q", i, string(flag.Severity))
		}
	}
	return nil
}

// Flag is a typed clinical marker raised by a matched rule, carried through
// to the evaluation result for downstream review queues.
type Flag struct {
	Type     string       `json:"type"`
	Severity FlagSeverity `json:"severity"`
}

// EvaluationResult is the engine's draft triage decision. It is created once
// per evaluation, is immutable, and is owned by the caller.
//
// Invariant (engine-enforced): Tier in {RED, AMBER} implies
// ClinicianReviewRequired == true and SelfBookAllowed == false.
type EvaluationResult struct {
	Tier                    Tier     `json:"tier"`
	Pathway                 Pathway  `json:"pathway"`
	SelfBookAllowed         bool     `json:"self_book_allowed"`
	ClinicianReviewRequired bool     `json:"clinician_review_required"`
	RulesFired              []string `json:"rules_fired"`
	Explanations            []string `json:"explanations,omitempty"`
	Flags                   []Flag   `json:"flags,omitempty"`
	RuleSetVersion          string   `json:"ruleset_version"`
	RuleSetHash             string   `json:"ruleset_hash"`
}

// ScoreResult holds the deterministic score for one clinical instrument.
type ScoreResult struct {
	Instrument   Instrument     `json:"instrument"`
	TotalScore   int            `json:"total_score"`
	MaxScore     int            `json:"max_score"`
	SeverityBand SeverityBand   `json:"severity_band"`
	ItemScores   map[string]int `json:"item_scores"`

	// PHQ-9 only: any nonzero response to item 9 (self-harm/suicidal
	// ideation) carries safety significance independent of the total.
	Item9Positive bool `json:"item9_positive,omitempty"`

	// AUDIT-C only: sex-specific hazardous drinking thresholds.
	AboveMaleThreshold   bool `json:"above_male_threshold,omitempty"`
	AboveFemaleThreshold bool `json:"above_female_threshold,omitempty"`
}

// DispositionDraft is the persisted form of an EvaluationResult awaiting a
// clinician's decision. IsApplied is set once, when a clinician acts on it.
type DispositionDraft struct {
	ID        string           `json:"id"`
	CaseID    string           `json:"case_id"`
	Result    EvaluationResult `json:"result"`
	IsApplied bool             `json:"is_applied"`
	CreatedAt time.Time        `json:"created_at"`
}

// FinalDisposition is the binding triage decision for a case. It is created
// exactly once per case and never updated or deleted; any correction
// requires a new case and draft, never a mutation of this record.
type FinalDisposition struct {
	ID              string    `json:"id"`
	CaseID          string    `json:"case_id"`
	Tier            Tier      `json:"tier"`
	Pathway         Pathway   `json:"pathway"`
	SelfBookAllowed bool      `json:"self_book_allowed"`
	IsOverride      bool      `json:"is_override"`
	OriginalTier    Tier      `json:"original_tier,omitempty"`
	OriginalPathway Pathway   `json:"original_pathway,omitempty"`
	Rationale       string    `json:"rationale,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	ClinicianID     string    `json:"clinician_id"`
	FinalizedAt     time.Time `json:"finalized_at"`
}

// Validate checks the final disposition's clinical-governance invariants.
func (d *FinalDisposition) Validate() error {
	if d.CaseID == "" {
		return fmt.Errorf("final disposition validation: case id is required")
	}
	if !d.Tier.IsValid() {
		return fmt.Errorf("final disposition validation: %w: %q", ErrInvalidTier, string(d.Tier))
	}
	if !d.Pathway.IsValid() {
		return fmt.Errorf("final disposition validation: %w: %q", ErrInvalidPathway, string(d.Pathway))
	}
	if d.ClinicianID == "" {
		return fmt.Errorf("final disposition validation: clinician id is required")
	}
	if d.IsOverride && d.Rationale == "" {
		return fmt.Errorf("final disposition validation: %w", ErrRationaleRequired)
	}
	if d.SelfBookAllowed && !d.Tier.AllowsSelfBook() {
		return fmt.Errorf("final disposition validation: tier %s cannot allow self-booking", d.Tier)
	}
	return nil
}
