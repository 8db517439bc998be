package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// RulesEngine evaluates a rule set against a fact map and produces a draft
// triage decision. It is stateless across calls: the same rule set and
// facts always yield an identical result.
type RulesEngine struct {
	logger *logrus.Logger
}

// NewRulesEngine creates a rules engine.
func NewRulesEngine(logger *logrus.Logger) *RulesEngine {
	return &RulesEngine{logger: logger}
}

// Evaluate orders the rule set's rules by ascending priority (stable, so
// declaration order breaks ties), evaluates each condition, selects the
// winning outcome per the rule set's evaluation mode, and applies the
// tier safeguards unconditionally after selection.
//
// Evaluation over a loaded rule set cannot fail: unsupported operators and
// malformed condition shapes were rejected at load time.
func (e *RulesEngine) Evaluate(rs *domain.RuleSet, facts domain.FactMap) *domain.EvaluationResult {
	ordered := make([]domain.Rule, len(rs.Rules))
	copy(ordered, rs.Rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var matched []domain.Rule
	for _, rule := range ordered {
		if !EvaluateCondition(rule.When, facts) {
			continue
		}
		matched = append(matched, rule)
		if rs.Mode == domain.FirstMatchWins {
			break
		}
	}

	// Tier and pathway always come from the first-priority match; in
	// all_matches mode the remaining matches contribute flags and
	// explanations only.
	winning := rs.Default
	if len(matched) > 0 {
		winning = matched[0].Then
	}

	result := &domain.EvaluationResult{
		Tier:            winning.Tier,
		Pathway:         winning.Pathway,
		SelfBookAllowed: winning.SelfBookAllowed,
		RulesFired:      make([]string, 0, len(matched)),
		RuleSetVersion:  rs.Version,
		RuleSetHash:     rs.ContentHash,
	}

	for _, rule := range matched {
		result.RulesFired = append(result.RulesFired, rule.ID)
		if rule.Then.Explain != "" {
			result.Explanations = append(result.Explanations, rule.Then.Explain)
		}
		result.Flags = append(result.Flags, rule.Then.Flags...)
	}
	if len(matched) == 0 && rs.Default.Explain != "" {
		result.Explanations = append(result.Explanations, rs.Default.Explain)
	}

	e.applySafeguards(result)

	e.logger.WithFields(logrus.Fields{
		"ruleset":      rs.ID,
		"ruleset_hash": rs.ContentHash,
		"tier":         result.Tier.String(),
		"pathway":      result.Pathway.String(),
		"rules_fired":  result.RulesFired,
	}).Info("Completed rule evaluation")

	return result
}

// applySafeguards enforces the tier invariant after rule selection: RED and
// AMBER always require clinician review and never allow self-booking, no
// matter what the winning rule specified. This must not be bypassable by
// rule-set content.
func (e *RulesEngine) applySafeguards(result *domain.EvaluationResult) {
	result.ClinicianReviewRequired = result.Tier.RequiresClinicianReview()
	if !result.Tier.AllowsSelfBook() && result.SelfBookAllowed {
		e.logger.WithFields(logrus.Fields{
			"tier":        result.Tier.String(),
			"rules_fired": result.RulesFired,
		}).Warn("Rule outcome requested self-booking on a reviewed tier, overridden by safeguard")
		result.SelfBookAllowed = false
	}
}
