// Package scoring computes deterministic clinical instrument scores (PHQ-9,
// GAD-7, AUDIT-C) from raw per-item questionnaire answers.
//
// Each scorer is a stateless, pure function: it normalizes each raw value to
// the instrument's valid integer range, sums the items, and classifies the
// total into a fixed severity band via the instrument's published
// thresholds. Partial questionnaires are expected — missing or unknown
// items score 0 and never raise.
package scoring

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// Answer key prefixes identifying each instrument's items in a combined
// submission, e.g. "phq9_q1" or "audit_c_q3".
const (
	phq9Prefix   = "phq9_"
	gad7Prefix   = "gad7_"
	auditCPrefix = "audit_c_"
)

// Engine runs the clinical instrument scorers.
type Engine struct {
	logger *logrus.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// CalculateAllApplicable scores every instrument whose item keys appear in
// the combined answers map. Instruments with no data at all are skipped
// rather than scored to a misleading normal-range 0.
func (e *Engine) CalculateAllApplicable(answers map[string]any) []domain.ScoreResult {
	results := make([]domain.ScoreResult, 0, 3)

	if items := extractItems(answers, phq9Prefix); len(items) > 0 {
		results = append(results, e.ScorePHQ9(items))
	}
	if items := extractItems(answers, gad7Prefix); len(items) > 0 {
		results = append(results, e.ScoreGAD7(items))
	}
	if items := extractItems(answers, auditCPrefix); len(items) > 0 {
		results = append(results, e.ScoreAUDITC(items))
	}

	e.logger.WithFields(logrus.Fields{
		"answer_count":       len(answers),
		"instruments_scored": len(results),
	}).Debug("Completed instrument scoring")

	return results
}

// extractItems pulls an instrument's items out of a combined answers map,
// stripping the instrument prefix so scorers see bare item ids (q1, q2, ...).
func extractItems(answers map[string]any, prefix string) map[string]any {
	items := make(map[string]any)
	for key, value := range answers {
		if strings.HasPrefix(key, prefix) {
			items[strings.TrimPrefix(key, prefix)] = value
		}
	}
	return items
}

// normalizeItem converts a raw answer value to an integer item score in
// [0, max]. Numerics are clamped, booleans map to 1/0, known string labels
// map via the instrument's label table, and anything else scores 0.
func normalizeItem(value any, max int, labels map[string]int) int {
	switch v := value.(type) {
	case bool:
		if v {
			return clamp(1, max)
		}
		return 0
	case string:
		label := strings.ToLower(strings.TrimSpace(v))
		if score, ok := labels[label]; ok {
			return clamp(score, max)
		}
		// Numeric strings are accepted the same way numbers are.
		if n, err := cast.ToIntE(label); err == nil {
			return clamp(n, max)
		}
		return 0
	default:
		if n, err := cast.ToIntE(value); err == nil {
			return clamp(n, max)
		}
		return 0
	}
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// scoreItems normalizes and sums a fixed item list, returning per-item
// scores and the total. Items absent from answers score 0.
func scoreItems(answers map[string]any, itemIDs []string, maxPerItem int, labels map[string]int) (map[string]int, int) {
	itemScores := make(map[string]int, len(itemIDs))
	total := 0
	for _, id := range itemIDs {
		score := 0
		if raw, ok := answers[id]; ok {
			score = normalizeItem(raw, maxPerItem, labels)
		}
		itemScores[id] = score
		total += score
	}
	return itemScores, total
}
