// Package facts builds the flat fact map the rule evaluator consumes from
// raw assessment answers and computed instrument scores.
//
// Every derived fact is a 1:1 passthrough of a named answer key or a simple
// boolean aggregate over a fixed key list — no inference of any kind.
// Build has no side effects and is independently testable from the scoring
// and rules stages.
package facts

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// riskKeys are the boolean risk indicators copied verbatim from answers
// into risk.*.
var riskKeys = []string{
	"suicidal_intent_now",
	"suicide_plan",
	"means_access",
	"recent_attempt",
	"previous_attempt",
	"self_harm_current",
	"psychosis_symptoms",
	"severe_self_neglect",
	"violence_risk",
}

// acuteIndicatorKeys feed risk.any_red_amber_flag: a single true among them
// marks the case as carrying at least one acute indicator.
var acuteIndicatorKeys = []string{
	"suicidal_intent_now",
	"suicide_plan",
	"means_access",
	"recent_attempt",
	"self_harm_current",
	"psychosis_symptoms",
	"severe_self_neglect",
	"violence_risk",
}

// suicideRiskFactorKeys feed risk.suicide_risk_factors_count.
var suicideRiskFactorKeys = []string{
	"suicide_plan",
	"means_access",
	"recent_attempt",
	"previous_attempt",
	"self_harm_current",
}

// presentationKeys are copied verbatim from answers into presentation.*.
var presentationKeys = []string{
	"primary_concern",
	"symptom_duration_weeks",
	"functional_impairment",
	"sleep_disturbance",
	"previous_treatment",
}

// preferenceKeys are copied verbatim from answers into preferences.*.
var preferenceKeys = []string{
	"contact_method",
	"appointment_time",
	"therapy_mode",
	"language",
}

// Build merges raw answers and computed scores into a fresh fact map.
// The result must not be mutated after this call.
func Build(answers map[string]any, scores []domain.ScoreResult) domain.FactMap {
	facts := make(domain.FactMap)

	buildRiskFacts(facts, answers)
	buildScoreFacts(facts, scores)
	buildPassthroughFacts(facts, answers, "presentation", presentationKeys)
	buildPassthroughFacts(facts, answers, "preferences", preferenceKeys)

	return facts
}

func buildRiskFacts(facts domain.FactMap, answers map[string]any) {
	for _, key := range riskKeys {
		facts.Set("risk."+key, boolAnswer(answers, key))
	}

	anyAcute := false
	for _, key := range acuteIndicatorKeys {
		if boolAnswer(answers, key) {
			anyAcute = true
			break
		}
	}
	facts.Set("risk.any_red_amber_flag", anyAcute)

	count := 0
	for _, key := range suicideRiskFactorKeys {
		if boolAnswer(answers, key) {
			count++
		}
	}
	facts.Set("risk.suicide_risk_factors_count", count)
}

func buildScoreFacts(facts domain.FactMap, scores []domain.ScoreResult) {
	for _, score := range scores {
		ns := "scores." + strings.ToLower(score.Instrument.String())
		facts.Set(ns+".total", score.TotalScore)
		facts.Set(ns+".band", score.SeverityBand.String())

		switch score.Instrument {
		case domain.InstrumentPHQ9:
			facts.Set(ns+".item9_positive", score.Item9Positive)
		case domain.InstrumentAUDITC:
			facts.Set(ns+".above_male_threshold", score.AboveMaleThreshold)
			facts.Set(ns+".above_female_threshold", score.AboveFemaleThreshold)
		}
	}
}

func buildPassthroughFacts(facts domain.FactMap, answers map[string]any, namespace string, keys []string) {
	for _, key := range keys {
		if value, ok := answers[key]; ok {
			facts.Set(namespace+"."+key, value)
		}
	}
}

// boolAnswer coerces an answer to a boolean; absent or uncoercible values
// are false.
func boolAnswer(answers map[string]any, key string) bool {
	raw, ok := answers[key]
	if !ok {
		return false
	}
	value, err := cast.ToBoolE(raw)
	if err != nil {
		return false
	}
	return value
}
