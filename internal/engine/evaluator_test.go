package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

func testFacts() domain.FactMap {
	facts := make(domain.FactMap)
	facts.Set("risk.suicidal_intent_now", true)
	facts.Set("risk.suicide_plan", false)
	facts.Set("scores.phq9.total", 17)
	facts.Set("scores.phq9.band", "MODERATELY_SEVERE")
	facts.Set("presentation.primary_concern", "low mood and worry")
	facts.Set("preferences.contact_method", "phone")
	return facts
}

func TestEvaluateCondition_Leaves(t *testing.T) {
	facts := testFacts()

	tests := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{"eq bool match", domain.Leaf("risk.suicidal_intent_now", domain.OpEqual, true), true},
		{"eq bool mismatch", domain.Leaf("risk.suicide_plan", domain.OpEqual, true), false},
		{"neq", domain.Leaf("scores.phq9.band", domain.OpNotEqual, "SEVERE"), true},
		{"gt true", domain.Leaf("scores.phq9.total", domain.OpGreater, 10), true},
		{"gt boundary", domain.Leaf("scores.phq9.total", domain.OpGreater, 17), false},
		{"gte boundary", domain.Leaf("scores.phq9.total", domain.OpGreaterOrEqual, 17), true},
		{"lt false", domain.Leaf("scores.phq9.total", domain.OpLess, 17), false},
		{"lte boundary", domain.Leaf("scores.phq9.total", domain.OpLessOrEqual, 17), true},
		{"in match", domain.Leaf("scores.phq9.band", domain.OpIn, []any{"SEVERE", "MODERATELY_SEVERE"}), true},
		{"in miss", domain.Leaf("scores.phq9.band", domain.OpIn, []any{"MINIMAL", "MILD"}), false},
		{"in non-sequence", domain.Leaf("scores.phq9.band", domain.OpIn, "MODERATELY_SEVERE"), false},
		{"contains substring", domain.Leaf("presentation.primary_concern", domain.OpContains, "worry"), true},
		{"contains miss", domain.Leaf("presentation.primary_concern", domain.OpContains, "panic"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, facts))
		})
	}
}

func TestEvaluateCondition_MissingFacts(t *testing.T) {
	facts := testFacts()

	tests := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{"missing eq null matches", domain.Leaf("scores.gad7.total", domain.OpEqual, nil), true},
		{"missing eq value", domain.Leaf("scores.gad7.total", domain.OpEqual, 5), false},
		{"missing neq null", domain.Leaf("scores.gad7.total", domain.OpNotEqual, nil), false},
		{"missing gt", domain.Leaf("scores.gad7.total", domain.OpGreater, 0), false},
		{"missing in", domain.Leaf("scores.gad7.band", domain.OpIn, []any{"SEVERE"}), false},
		{"present neq null", domain.Leaf("scores.phq9.total", domain.OpNotEqual, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, facts))
		})
	}
}

func TestEvaluateCondition_TypeMismatches(t *testing.T) {
	facts := testFacts()

	tests := []struct {
		name string
		cond domain.Condition
	}{
		{"string ordered against number", domain.Leaf("scores.phq9.band", domain.OpGreater, 10)},
		{"number ordered against string", domain.Leaf("scores.phq9.total", domain.OpGreaterOrEqual, "ten")},
		{"bool ordered", domain.Leaf("risk.suicidal_intent_now", domain.OpLess, 1)},
		{"contains on bool", domain.Leaf("risk.suicidal_intent_now", domain.OpContains, "tru")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, EvaluateCondition(tt.cond, facts),
				"type mismatches must evaluate to false, never panic")
		})
	}
}

func TestEvaluateCondition_NumericCrossTypes(t *testing.T) {
	facts := make(domain.FactMap)
	facts.Set("scores.phq9.total", 17)

	assert.True(t, EvaluateCondition(domain.Leaf("scores.phq9.total", domain.OpEqual, 17.0), facts))
	assert.True(t, EvaluateCondition(domain.Leaf("scores.phq9.total", domain.OpGreater, 16.5), facts))
	assert.True(t, EvaluateCondition(domain.Leaf("scores.phq9.total", domain.OpEqual, int64(17)), facts))
}

func TestEvaluateCondition_Composites(t *testing.T) {
	facts := testFacts()

	tests := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{
			"all true",
			domain.All(
				domain.Leaf("risk.suicidal_intent_now", domain.OpEqual, true),
				domain.Leaf("scores.phq9.total", domain.OpGreaterOrEqual, 15),
			),
			true,
		},
		{
			"all with one false",
			domain.All(
				domain.Leaf("risk.suicidal_intent_now", domain.OpEqual, true),
				domain.Leaf("risk.suicide_plan", domain.OpEqual, true),
			),
			false,
		},
		{
			"any with one true",
			domain.Any(
				domain.Leaf("risk.suicide_plan", domain.OpEqual, true),
				domain.Leaf("scores.phq9.total", domain.OpGreater, 10),
			),
			true,
		},
		{
			"any all false",
			domain.Any(
				domain.Leaf("risk.suicide_plan", domain.OpEqual, true),
				domain.Leaf("scores.phq9.total", domain.OpGreater, 100),
			),
			false,
		},
		{"empty all is vacuously true", domain.All(), true},
		{"empty any is false", domain.Any(), false},
		{
			"nested",
			domain.All(
				domain.Leaf("scores.phq9.total", domain.OpGreaterOrEqual, 10),
				domain.Any(
					domain.Leaf("risk.suicide_plan", domain.OpEqual, true),
					domain.Leaf("preferences.contact_method", domain.OpEqual, "phone"),
				),
			),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, facts))
		})
	}
}
