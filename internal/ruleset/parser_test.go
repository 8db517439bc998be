package ruleset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

const validArtifact = `
id: triage_test
version: "1.0"
ruleset:
  evaluation:
    mode: first_match_wins
    default:
      tier: GREEN
      pathway: THERAPY_ASSESSMENT
      booking:
        self_book_allowed: true
rules:
  - id: RED_SUICIDE_INTENT_PLAN_MEANS
    priority: 10
    when:
      all:
        - {fact: risk.suicidal_intent_now, op: "==", value: true}
        - {fact: risk.suicide_plan, op: "==", value: true}
        - {fact: risk.means_access, op: "==", value: true}
    then:
      tier: RED
      pathway: CRISIS_ESCALATION
      booking:
        self_book_allowed: false
      flags:
        - {type: SUICIDE_RISK, severity: CRITICAL}
      explain: "Active suicidal intent with plan and access to means."
  - id: GREEN_MODERATE
    priority: 50
    when:
      any:
        - {fact: scores.phq9.total, op: ">=", value: 10}
        - {fact: scores.gad7.total, op: ">=", value: 10}
    then:
      tier: GREEN
      pathway: THERAPY_ASSESSMENT
      booking:
        self_book_allowed: true
      explain: "Moderate symptom burden."
`

func TestParse_ValidArtifact(t *testing.T) {
	rs, err := Parse([]byte(validArtifact))
	require.NoError(t, err)
	require.NotNil(t, rs)

	assert.Equal(t, "triage_test", rs.ID)
	assert.Equal(t, "1.0", rs.Version)
	assert.Equal(t, domain.FirstMatchWins, rs.Mode)
	assert.Equal(t, domain.TierGreen, rs.Default.Tier)
	assert.True(t, rs.Default.SelfBookAllowed)
	require.Len(t, rs.Rules, 2)

	red := rs.Rules[0]
	assert.Equal(t, "RED_SUICIDE_INTENT_PLAN_MEANS", red.ID)
	assert.Equal(t, 10, red.Priority)
	assert.Equal(t, domain.CondAll, red.When.Kind)
	require.Len(t, red.When.Children, 3)
	assert.Equal(t, domain.CondLeaf, red.When.Children[0].Kind)
	assert.Equal(t, "risk.suicidal_intent_now", red.When.Children[0].Fact)
	assert.Equal(t, domain.OpEqual, red.When.Children[0].Op)
	assert.Equal(t, domain.TierRed, red.Then.Tier)
	assert.Equal(t, domain.PathwayCrisisEscalation, red.Then.Pathway)
	require.Len(t, red.Then.Flags, 1)
	assert.Equal(t, domain.FlagCritical, red.Then.Flags[0].Severity)

	green := rs.Rules[1]
	assert.Equal(t, domain.CondAny, green.When.Kind)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
	}{
		{
			name:     "unparseable yaml",
			artifact: "id: [unclosed",
		},
		{
			name: "unsupported operator",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: GREEN, pathway: THERAPY_ASSESSMENT}
rules:
  - id: R1
    priority: 10
    when: {fact: risk.suicide_plan, op: "=~", value: true}
    then: {tier: RED, pathway: CRISIS_ESCALATION}
`,
		},
		{
			name: "unknown tier",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: ORANGE, pathway: THERAPY_ASSESSMENT}
rules: []
`,
		},
		{
			name: "unknown pathway",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: GREEN, pathway: INPATIENT_WARD}
rules: []
`,
		},
		{
			name: "unknown evaluation mode",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: best_match
    default: {tier: GREEN, pathway: THERAPY_ASSESSMENT}
rules: []
`,
		},
		{
			name: "duplicate rule ids",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: GREEN, pathway: THERAPY_ASSESSMENT}
rules:
  - id: R1
    priority: 10
    when: {fact: risk.suicide_plan, op: "==", value: true}
    then: {tier: RED, pathway: CRISIS_ESCALATION}
  - id: R1
    priority: 20
    when: {fact: risk.means_access, op: "==", value: true}
    then: {tier: AMBER, pathway: PSYCHIATRY_ASSESSMENT}
`,
		},
		{
			name: "condition mixing all and leaf",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: GREEN, pathway: THERAPY_ASSESSMENT}
rules:
  - id: R1
    priority: 10
    when:
      fact: risk.suicide_plan
      op: "=="
      value: true
      all:
        - {fact: risk.means_access, op: "==", value: true}
    then: {tier: RED, pathway: CRISIS_ESCALATION}
`,
		},
		{
			name: "invalid flag severity",
			artifact: `
id: t
version: "1"
ruleset:
  evaluation:
    mode: first_match_wins
    default: {tier: GREEN, pathway: THERAPY_ASSESSMENT}
rules:
  - id: R1
    priority: 10
    when: {fact: risk.suicide_plan, op: "==", value: true}
    then:
      tier: RED
      pathway: CRISIS_ESCALATION
      flags:
        - {type: SUICIDE_RISK, severity: EXTREME}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Parse([]byte(tt.artifact))
			require.Error(t, err)
			assert.Nil(t, rs)
			assert.True(t, errors.Is(err, domain.ErrMalformedRuleSet),
				"expected ErrMalformedRuleSet, got %v", err)
		})
	}
}
