package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

func TestScoreAUDITC_ThresholdRoundTrip(t *testing.T) {
	engine := testEngine()

	result := engine.ScoreAUDITC(map[string]any{"q1": 2, "q2": 2, "q3": 1})

	assert.Equal(t, domain.InstrumentAUDITC, result.Instrument)
	assert.Equal(t, 5, result.TotalScore)
	assert.Equal(t, 12, result.MaxScore)
	assert.True(t, result.AboveMaleThreshold)
	assert.True(t, result.AboveFemaleThreshold)
	assert.Equal(t, domain.BandIncreasedRisk, result.SeverityBand)
}

func TestScoreAUDITC_SexSpecificThresholds(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name        string
		answers     map[string]any
		total       int
		aboveMale   bool
		aboveFemale bool
	}{
		{"zero", map[string]any{"q1": 0, "q2": 0, "q3": 0}, 0, false, false},
		{"below both", map[string]any{"q1": 1, "q2": 1, "q3": 0}, 2, false, false},
		{"female threshold only", map[string]any{"q1": 2, "q2": 1, "q3": 0}, 3, false, true},
		{"both thresholds", map[string]any{"q1": 2, "q2": 2, "q3": 0}, 4, true, true},
		{"maximum", map[string]any{"q1": 4, "q2": 4, "q3": 4}, 12, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.ScoreAUDITC(tt.answers)
			assert.Equal(t, tt.total, result.TotalScore)
			assert.Equal(t, tt.aboveMale, result.AboveMaleThreshold)
			assert.Equal(t, tt.aboveFemale, result.AboveFemaleThreshold)
		})
	}
}

func TestScoreAUDITC_Bands(t *testing.T) {
	tests := []struct {
		total int
		band  domain.SeverityBand
	}{
		{0, domain.BandLowRisk},
		{2, domain.BandLowRisk},
		{3, domain.BandIncreasedRisk},
		{7, domain.BandIncreasedRisk},
		{8, domain.BandHighRisk},
		{12, domain.BandHighRisk},
	}

	for _, tt := range tests {
		if got := auditCBand(tt.total); got != tt.band {
			t.Errorf("auditCBand(%d) = %s, want %s", tt.total, got, tt.band)
		}
	}
}

func TestScoreAUDITC_Labels(t *testing.T) {
	engine := testEngine()

	result := engine.ScoreAUDITC(map[string]any{
		"q1": "2-3 times a week",
		"q2": "5 or 6",
		"q3": "weekly",
	})

	assert.Equal(t, 3, result.ItemScores["q1"])
	assert.Equal(t, 2, result.ItemScores["q2"])
	assert.Equal(t, 3, result.ItemScores["q3"])
	assert.Equal(t, 8, result.TotalScore)
	assert.Equal(t, domain.BandHighRisk, result.SeverityBand)
}
