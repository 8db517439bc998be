package scoring

import "github.com/rkimidis/acucare-pathways/internal/domain"

// PHQ-9: nine items scored 0-3, total 0-27.
// Severity thresholds per Kroenke, Spitzer & Williams (2001).
var phq9Items = []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9"}

const (
	phq9MaxPerItem = 3
	phq9MaxScore   = 27
)

// phq9Labels maps the standard PHQ-9/GAD-7 frequency responses to scores.
var phq9Labels = map[string]int{
	"not at all":              0,
	"several days":            1,
	"more than half the days": 2,
	"nearly every day":        3,
}

// ScorePHQ9 scores a PHQ-9 depression screen from item answers keyed q1-q9.
// Item 9 asks about thoughts of self-harm or being better off dead; any
// nonzero response sets Item9Positive regardless of the total score.
func (e *Engine) ScorePHQ9(answers map[string]any) domain.ScoreResult {
	itemScores, total := scoreItems(answers, phq9Items, phq9MaxPerItem, phq9Labels)

	return domain.ScoreResult{
		Instrument:    domain.InstrumentPHQ9,
		TotalScore:    total,
		MaxScore:      phq9MaxScore,
		SeverityBand:  phq9Band(total),
		ItemScores:    itemScores,
		Item9Positive: itemScores["q9"] > 0,
	}
}

func phq9Band(total int) domain.SeverityBand {
	switch {
	case total <= 4:
		return domain.BandMinimal
	case total <= 9:
		return domain.BandMild
	case total <= 14:
		return domain.BandModerate
	case total <= 19:
		return domain.BandModeratelySevere
	default:
		return domain.BandSevere
	}
}
