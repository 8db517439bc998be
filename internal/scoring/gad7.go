package scoring

import "github.com/rkimidis/acucare-pathways/internal/domain"

// GAD-7: seven items scored 0-3, total 0-21.
// Severity thresholds per Spitzer et al. (2006).
var gad7Items = []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"}

const (
	gad7MaxPerItem = 3
	gad7MaxScore   = 21
)

// ScoreGAD7 scores a GAD-7 anxiety screen from item answers keyed q1-q7.
func (e *Engine) ScoreGAD7(answers map[string]any) domain.ScoreResult {
	itemScores, total := scoreItems(answers, gad7Items, gad7MaxPerItem, phq9Labels)

	return domain.ScoreResult{
		Instrument:   domain.InstrumentGAD7,
		TotalScore:   total,
		MaxScore:     gad7MaxScore,
		SeverityBand: gad7Band(total),
		ItemScores:   itemScores,
	}
}

func gad7Band(total int) domain.SeverityBand {
	switch {
	case total <= 4:
		return domain.BandMinimal
	case total <= 9:
		return domain.BandMild
	case total <= 14:
		return domain.BandModerate
	default:
		return domain.BandSevere
	}
}
