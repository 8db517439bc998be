package scoring

import "github.com/rkimidis/acucare-pathways/internal/domain"

// AUDIT-C: three items scored 0-4, total 0-12.
// Positive-screen thresholds per Bush et al. (1998): >=4 for men, >=3 for
// women. Both sex-specific flags are surfaced so the rules layer can pick
// the applicable one.
var auditCItems = []string{"q1", "q2", "q3"}

const (
	auditCMaxPerItem = 4
	auditCMaxScore   = 12

	auditCMaleThreshold   = 4
	auditCFemaleThreshold = 3
)

// auditCLabels maps the standard AUDIT-C response options to scores. Items
// share a table because option wording overlaps across the three questions.
var auditCLabels = map[string]int{
	// q1: how often do you have a drink containing alcohol?
	"never":                  0,
	"monthly or less":        1,
	"2-4 times a month":      2,
	"2-3 times a week":       3,
	"4 or more times a week": 4,

	// q2: how many drinks on a typical day?
	"1 or 2":     0,
	"3 or 4":     1,
	"5 or 6":     2,
	"7 to 9":     3,
	"10 or more": 4,

	// q3: how often six or more drinks on one occasion?
	"less than monthly":     1,
	"monthly":               2,
	"weekly":                3,
	"daily or almost daily": 4,
}

// ScoreAUDITC scores an AUDIT-C alcohol screen from item answers keyed q1-q3.
func (e *Engine) ScoreAUDITC(answers map[string]any) domain.ScoreResult {
	itemScores, total := scoreItems(answers, auditCItems, auditCMaxPerItem, auditCLabels)

	return domain.ScoreResult{
		Instrument:           domain.InstrumentAUDITC,
		TotalScore:           total,
		MaxScore:             auditCMaxScore,
		SeverityBand:         auditCBand(total),
		ItemScores:           itemScores,
		AboveMaleThreshold:   total >= auditCMaleThreshold,
		AboveFemaleThreshold: total >= auditCFemaleThreshold,
	}
}

func auditCBand(total int) domain.SeverityBand {
	switch {
	case total <= 2:
		return domain.BandLowRisk
	case total <= 7:
		return domain.BandIncreasedRisk
	default:
		return domain.BandHighRisk
	}
}
