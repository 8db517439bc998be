// Package domain contains the core business entities and types for the
// AcuCare Pathways triage decision core: urgency tiers, care pathways,
// clinical instrument scores, rule-set structures, and disposition records.
//
// All classifications that flow through the engine are closed enums. Raw
// strings from rule-set artifacts and questionnaire answers are mapped to
// these enums at the boundary and never carried further.
package domain

// Tier represents the clinical urgency classification of a triage case,
// ordered by urgency: RED (immediate) > AMBER (urgent) > GREEN (routine)
// > BLUE (low-intensity/self-help).
type Tier string

const (
	TierRed   Tier = "RED"
	TierAmber Tier = "AMBER"
	TierGreen Tier = "GREEN"
	TierBlue  Tier = "BLUE"
)

// IsValid validates that the tier is one of the closed set. Critical for
// medical software: an unknown tier must never enter clinical decision-making.
func (t Tier) IsValid() bool {
	switch t {
	case TierRed, TierAmber, TierGreen, TierBlue:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// Urgency returns a numeric urgency rank for the tier, higher is more urgent.
// Unknown tiers rank highest so that invalid data fails safe.
func (t Tier) Urgency() int {
	switch t {
	case TierRed:
		return 4
	case TierAmber:
		return 3
	case TierGreen:
		return 2
	case TierBlue:
		return 1
	default:
		return 5
	}
}

// RequiresClinicianReview reports whether the tier mandates clinician review.
// RED and AMBER always do. This is the engine-enforced safeguard: rule
// authors cannot disable it.
func (t Tier) RequiresClinicianReview() bool {
	switch t {
	case TierRed, TierAmber:
		return true
	default:
		return false
	}
}

// AllowsSelfBook reports whether the tier permits patient self-booking.
// RED and AMBER never do, regardless of what any rule or override requests.
func (t Tier) AllowsSelfBook() bool {
	return !t.RequiresClinicianReview()
}

// Pathway represents the care route a triage case is directed to.
type Pathway string

const (
	PathwayCrisisEscalation     Pathway = "CRISIS_ESCALATION"
	PathwayPsychiatryAssessment Pathway = "PSYCHIATRY_ASSESSMENT"
	PathwayTherapyAssessment    Pathway = "THERAPY_ASSESSMENT"
	PathwayGPLiaison            Pathway = "GP_LIAISON"
	PathwaySelfHelp             Pathway = "SELF_HELP_RESOURCES"
)

// IsValid validates the pathway against the closed set of care routes.
func (p Pathway) IsValid() bool {
	switch p {
	case PathwayCrisisEscalation, PathwayPsychiatryAssessment,
		PathwayTherapyAssessment, PathwayGPLiaison, PathwaySelfHelp:
		return true
	default:
		return false
	}
}

// String returns the string representation of the pathway.
func (p Pathway) String() string {
	return string(p)
}

// EvaluationMode controls how the rules engine selects outcomes.
type EvaluationMode string

const (
	// FirstMatchWins stops at the highest-priority matching rule.
	FirstMatchWins EvaluationMode = "first_match_wins"
	// AllMatches evaluates every rule, taking tier and pathway from the
	// highest-priority match while aggregating flags and explanations
	// from all matches.
	AllMatches EvaluationMode = "all_matches"
)

// IsValid validates the evaluation mode.
func (m EvaluationMode) IsValid() bool {
	switch m {
	case FirstMatchWins, AllMatches:
		return true
	default:
		return false
	}
}

// String returns the string representation of the evaluation mode.
func (m EvaluationMode) String() string {
	return string(m)
}

// Operator represents a comparison operator in a rule condition leaf.
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpIn             Operator = "in"
	OpContains       Operator = "contains"
)

// IsValid validates the operator. Unsupported operators are rejected at
// rule-set load time so that evaluation itself can never fail.
func (o Operator) IsValid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterOrEqual,
		OpLess, OpLessOrEqual, OpIn, OpContains:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// Instrument identifies a clinical screening instrument.
type Instrument string

const (
	InstrumentPHQ9   Instrument = "PHQ9"
	InstrumentGAD7   Instrument = "GAD7"
	InstrumentAUDITC Instrument = "AUDIT_C"
)

// IsValid validates the instrument identifier.
func (i Instrument) IsValid() bool {
	switch i {
	case InstrumentPHQ9, InstrumentGAD7, InstrumentAUDITC:
		return true
	default:
		return false
	}
}

// String returns the string representation of the instrument.
func (i Instrument) String() string {
	return string(i)
}

// SeverityBand is the classified severity of an instrument score.
// Bands vary per instrument; each scorer only produces bands from its own
// published thresholds.
type SeverityBand string

const (
	// PHQ-9 and GAD-7 shared bands
	BandMinimal  SeverityBand = "MINIMAL"
	BandMild     SeverityBand = "MILD"
	BandModerate SeverityBand = "MODERATE"
	BandSevere   SeverityBand = "SEVERE"

	// PHQ-9 only
	BandModeratelySevere SeverityBand = "MODERATELY_SEVERE"

	// AUDIT-C bands
	BandLowRisk       SeverityBand = "LOW_RISK"
	BandIncreasedRisk SeverityBand = "INCREASED_RISK"
	BandHighRisk      SeverityBand = "HIGH_RISK"
)

// IsValid validates the severity band against the closed set.
func (b SeverityBand) IsValid() bool {
	switch b {
	case BandMinimal, BandMild, BandModerate, BandSevere,
		BandModeratelySevere, BandLowRisk, BandIncreasedRisk, BandHighRisk:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity band.
func (b SeverityBand) String() string {
	return string(b)
}

// FlagSeverity grades a clinical flag raised by a matched rule.
type FlagSeverity string

const (
	FlagInfo     FlagSeverity = "INFO"
	FlagWarning  FlagSeverity = "WARNING"
	FlagCritical FlagSeverity = "CRITICAL"
)

// IsValid validates the flag severity.
func (s FlagSeverity) IsValid() bool {
	switch s {
	case FlagInfo, FlagWarning, FlagCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flag severity.
func (s FlagSeverity) String() string {
	return string(s)
}
