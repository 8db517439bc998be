package domain

import (
	"testing"
)

func TestTierConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    Tier
		expected string
	}{
		{"Red", TierRed, "RED"},
		{"Amber", TierAmber, "AMBER"},
		{"Green", TierGreen, "GREEN"},
		{"Blue", TierBlue, "BLUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}

	if Tier("ORANGE").IsValid() {
		t.Error("Expected unknown tier to be invalid")
	}
}

func TestTierSafeguards(t *testing.T) {
	tests := []struct {
		tier           Tier
		reviewRequired bool
		selfBook       bool
	}{
		{TierRed, true, false},
		{TierAmber, true, false},
		{TierGreen, false, true},
		{TierBlue, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			if got := tt.tier.RequiresClinicianReview(); got != tt.reviewRequired {
				t.Errorf("RequiresClinicianReview() = %v, want %v", got, tt.reviewRequired)
			}
			if got := tt.tier.AllowsSelfBook(); got != tt.selfBook {
				t.Errorf("AllowsSelfBook() = %v, want %v", got, tt.selfBook)
			}
		})
	}
}

func TestTierUrgencyOrdering(t *testing.T) {
	if !(TierRed.Urgency() > TierAmber.Urgency() &&
		TierAmber.Urgency() > TierGreen.Urgency() &&
		TierGreen.Urgency() > TierBlue.Urgency()) {
		t.Error("Expected urgency ordering RED > AMBER > GREEN > BLUE")
	}
	if Tier("UNKNOWN").Urgency() <= TierRed.Urgency() {
		t.Error("Expected unknown tier to rank highest (fail safe)")
	}
}

func TestOperatorValidity(t *testing.T) {
	valid := []Operator{OpEqual, OpNotEqual, OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual, OpIn, OpContains}
	for _, op := range valid {
		if !op.IsValid() {
			t.Errorf("Expected operator %q to be valid", op)
		}
	}
	for _, op := range []Operator{"matches", "=~", "", "equals"} {
		if op.IsValid() {
			t.Errorf("Expected operator %q to be invalid", op)
		}
	}
}

func TestEvaluationModeValidity(t *testing.T) {
	if !FirstMatchWins.IsValid() || !AllMatches.IsValid() {
		t.Error("Expected both evaluation modes to be valid")
	}
	if EvaluationMode("best_match").IsValid() {
		t.Error("Expected unknown evaluation mode to be invalid")
	}
}

func TestSeverityBandValidity(t *testing.T) {
	valid := []SeverityBand{
		BandMinimal, BandMild, BandModerate, BandSevere,
		BandModeratelySevere, BandLowRisk, BandIncreasedRisk, BandHighRisk,
	}
	for _, band := range valid {
		if !band.IsValid() {
			t.Errorf("Expected band %q to be valid", band)
		}
	}
	if SeverityBand("EXTREME").IsValid() {
		t.Error("Expected unknown band to be invalid")
	}
}

func TestPathwayValidity(t *testing.T) {
	valid := []Pathway{
		PathwayCrisisEscalation, PathwayPsychiatryAssessment,
		PathwayTherapyAssessment, PathwayGPLiaison, PathwaySelfHelp,
	}
	for _, pathway := range valid {
		if !pathway.IsValid() {
			t.Errorf("Expected pathway %q to be valid", pathway)
		}
	}
	if Pathway("INPATIENT").IsValid() {
		t.Error("Expected unknown pathway to be invalid")
	}
}
