package quiz

import "fmt"

// OilScalp describes how oily the visitor's scalp gets.
type OilScalp string

const (
	OilVeryOily OilScalp = "very-oily"
	OilOily     OilScalp = "oily"
	OilNormal   OilScalp = "normal"
	OilDry      OilScalp = "dry"
)

// ChemicalFrequency describes how often the visitor applies chemical treatments or dye.
type ChemicalFrequency string

const (
	ChemicalFrequent   ChemicalFrequency = "frequent"
	ChemicalOccasional ChemicalFrequency = "occasional"
	ChemicalRare       ChemicalFrequency = "rare"
	ChemicalNever      ChemicalFrequency = "never"
)

// StrandCondition describes the current state of the hair strands.
type StrandCondition string

const (
	StrandHealthy        StrandCondition = "healthy"
	StrandDryDamaged     StrandCondition = "dry-damaged"
	StrandBrittle        StrandCondition = "brittle"
	StrandMixedRootsTips StrandCondition = "mixed-roots-tips"
)

// Difficulty is one of the problems a visitor can flag.
type Difficulty string

const (
	DifficultyFrizz     Difficulty = "frizz"
	DifficultyHairLoss  Difficulty = "hair-loss"
	DifficultySplitEnds Difficulty = "split-ends"
	DifficultyDryness   Difficulty = "dryness"
	DifficultyOiliness  Difficulty = "oiliness"
	DifficultyDandruff  Difficulty = "dandruff"
)

// AllOilScalp lists the valid OilScalp values in display order.
var AllOilScalp = []OilScalp{OilVeryOily, OilOily, OilNormal, OilDry}

// AllChemicalFrequency lists the valid ChemicalFrequency values in display order.
var AllChemicalFrequency = []ChemicalFrequency{ChemicalFrequent, ChemicalOccasional, ChemicalRare, ChemicalNever}

// AllStrandCondition lists the valid StrandCondition values in display order.
var AllStrandCondition = []StrandCondition{StrandHealthy, StrandDryDamaged, StrandBrittle, StrandMixedRootsTips}

// AllDifficulties lists the valid Difficulty values in display order.
var AllDifficulties = []Difficulty{
	DifficultyFrizz,
	DifficultyHairLoss,
	DifficultySplitEnds,
	DifficultyDryness,
	DifficultyOiliness,
	DifficultyDandruff,
}

func (o OilScalp) Valid() bool          { return contains(AllOilScalp, o) }
func (c ChemicalFrequency) Valid() bool { return contains(AllChemicalFrequency, c) }
func (s StrandCondition) Valid() bool   { return contains(AllStrandCondition, s) }
func (d Difficulty) Valid() bool        { return contains(AllDifficulties, d) }

// ParseOilScalp converts a wire value into an OilScalp.
func ParseOilScalp(s string) (OilScalp, error) {
	v := OilScalp(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown oil scalp value %q", s)
	}
	return v, nil
}

// ParseChemicalFrequency converts a wire value into a ChemicalFrequency.
func ParseChemicalFrequency(s string) (ChemicalFrequency, error) {
	v := ChemicalFrequency(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown chemical frequency value %q", s)
	}
	return v, nil
}

// ParseStrandCondition converts a wire value into a StrandCondition.
func ParseStrandCondition(s string) (StrandCondition, error) {
	v := StrandCondition(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown strand condition value %q", s)
	}
	return v, nil
}

// ParseDifficulty converts a wire value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	v := Difficulty(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown difficulty value %q", s)
	}
	return v, nil
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
