package quiz

import "fmt"

// NumCoreQuestions is the number of single-choice questions asked before
// the difficulties selection.
const NumCoreQuestions = 3

// Answers holds everything a visitor has answered so far. The zero value is
// an empty questionnaire: every single-choice field is unset and no
// difficulty is selected.
type Answers struct {
	OilScalp          OilScalp
	ChemicalFrequency ChemicalFrequency
	StrandCondition   StrandCondition

	// difficulties keeps selection order. It is never mutated in place so
	// that copies of Answers never observe each other's toggles.
	difficulties []Difficulty
}

// Set stores value as the answer to core question i (0..2).
func (a *Answers) Set(i int, value string) error {
	switch i {
	case 0:
		v, err := ParseOilScalp(value)
		if err != nil {
			return err
		}
		a.OilScalp = v
	case 1:
		v, err := ParseChemicalFrequency(value)
		if err != nil {
			return err
		}
		a.ChemicalFrequency = v
	case 2:
		v, err := ParseStrandCondition(value)
		if err != nil {
			return err
		}
		a.StrandCondition = v
	default:
		return fmt.Errorf("core question %d out of range", i)
	}
	return nil
}

// Value returns the stored answer to core question i, or "" when unset.
func (a Answers) Value(i int) string {
	switch i {
	case 0:
		return string(a.OilScalp)
	case 1:
		return string(a.ChemicalFrequency)
	case 2:
		return string(a.StrandCondition)
	}
	return ""
}

// IsAnswered reports whether core question i has a value.
func (a Answers) IsAnswered(i int) bool {
	return a.Value(i) != ""
}

// Toggle adds d to the difficulties when absent and removes it when present.
// Toggling the same value twice restores the previous set.
func (a *Answers) Toggle(d Difficulty) {
	next := make([]Difficulty, 0, len(a.difficulties)+1)
	found := false
	for _, x := range a.difficulties {
		if x == d {
			found = true
			continue
		}
		next = append(next, x)
	}
	if !found {
		next = append(next, d)
	}
	if len(next) == 0 {
		next = nil
	}
	a.difficulties = next
}

// Has reports whether d is selected.
func (a Answers) Has(d Difficulty) bool {
	return contains(a.difficulties, d)
}

// Difficulties returns the selected difficulties in selection order.
func (a Answers) Difficulties() []Difficulty {
	if len(a.difficulties) == 0 {
		return nil
	}
	out := make([]Difficulty, len(a.difficulties))
	copy(out, a.difficulties)
	return out
}

// DifficultyCount returns how many difficulties are selected.
func (a Answers) DifficultyCount() int {
	return len(a.difficulties)
}

// WithDifficulties returns a copy of a whose difficulty set is ds, ignoring
// duplicates.
func (a Answers) WithDifficulties(ds ...Difficulty) Answers {
	a.difficulties = nil
	for _, d := range ds {
		if !a.Has(d) {
			a.Toggle(d)
		}
	}
	return a
}

// Equal reports whether two answer sets hold the same values. Difficulty
// order is not significant.
func (a Answers) Equal(b Answers) bool {
	if a.OilScalp != b.OilScalp || a.ChemicalFrequency != b.ChemicalFrequency || a.StrandCondition != b.StrandCondition {
		return false
	}
	if len(a.difficulties) != len(b.difficulties) {
		return false
	}
	for _, d := range a.difficulties {
		if !b.Has(d) {
			return false
		}
	}
	return true
}
