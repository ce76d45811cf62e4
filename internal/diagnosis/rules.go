package diagnosis

import "github.com/capilize/capilize/internal/quiz"

// Rule selects a diagnosis when its condition holds.
// Returns the diagnosis kind, or "" if the rule doesn't apply.
type Rule interface {
	Name() string
	Match(a quiz.Answers) Kind
}

// DefaultRules returns the rules in priority order. Dryness beats breakage,
// which beats frizz; the maintenance rule always matches and must stay last.
func DefaultRules() []Rule {
	return []Rule{
		&DehydrationRule{},
		&BreakageRule{},
		&FrizzRule{},
		&MaintenanceRule{},
	}
}

// RunRules executes rules in order and returns the first match along with
// the name of the rule that produced it. Returns ("", "") if nothing matched.
func RunRules(rules []Rule, a quiz.Answers) (Kind, string) {
	for _, r := range rules {
		if kind := r.Match(a); kind != "" {
			return kind, r.Name()
		}
	}
	return "", ""
}

// DehydrationRule matches dry, damaged strands or a reported dryness problem.
type DehydrationRule struct{}

func (r *DehydrationRule) Name() string { return "dehydration" }

func (r *DehydrationRule) Match(a quiz.Answers) Kind {
	if a.StrandCondition == quiz.StrandDryDamaged || a.Has(quiz.DifficultyDryness) {
		return KindDehydration
	}
	return ""
}

// BreakageRule matches brittle strands or split ends.
type BreakageRule struct{}

func (r *BreakageRule) Name() string { return "breakage" }

func (r *BreakageRule) Match(a quiz.Answers) Kind {
	if a.StrandCondition == quiz.StrandBrittle || a.Has(quiz.DifficultySplitEnds) {
		return KindBreakage
	}
	return ""
}

// FrizzRule matches a reported frizz problem.
type FrizzRule struct{}

func (r *FrizzRule) Name() string { return "frizz" }

func (r *FrizzRule) Match(a quiz.Answers) Kind {
	if a.Has(quiz.DifficultyFrizz) {
		return KindFrizz
	}
	return ""
}

// MaintenanceRule is the fallback.
type MaintenanceRule struct{}

func (r *MaintenanceRule) Name() string { return "maintenance" }

func (r *MaintenanceRule) Match(quiz.Answers) Kind { return KindMaintenance }
