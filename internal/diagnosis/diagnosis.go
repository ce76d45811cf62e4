package diagnosis

import "github.com/capilize/capilize/internal/quiz"

// Derive maps the collected answers to a diagnosis using DefaultRules.
//
// Oil scalp and chemical frequency are collected by the funnel but are not
// consulted by any rule.
func Derive(a quiz.Answers) Diagnosis {
	return DeriveWith(DefaultRules(), a)
}

// DeriveWith runs a custom rule list. When no rule matches, the maintenance
// diagnosis is returned.
func DeriveWith(rules []Rule, a quiz.Answers) Diagnosis {
	kind, name := RunRules(rules, a)
	if kind == "" {
		kind, name = KindMaintenance, "none"
	}
	d := For(kind)
	d.RuleName = name
	return d
}
