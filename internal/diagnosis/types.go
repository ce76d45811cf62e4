package diagnosis

// Kind identifies which canned diagnosis was selected.
type Kind string

const (
	KindDehydration Kind = "dehydration"
	KindBreakage    Kind = "breakage"
	KindFrizz       Kind = "frizz"
	KindMaintenance Kind = "maintenance"
)

// Diagnosis is the headline/recommendation pair shown on the result step.
// It is derived from the answers on demand and never stored on its own.
type Diagnosis struct {
	Kind           Kind
	Headline       string
	Recommendation string
	RuleName       string // Which rule selected this diagnosis
}

var canned = map[Kind]Diagnosis{
	KindDehydration: {
		Kind:           KindDehydration,
		Headline:       "Your hair shows signs of dryness and loss of shine.",
		Recommendation: "Focus your routine on deep hydration and nourishment.",
	},
	KindBreakage: {
		Kind:           KindBreakage,
		Headline:       "Your strands are weakened and need reconstruction.",
		Recommendation: "We recommend protein and keratin treatments to strengthen the hair fiber.",
	},
	KindFrizz: {
		Kind:           KindFrizz,
		Headline:       "Your hair shows frizz and lack of alignment.",
		Recommendation: "We suggest alignment treatments and cuticle sealing to control volume.",
	},
	KindMaintenance: {
		Kind:           KindMaintenance,
		Headline:       "Your hair is in good shape, and it can get even better!",
		Recommendation: "We recommend a maintenance routine to keep your strands healthy and shiny.",
	},
}

// For returns the canned diagnosis for kind.
func For(kind Kind) Diagnosis {
	return canned[kind]
}
