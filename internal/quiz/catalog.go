package quiz

// Option is one selectable answer with its display label.
type Option struct {
	Value string
	Label string
}

// Question is a single-choice question shown during the core questionnaire.
type Question struct {
	ID      string
	Prompt  string
	Options []Option
}

// CoreQuestions are asked in order before the difficulties selection.
var CoreQuestions = [NumCoreQuestions]Question{
	{
		ID:     "oilScalp",
		Prompt: "How would you describe the oiliness of your scalp?",
		Options: []Option{
			{Value: string(OilVeryOily), Label: "Very oily (I wash it daily)"},
			{Value: string(OilOily), Label: "Oily (I wash it every 2 days)"},
			{Value: string(OilNormal), Label: "Normal (I wash it 2-3 times a week)"},
			{Value: string(OilDry), Label: "Dry (it rarely gets oily)"},
		},
	},
	{
		ID:     "chemicalFrequency",
		Prompt: "How often do you use chemical treatments or hair dye?",
		Options: []Option{
			{Value: string(ChemicalFrequent), Label: "Frequently (every 1-2 months)"},
			{Value: string(ChemicalOccasional), Label: "Occasionally (every 3-6 months)"},
			{Value: string(ChemicalRare), Label: "Rarely (once a year or less)"},
			{Value: string(ChemicalNever), Label: "Never"},
		},
	},
	{
		ID:     "strandCondition",
		Prompt: "How are your strands right now?",
		Options: []Option{
			{Value: string(StrandHealthy), Label: "Healthy and shiny"},
			{Value: string(StrandDryDamaged), Label: "Dry and dull"},
			{Value: string(StrandBrittle), Label: "Brittle and fragile"},
			{Value: string(StrandMixedRootsTips), Label: "Oily roots and dry tips"},
		},
	},
}

// DifficultyPrompt is shown above the difficulties checklist.
const DifficultyPrompt = "Which difficulties do you face with your hair?"

// DifficultyOptions lists every difficulty with its label, in display order.
var DifficultyOptions = []Option{
	{Value: string(DifficultyFrizz), Label: "Frizz and excess volume"},
	{Value: string(DifficultyHairLoss), Label: "Hair loss"},
	{Value: string(DifficultySplitEnds), Label: "Split ends"},
	{Value: string(DifficultyDryness), Label: "Dryness"},
	{Value: string(DifficultyOiliness), Label: "Excess oiliness"},
	{Value: string(DifficultyDandruff), Label: "Dandruff or itching"},
}

// Label returns the display label for value within opts, or value itself
// when it is not listed.
func Label(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// DifficultyLabel returns the display label for d.
func DifficultyLabel(d Difficulty) string {
	return Label(DifficultyOptions, string(d))
}
