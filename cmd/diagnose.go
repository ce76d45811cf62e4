package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/capilize/capilize/internal/diagnosis"
	"github.com/capilize/capilize/internal/quiz"
	"github.com/spf13/cobra"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Print the diagnosis for a set of answers (no TUI, nothing sent)",
	Example: `  capilize diagnose --strand dry-damaged --difficulty dryness
  capilize diagnose --oil-scalp normal --chemical rare --strand healthy --json`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().String("oil-scalp", "", "Scalp oiliness: "+joinValues(quiz.AllOilScalp))
	diagnoseCmd.Flags().String("chemical", "", "Chemical treatment frequency: "+joinValues(quiz.AllChemicalFrequency))
	diagnoseCmd.Flags().String("strand", "", "Strand condition: "+joinValues(quiz.AllStrandCondition))
	diagnoseCmd.Flags().StringSlice("difficulty", nil, "Difficulty, repeatable: "+joinValues(quiz.AllDifficulties))
	diagnoseCmd.Flags().Bool("json", false, "Print the diagnosis as JSON")
}

type diagnosisOutput struct {
	Kind           diagnosis.Kind `json:"kind"`
	Rule           string         `json:"rule"`
	Headline       string         `json:"headline"`
	Recommendation string         `json:"recommendation"`
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	oil, _ := cmd.Flags().GetString("oil-scalp")
	chemical, _ := cmd.Flags().GetString("chemical")
	strand, _ := cmd.Flags().GetString("strand")
	difficulties, _ := cmd.Flags().GetStringSlice("difficulty")
	asJSON, _ := cmd.Flags().GetBool("json")

	answers, err := answersFromFlags([quiz.NumCoreQuestions]string{oil, chemical, strand}, difficulties)
	if err != nil {
		return err
	}
	d := diagnosis.Derive(answers)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnosisOutput{
			Kind:           d.Kind,
			Rule:           d.RuleName,
			Headline:       d.Headline,
			Recommendation: d.Recommendation,
		})
	}

	fmt.Fprintf(out, "%s\n\n%s\n\n(rule: %s)\n", d.Headline, d.Recommendation, d.RuleName)
	return nil
}

// answersFromFlags builds Answers from raw flag values. Empty core values
// stay unset and repeated difficulties are selected once.
func answersFromFlags(core [quiz.NumCoreQuestions]string, difficulties []string) (quiz.Answers, error) {
	var a quiz.Answers
	for i, v := range core {
		if v == "" {
			continue
		}
		if err := a.Set(i, strings.TrimSpace(v)); err != nil {
			return quiz.Answers{}, err
		}
	}
	for _, raw := range difficulties {
		d, err := quiz.ParseDifficulty(strings.TrimSpace(raw))
		if err != nil {
			return quiz.Answers{}, err
		}
		if !a.Has(d) {
			a.Toggle(d)
		}
	}
	return a, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
