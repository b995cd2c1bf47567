package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab"
	"github.com/inferlab/inferlab/pkg/inferlab/sampledata"
	"github.com/inferlab/inferlab/pkg/inferlab/scorer"
)

var (
	flagSymptoms   []string
	flagConditions []string
)

// DiagnoseCmd runs the symptom-to-condition demo pipeline.
var DiagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Derive candidate conditions from symptoms and rank them",
	Long: `Forward-chain from the observed symptoms to the conditions the
rulebase can derive, then rank those conditions with the symptom-weight
table. Uses the bundled medical rulebase unless --rulebase is given.

This is a rule-engine demonstration, not medical advice.`,
	RunE: runDiagnose,
}

func init() {
	addKBFlags(DiagnoseCmd)
	DiagnoseCmd.Flags().StringSliceVar(&flagSymptoms, "symptoms", nil, "Observed symptoms (comma separated)")
	DiagnoseCmd.Flags().StringSliceVar(&flagConditions, "conditions", nil, "Candidate conditions (defaults to the rulebase goals)")
	DiagnoseCmd.MarkFlagRequired("symptoms")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	var (
		lab        *inferlab.Lab
		conditions []string
	)
	if flagRulebase != "" || flagRules != "" {
		base, goals, err := loadKB()
		if err != nil {
			return err
		}
		lab = inferlab.New(inferlab.Options{KB: base})
		conditions = goals
	} else {
		rb := sampledata.Medical()
		base, err := rb.Build()
		if err != nil {
			return err
		}
		lab = inferlab.New(inferlab.Options{KB: base})
		conditions = rb.Goals
	}
	if flagConditions != nil {
		conditions = flagConditions
	}

	diag, err := lab.Diagnose(cmd.Context(), flagSymptoms, conditions)
	if err != nil {
		return err
	}

	if len(diag.Candidates) == 0 {
		pterm.Warning.Println("No condition is derivable from the given symptoms")
		return nil
	}

	rows := pterm.TableData{{"Condition", "Confidence"}}
	for _, cs := range diag.Candidates {
		rows = append(rows, []string{cs.Condition, fmt.Sprintf("%.1f", cs.Confidence)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()
	pterm.Success.Printf("Best match: %s (%.1f)\n", diag.Best.Condition, diag.Best.Confidence)

	exp := lab.Scorer().Explain(diag.Best.Condition, flagSymptoms)
	if len(exp.MatchedPositive) > 0 {
		pterm.Info.Printf("Supporting: %s\n", symptomList(exp.MatchedPositive))
	}
	if len(exp.MatchedNegative) > 0 {
		pterm.Warning.Printf("Against: %s\n", symptomList(exp.MatchedNegative))
	}
	if len(exp.MissingKey) > 0 {
		pterm.Info.Printf("Not observed: %s\n", symptomList(exp.MissingKey))
	}
	return nil
}

func symptomList(items []scorer.WeightedSymptom) string {
	parts := make([]string, len(items))
	for i, ws := range items {
		parts[i] = fmt.Sprintf("%s (%.2f)", ws.Symptom, ws.Weight)
	}
	return strings.Join(parts, ", ")
}
