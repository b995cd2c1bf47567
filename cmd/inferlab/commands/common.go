// Package commands implements the inferlab CLI subcommands.
package commands

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab/config"
	"github.com/inferlab/inferlab/pkg/inferlab/kb"
	"github.com/inferlab/inferlab/pkg/inferlab/results"
)

// Flags shared by the inference commands.
var (
	flagRulebase string
	flagRules    string
	flagFacts    []string
	flagGoals    []string
	flagGraphs   bool
	flagOut      string
)

func addKBFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRulebase, "rulebase", "", "YAML rulebase file (rules, facts, goals)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Plain-text rules file, one rule per line")
	cmd.Flags().StringSliceVar(&flagFacts, "facts", nil, "Known facts (comma separated, overrides rulebase facts)")
}

func addRunFlags(cmd *cobra.Command) {
	addKBFlags(cmd)
	cmd.Flags().StringSliceVar(&flagGoals, "goals", nil, "Goal atoms (comma separated, overrides rulebase goals)")
	cmd.Flags().BoolVar(&flagGraphs, "graphs", false, "Render proof and rule graphs")
	cmd.Flags().StringVar(&flagOut, "out", "inference_outputs", "Directory for graph artifacts")
}

// loadKB builds the knowledge base from --rulebase or --rules and
// applies the --facts / --goals overrides.
func loadKB() (*kb.KnowledgeBase, []string, error) {
	var (
		base  *kb.KnowledgeBase
		goals []string
		err   error
	)
	switch {
	case flagRulebase != "":
		base, goals, err = config.LoadKnowledgeBase(flagRulebase)
		if err != nil {
			return nil, nil, err
		}
	case flagRules != "":
		base = kb.New(flagRules)
		if err := base.LoadRulesFile(flagRules); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.New("no rules given: use --rulebase or --rules")
	}

	if flagFacts != nil {
		base.SetFacts(flagFacts)
	}
	if flagGoals != nil {
		goals = flagGoals
	}
	return base, goals, nil
}

func printForwardResult(res *results.ForwardResult) {
	rows := pterm.TableData{{"Step", "Rule", "Agenda", "Known", "Note"}}
	for _, step := range res.History {
		rule := ""
		if step.RuleID != 0 {
			rule = "R" + strconv.Itoa(step.RuleID)
		}
		rows = append(rows, []string{
			strconv.Itoa(step.Step),
			rule,
			intsToString(step.Agenda),
			strings.Join(step.Known, " "),
			step.Note,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()

	if res.Success {
		pterm.Success.Printf("Goals %v reached; fired %s\n", res.Goals, rulesLabel(res.Fired))
	} else {
		pterm.Warning.Printf("Goals %v not reachable; fired %s\n", res.Goals, rulesLabel(res.Fired))
	}
	pterm.Info.Printf("Elapsed: %s, run %s\n", res.Elapsed, res.RunID)
}

func printBackwardResult(res *results.BackwardResult) {
	for _, step := range res.Steps {
		pterm.Println(step)
	}
	pterm.Println()

	if res.Success {
		pterm.Success.Printf("All goals proven; used %s\n", rulesLabel(res.UsedRules))
	} else {
		pterm.Warning.Println("Not all goals could be proven")
	}
	pterm.Info.Printf("Elapsed: %s, run %s\n", res.Elapsed, res.RunID)
}

func printGraphFiles(files map[string]string) {
	for label, path := range files {
		pterm.Info.Printf("Graph %s: %s\n", label, path)
	}
}

func rulesLabel(ids []int) string {
	if len(ids) == 0 {
		return "no rules"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "R" + strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func intsToString(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
