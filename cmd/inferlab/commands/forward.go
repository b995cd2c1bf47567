package commands

import (
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/internal/logging"
	"github.com/inferlab/inferlab/pkg/inferlab"
)

var (
	flagStructure string
	flagTieBreak  string
)

// ForwardCmd runs forward chaining over a rulebase.
var ForwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Derive facts by forward chaining until the goals are reached",
	Long: `Run forward chaining: starting from the known facts, fire every rule
whose premises hold until the goals are all derived or no rule applies.
The agenda structure (stack or queue) and the same-step tie-break
(min or max rule id) control the firing order.`,
	RunE: runForward,
}

func init() {
	addRunFlags(ForwardCmd)
	ForwardCmd.Flags().StringVar(&flagStructure, "structure", "stack", "Agenda structure: stack or queue")
	ForwardCmd.Flags().StringVar(&flagTieBreak, "tiebreak", "min", "Same-step tie-break: min or max rule id")
}

func runForward(cmd *cobra.Command, args []string) error {
	base, goals, err := loadKB()
	if err != nil {
		return err
	}

	lab := inferlab.New(inferlab.Options{
		KB:         base,
		GraphDir:   flagOut,
		MakeGraphs: flagGraphs,
	})
	defer lab.Close()

	logging.Logger.Debugw("forward run starting",
		"rules", base.RuleCount(), "facts", base.FactCount(), "goals", goals)

	res, err := lab.Forward(cmd.Context(), inferlab.ForwardRequest{
		Goals:     goals,
		Structure: flagStructure,
		TieBreak:  flagTieBreak,
	})
	if err != nil {
		return err
	}

	printForwardResult(res)
	printGraphFiles(res.GraphFiles)
	return nil
}
