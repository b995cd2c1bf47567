package commands

import (
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/internal/logging"
	"github.com/inferlab/inferlab/pkg/inferlab"
)

var (
	flagBackwardTieBreak string
	flagMaxDepth         int
)

// BackwardCmd proves goals by backward chaining.
var BackwardCmd = &cobra.Command{
	Use:   "backward",
	Short: "Prove goals by backward chaining through rule premises",
	Long: `Run backward chaining: each goal is proven by finding a rule that
concludes it and recursively proving that rule's premises. Cycles are
detected and skipped; candidate rules are tried in id order (min) or
reverse id order (max).`,
	RunE: runBackward,
}

func init() {
	addRunFlags(BackwardCmd)
	BackwardCmd.Flags().StringVar(&flagBackwardTieBreak, "tiebreak", "min", "Candidate rule order: min or max rule id first")
	BackwardCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "Recursion depth ceiling (0 for the default)")
}

func runBackward(cmd *cobra.Command, args []string) error {
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

	logging.Logger.Debugw("backward run starting",
		"rules", base.RuleCount(), "facts", base.FactCount(), "goals", goals)

	res, err := lab.Backward(cmd.Context(), inferlab.BackwardRequest{
		Goals:    goals,
		TieBreak: flagBackwardTieBreak,
		MaxDepth: flagMaxDepth,
	})
	if err != nil {
		return err
	}

	printBackwardResult(res)
	printGraphFiles(res.GraphFiles)
	return nil
}
