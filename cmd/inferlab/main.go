package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/cmd/inferlab/commands"
	"github.com/inferlab/inferlab/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "inferlab",
	Short: "inferlab - propositional rule engine with forward and backward chaining",
	Long: `inferlab - a propositional rule engine.

Rules are plain "premises -> conclusion" lines over atomic facts.
Forward chaining derives everything reachable from known facts;
backward chaining proves a goal by recursively proving premises.

Examples:
  inferlab sample triangle --out triangle.yaml   # write a demo rulebase
  inferlab rules list --rulebase triangle.yaml   # show its rules
  inferlab forward --rulebase triangle.yaml      # chase the rulebase goals
  inferlab backward --rulebase triangle.yaml --goals r
  inferlab diagnose --symptoms fever,cough,runny_nose
  inferlab serve --addr :8080                    # JSON API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json-logs")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return logging.Initialize(jsonOutput, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.ForwardCmd)
	rootCmd.AddCommand(commands.BackwardCmd)
	rootCmd.AddCommand(commands.DiagnoseCmd)
	rootCmd.AddCommand(commands.RulesCmd)
	rootCmd.AddCommand(commands.FactsCmd)
	rootCmd.AddCommand(commands.GraphCmd)
	rootCmd.AddCommand(commands.SampleCmd)
	rootCmd.AddCommand(commands.ServeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
