package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// FactsCmd groups fact management subcommands.
var FactsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Inspect and edit the facts of a rulebase file",
}

var factsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		for _, fact := range rb.Facts {
			pterm.Println(fact)
		}
		return nil
	},
}

var factsAddCmd = &cobra.Command{
	Use:   "add <fact>...",
	Short: "Add facts and save the rulebase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		present := make(map[string]bool, len(rb.Facts))
		for _, fact := range rb.Facts {
			present[fact] = true
		}
		for _, raw := range args {
			fact := rules.NormalizeAtom(raw)
			if fact == "" {
				return fmt.Errorf("fact %q is empty after normalization", raw)
			}
			if !present[fact] {
				rb.Facts = append(rb.Facts, fact)
				present[fact] = true
			}
		}
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Rulebase now holds %d fact(s)\n", len(rb.Facts))
		return nil
	},
}

var factsRemoveCmd = &cobra.Command{
	Use:   "rm <fact>...",
	Short: "Remove facts and save the rulebase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		drop := make(map[string]bool, len(args))
		for _, raw := range args {
			drop[rules.NormalizeAtom(raw)] = true
		}
		kept := rb.Facts[:0]
		for _, fact := range rb.Facts {
			if !drop[fact] {
				kept = append(kept, fact)
			}
		}
		rb.Facts = kept
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Rulebase now holds %d fact(s)\n", len(rb.Facts))
		return nil
	},
}

var factsSetCmd = &cobra.Command{
	Use:   "set <fact>...",
	Short: "Replace the fact set and save the rulebase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(args))
		facts := make([]string, 0, len(args))
		for _, raw := range args {
			fact := rules.NormalizeAtom(raw)
			if fact == "" || seen[fact] {
				continue
			}
			seen[fact] = true
			facts = append(facts, fact)
		}
		rb.Facts = facts
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Rulebase now holds %d fact(s)\n", len(rb.Facts))
		return nil
	},
}

var factsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all facts and save the rulebase",
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		removed := len(rb.Facts)
		rb.Facts = nil
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Removed %d fact(s)\n", removed)
		return nil
	},
}

func init() {
	FactsCmd.PersistentFlags().StringVar(&flagRulebase, "rulebase", "", "YAML rulebase file (rules, facts, goals)")
	FactsCmd.AddCommand(factsListCmd)
	FactsCmd.AddCommand(factsAddCmd)
	FactsCmd.AddCommand(factsRemoveCmd)
	FactsCmd.AddCommand(factsSetCmd)
	FactsCmd.AddCommand(factsClearCmd)
}
