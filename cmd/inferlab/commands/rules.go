package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab/config"
)

// RulesCmd groups rule management subcommands.
var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and edit the rules of a rulebase file",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules with their ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _, err := loadKB()
		if err != nil {
			return err
		}
		rows := pterm.TableData{{"ID", "Rule"}}
		for _, rule := range base.Rules() {
			rows = append(rows, []string{strconv.Itoa(rule.ID), rule.Text()})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <rule-text>",
	Short: "Add a rule like \"a, b -> c\" and save the rulebase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		// Validate before touching the file.
		probe, err := rb.Build()
		if err != nil {
			return err
		}
		if _, err := probe.AddRuleText(args[0]); err != nil {
			return err
		}

		rb.Rules = append(rb.Rules, args[0])
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Added rule %q (id %d)\n", args[0], probe.RuleCount())
		return nil
	},
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a rule by id and save the rulebase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rule id must be an integer: %q", args[0])
		}
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		if id < 1 || id > len(rb.Rules) {
			return fmt.Errorf("no rule with id %d", id)
		}

		removed := rb.Rules[id-1]
		rb.Rules = append(rb.Rules[:id-1], rb.Rules[id:]...)
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Removed rule %d: %s\n", id, removed)
		return nil
	},
}

var rulesEditCmd = &cobra.Command{
	Use:   "edit <id> <rule-text>",
	Short: "Replace a rule by id and save the rulebase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rule id must be an integer: %q", args[0])
		}
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		if id < 1 || id > len(rb.Rules) {
			return fmt.Errorf("no rule with id %d", id)
		}
		probe, err := rb.Build()
		if err != nil {
			return err
		}
		if _, err := probe.AddRuleText(args[1]); err != nil {
			return err
		}

		rb.Rules[id-1] = args[1]
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Rule %d is now: %s\n", id, args[1])
		return nil
	},
}

var rulesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all rules and save the rulebase",
	RunE: func(cmd *cobra.Command, args []string) error {
		rb, err := loadRulebaseFile()
		if err != nil {
			return err
		}
		removed := len(rb.Rules)
		rb.Rules = nil
		if err := rb.Save(flagRulebase); err != nil {
			return err
		}
		pterm.Success.Printf("Removed %d rule(s)\n", removed)
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the rules as plain text, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _, err := loadKB()
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, base.ExportRulesText())
		return nil
	},
}

func loadRulebaseFile() (*config.Rulebase, error) {
	if flagRulebase == "" {
		return nil, fmt.Errorf("editing rules requires --rulebase")
	}
	return config.LoadRulebase(flagRulebase)
}

func init() {
	RulesCmd.PersistentFlags().StringVar(&flagRulebase, "rulebase", "", "YAML rulebase file (rules, facts, goals)")
	RulesCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Plain-text rules file, one rule per line")
	RulesCmd.AddCommand(rulesListCmd)
	RulesCmd.AddCommand(rulesAddCmd)
	RulesCmd.AddCommand(rulesRemoveCmd)
	RulesCmd.AddCommand(rulesEditCmd)
	RulesCmd.AddCommand(rulesClearCmd)
	RulesCmd.AddCommand(rulesExportCmd)
}
