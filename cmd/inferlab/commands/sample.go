package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab/config"
	"github.com/inferlab/inferlab/pkg/inferlab/sampledata"
)

var flagSampleOut string

// SampleCmd writes one of the bundled demo rulebases to a file.
var SampleCmd = &cobra.Command{
	Use:   "sample {triangle|medical}",
	Short: "Write a bundled demo rulebase as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rb *config.Rulebase
		switch args[0] {
		case "triangle":
			rb = sampledata.Triangle()
		case "medical":
			rb = sampledata.Medical()
		default:
			return fmt.Errorf("unknown sample %q: want triangle or medical", args[0])
		}

		out := flagSampleOut
		if out == "" {
			out = args[0] + ".yaml"
		}
		if err := rb.Save(out); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s (%d rules, %d facts, %d goals)\n",
			out, len(rb.Rules), len(rb.Facts), len(rb.Goals))
		return nil
	},
}

func init() {
	SampleCmd.Flags().StringVar(&flagSampleOut, "out", "", "Output file (defaults to <sample>.yaml)")
}
