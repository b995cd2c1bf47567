package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/pkg/inferlab/graphs"
)

var (
	flagGraphKind    string
	flagGraphFormat  string
	flagGraphRankdir string
)

// GraphCmd renders a rulebase as a Graphviz graph without running
// inference.
var GraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the fact-premise or rule-precedence graph",
	Long: `Render a rulebase as Graphviz output.

The fact-premise graph (fpg) shows facts feeding rules feeding their
conclusions; the rule-precedence graph (rpg) shows which rules produce
the premises of which other rules. A .dot file is always written; the
rendered image additionally requires the dot binary on PATH.`,
	RunE: runGraph,
}

func init() {
	addKBFlags(GraphCmd)
	GraphCmd.Flags().StringVar(&flagGraphKind, "type", "fpg", "Graph kind: fpg or rpg")
	GraphCmd.Flags().StringVar(&flagGraphFormat, "format", "svg", "Output format: svg, png, or dot")
	GraphCmd.Flags().StringVar(&flagGraphRankdir, "rankdir", "", "Graphviz rank direction (LR, TB, ...)")
	GraphCmd.Flags().StringVar(&flagOut, "out", "inference_outputs", "Directory for graph artifacts")
}

func runGraph(cmd *cobra.Command, args []string) error {
	base, goals, err := loadKB()
	if err != nil {
		return err
	}

	renderer := graphs.Renderer{
		Rankdir: flagGraphRankdir,
		Format:  flagGraphFormat,
	}

	var path string
	switch flagGraphKind {
	case "fpg":
		path, err = renderer.RenderFPG(base.Rules(), base.Facts(), goals, base.Facts(),
			filepath.Join(flagOut, "fpg."+flagGraphFormat))
	case "rpg":
		path, err = renderer.RenderRPG(base.Rules(),
			filepath.Join(flagOut, "rpg."+flagGraphFormat))
	default:
		return fmt.Errorf("unknown graph type %q: want fpg or rpg", flagGraphKind)
	}
	if err != nil {
		return err
	}
	if path == "" {
		pterm.Warning.Println("Graphviz dot binary not found; wrote the .dot source only")
		return nil
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
