package graphs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// Renderer emits DOT and, when the graphviz binary is available,
// renders it to the requested format. Style and layout are
// configuration here, not code variants.
type Renderer struct {
	Rankdir   string // "LR" (default) or "TB"
	Format    string // "svg" (default), "png", or "dot" to skip graphviz
	Highlight []int  // rule ids drawn with an accent border (e.g. fired rules)
	UsedOnly  bool   // drop rules not in Highlight before building
}

func (r Renderer) rankdir() string {
	if r.Rankdir == "" {
		return "LR"
	}
	return r.Rankdir
}

func (r Renderer) format() string {
	if r.Format == "" {
		return "svg"
	}
	return strings.TrimPrefix(strings.ToLower(r.Format), ".")
}

// RenderFPG builds and renders the fact-premise graph. It returns the
// rendered artifact path, or "" with a nil error when graphviz is not
// installed.
func (r Renderer) RenderFPG(ruleSet []rules.Rule, known, goals, given []string, output string) (string, error) {
	if r.UsedOnly && len(r.Highlight) > 0 {
		ruleSet = filterRules(ruleSet, r.Highlight)
	}
	return r.render(BuildFPG(ruleSet, known, goals, given), output)
}

// RenderRPG builds and renders the rule precedence graph.
func (r Renderer) RenderRPG(ruleSet []rules.Rule, output string) (string, error) {
	if r.UsedOnly && len(r.Highlight) > 0 {
		ruleSet = filterRules(ruleSet, r.Highlight)
	}
	return r.render(BuildRPG(ruleSet), output)
}

func (r Renderer) render(g *Graph, output string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", err
	}

	dotPath := replaceExt(output, ".dot")
	if err := os.WriteFile(dotPath, []byte(r.DOT(g)), 0o644); err != nil {
		return "", err
	}
	if r.format() == "dot" {
		return dotPath, nil
	}

	bin, err := exec.LookPath("dot")
	if err != nil {
		// Graphviz absent: the DOT file is still on disk, but there
		// is no rendered artifact to report.
		return "", nil
	}
	artifact := replaceExt(output, "."+r.format())
	cmd := exec.Command(bin, "-T"+r.format(), "-o", artifact, dotPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("dot: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return artifact, nil
}

// DOT serializes the graph with the renderer's styling.
func (r Renderer) DOT(g *Graph) string {
	highlight := make(map[int]bool, len(r.Highlight))
	for _, id := range r.Highlight {
		highlight[id] = true
	}

	var b strings.Builder
	b.WriteString("digraph inference {\n")
	fmt.Fprintf(&b, "  rankdir=%s;\n", r.rankdir())
	b.WriteString("  pad=0.45; bgcolor=\"#ffffff\"; splines=spline; ranksep=1.3; nodesep=1.05;\n")
	b.WriteString("  fontname=\"Arial\"; fontsize=13; overlap=false; outputorder=edgesfirst;\n")
	b.WriteString("  node [fontname=\"Arial\", fontsize=12, style=filled, penwidth=1.2];\n")
	b.WriteString("  edge [arrowhead=normal, arrowsize=0.8, color=\"#555555\", penwidth=1.05, minlen=2];\n")

	for _, n := range g.nodes {
		b.WriteString("  " + nodeLine(n, highlight[n.RuleID]) + "\n")
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	// Group nodes of equal BFS depth into the same rank so parallel
	// derivations line up.
	levels := g.levels()
	grouped := make(map[int][]string)
	for id, level := range levels {
		grouped[level] = append(grouped[level], id)
	}
	var order []int
	for level := range grouped {
		order = append(order, level)
	}
	sort.Ints(order)
	for _, level := range order {
		ids := grouped[level]
		if len(ids) <= 1 {
			continue
		}
		sort.Strings(ids)
		fmt.Fprintf(&b, "  { rank=same; %s }\n", quoteAll(ids))
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLine(n Node, highlighted bool) string {
	if n.Kind == RuleNode {
		attrs := `shape=box, width=0.95, height=0.55, fillcolor="#f3f3f3", color="#7a7a7a", penwidth=1.15, margin="0.08,0.05"`
		if highlighted {
			attrs = `shape=box, width=0.95, height=0.55, fillcolor="#fde8e8", color="#d1495b", penwidth=1.8, margin="0.08,0.05"`
		}
		return fmt.Sprintf("%s [label=%s, %s];", quote(n.ID), quote(n.ID), attrs)
	}

	var fill, stroke, penwidth string
	switch n.Role {
	case RoleGiven:
		fill, stroke, penwidth = "#e4f1ff", "#1f6fb2", "1.2"
	case RoleGoal:
		fill, stroke, penwidth = "#e6f8ed", "#28924d", "1.6"
	case RoleDerived:
		fill, stroke, penwidth = "#f1e8ff", "#6a4fb2", "1.3"
	default:
		fill, stroke, penwidth = "#fff4c7", "#c5a200", "1.1"
	}
	return fmt.Sprintf(
		"%s [label=%s, shape=circle, width=0.65, height=0.65, fillcolor=%q, color=%q, penwidth=%s];",
		quote(n.ID), quote(n.ID), fill, stroke, penwidth)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

func quoteAll(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = quote(id) + ";"
	}
	return strings.Join(quoted, " ")
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
