// Package graphs renders rule/fact dependency diagrams from
// already-computed inference results. It is a purely cosmetic,
// optional collaborator: the engines never depend on it, and a missing
// graphviz installation degrades to "no artifact" rather than an error.
//
// Two diagram kinds are supported: the fact-premise graph (FPG), a
// bipartite digraph of fact and rule nodes, and the rule precedence
// graph (RPG), which links a rule to the rules producing its premises.
package graphs

import (
	"fmt"
	"sort"

	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// NodeKind distinguishes fact nodes from rule nodes.
type NodeKind int

const (
	FactNode NodeKind = iota
	RuleNode
)

// Fact roles drive node styling.
const (
	RoleGiven   = "given"   // present in the initial fact set
	RoleGoal    = "goal"    // requested goal
	RoleDerived = "derived" // known at the end of the run but not given
	RolePlain   = ""        // mentioned by a rule only
)

// Node is one vertex of a dependency graph.
type Node struct {
	ID     string
	Kind   NodeKind
	Role   string
	RuleID int // set for rule nodes
}

// Edge is a directed edge between two node ids.
type Edge struct {
	From, To string
}

// Graph is a small digraph with deterministic node and edge order.
type Graph struct {
	nodes   []Node
	index   map[string]int
	edges   []Edge
	edgeSet map[Edge]struct{}
}

func newGraph() *Graph {
	return &Graph{
		index:   make(map[string]int),
		edgeSet: make(map[Edge]struct{}),
	}
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

func (g *Graph) addNode(n Node) {
	if i, ok := g.index[n.ID]; ok {
		// Upgrade the role if the node was first seen without one.
		if g.nodes[i].Role == RolePlain && n.Role != RolePlain {
			g.nodes[i].Role = n.Role
		}
		return
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

func (g *Graph) addEdge(from, to string) {
	e := Edge{From: from, To: to}
	if _, ok := g.edgeSet[e]; ok {
		return
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
}

func ruleNodeID(id int) string { return fmt.Sprintf("R%d", id) }

// BuildFPG constructs the fact-premise graph: each premise points at
// its rule node, each rule node points at its conclusion. Fact roles
// are resolved goal > given > derived > plain.
func BuildFPG(ruleSet []rules.Rule, known, goals, given []string) *Graph {
	goalSet := toSet(goals)
	givenSet := toSet(given)
	knownSet := toSet(known)

	role := func(atom string) string {
		switch {
		case goalSet[atom]:
			return RoleGoal
		case givenSet[atom]:
			return RoleGiven
		case knownSet[atom]:
			return RoleDerived
		default:
			return RolePlain
		}
	}

	g := newGraph()
	for _, atom := range sortedKeys(givenSet) {
		g.addNode(Node{ID: atom, Kind: FactNode, Role: role(atom)})
	}
	for _, atom := range sortedKeys(goalSet) {
		g.addNode(Node{ID: atom, Kind: FactNode, Role: role(atom)})
	}
	for _, rule := range ruleSet {
		rn := ruleNodeID(rule.ID)
		g.addNode(Node{ID: rn, Kind: RuleNode, RuleID: rule.ID})
		g.addNode(Node{ID: rule.Conclusion, Kind: FactNode, Role: role(rule.Conclusion)})
		g.addEdge(rn, rule.Conclusion)
		for _, premise := range rule.Premises {
			g.addNode(Node{ID: premise, Kind: FactNode, Role: role(premise)})
			g.addEdge(premise, rn)
		}
	}
	return g
}

// BuildRPG constructs the rule precedence graph: an edge from R_a to
// R_b means R_a concludes one of R_b's premises.
func BuildRPG(ruleSet []rules.Rule) *Graph {
	g := newGraph()
	producers := make(map[string][]int)
	for _, rule := range ruleSet {
		g.addNode(Node{ID: ruleNodeID(rule.ID), Kind: RuleNode, RuleID: rule.ID})
		producers[rule.Conclusion] = append(producers[rule.Conclusion], rule.ID)
	}
	for _, rule := range ruleSet {
		consumer := ruleNodeID(rule.ID)
		for _, premise := range rule.Premises {
			for _, producer := range producers[premise] {
				source := ruleNodeID(producer)
				if source != consumer {
					g.addEdge(source, consumer)
				}
			}
		}
	}
	return g
}

// filterRules keeps only the rules whose id is in keep.
func filterRules(ruleSet []rules.Rule, keep []int) []rules.Rule {
	keepSet := make(map[int]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var out []rules.Rule
	for _, rule := range ruleSet {
		if keepSet[rule.ID] {
			out = append(out, rule)
		}
	}
	return out
}

func toSet(atoms []string) map[string]bool {
	out := make(map[string]bool, len(atoms))
	for _, atom := range atoms {
		if atom != "" {
			out[atom] = true
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// levels assigns a BFS depth to every node, measured from the
// in-degree-zero sources, for same-rank grouping in the layout.
func (g *Graph) levels() map[string]int {
	indeg := make(map[string]int, len(g.nodes))
	succ := make(map[string][]string, len(g.nodes))
	for _, n := range g.nodes {
		indeg[n.ID] = 0
	}
	for _, e := range g.edges {
		indeg[e.To]++
		succ[e.From] = append(succ[e.From], e.To)
	}

	levels := make(map[string]int, len(g.nodes))
	var queue []string
	for _, n := range g.nodes {
		if indeg[n.ID] == 0 {
			levels[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}
	if len(queue) == 0 {
		for _, n := range g.nodes {
			levels[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range succ[current] {
			if _, seen := levels[next]; !seen {
				levels[next] = levels[current] + 1
				queue = append(queue, next)
			}
		}
	}
	for _, n := range g.nodes {
		if _, ok := levels[n.ID]; !ok {
			levels[n.ID] = 0
		}
	}
	return levels
}
