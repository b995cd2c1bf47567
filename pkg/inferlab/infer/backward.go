package infer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
	"github.com/inferlab/inferlab/pkg/inferlab/results"
	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// Backward runs goal-directed proof search over the rule snapshot.
// Goals are attempted in caller-supplied order; the run stops at the
// first goal that cannot be proven, keeping everything derived while
// attempting it (no rollback). Failed subgoals are not memoized, so a
// later attempt may re-explore them; successful subgoals are added to
// the known set and short-circuit future proofs.
func Backward(ruleSet []rules.Rule, goals, knownFacts []string, opts BackwardOptions) (*results.BackwardResult, error) {
	tieBreak, err := ParseTieBreak(string(opts.TieBreak))
	if err != nil {
		return nil, err
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if len(ruleSet) == 0 {
		return nil, errors.Wrap(internalerr.ErrNoRules, "backward chaining")
	}
	goalList := normalizeAtoms(goals)
	if len(goalList) == 0 {
		return nil, errors.Wrap(internalerr.ErrNoGoals, "backward chaining")
	}

	started := time.Now()

	known := atomSet(knownFacts)
	byConclusion := make(map[string][]rules.Rule)
	for _, rule := range sortedByID(ruleSet) {
		byConclusion[rule.Conclusion] = append(byConclusion[rule.Conclusion], rule)
	}

	run := &backwardRun{
		tieBreak:     tieBreak,
		maxDepth:     maxDepth,
		known:        known,
		byConclusion: byConclusion,
		visiting:     make(map[string]struct{}),
	}

	overallSuccess := true
	for _, goal := range goalList {
		if _, ok := known[goal]; ok {
			run.note(0, "Goal '%s' already satisfied.", goal)
			continue
		}
		run.steps = append(run.steps, fmt.Sprintf("\n=== Proving goal '%s' ===", goal))
		proven, err := run.prove(goal, 1)
		if err != nil {
			return nil, err
		}
		if !proven {
			overallSuccess = false
			run.note(0, "!!! Failed to prove '%s'.", goal)
			break
		}
		run.note(0, "+++ Goal '%s' complete.", goal)
	}

	goalSet := atomSet(goalList)
	return &results.BackwardResult{
		RunID:      results.NewRunID(),
		Success:    overallSuccess && isSubset(goalSet, known),
		Goals:      goalList,
		FinalKnown: sortedAtoms(known),
		UsedRules:  run.used,
		Steps:      run.steps,
		TieBreak:   string(tieBreak),
		Elapsed:    time.Since(started),
	}, nil
}

// backwardRun carries the mutable state of one backward-chaining run.
// The visiting set is the cycle guard: an atom on the current proof
// path fails immediately, but that failure is not memoized.
type backwardRun struct {
	tieBreak     TieBreak
	maxDepth     int
	known        map[string]struct{}
	byConclusion map[string][]rules.Rule
	visiting     map[string]struct{}
	used         []int
	steps        []string
}

func (r *backwardRun) prove(goal string, depth int) (bool, error) {
	if depth > r.maxDepth {
		return false, errors.Wrapf(internalerr.ErrRecursionLimit,
			"proving '%s' at depth %d (limit %d)", goal, depth, r.maxDepth)
	}
	if _, ok := r.known[goal]; ok {
		r.note(depth, "- Goal '%s' is already in the known set.", goal)
		return true, nil
	}
	if _, ok := r.visiting[goal]; ok {
		r.note(depth, "- Cycle detected while proving '%s'.", goal)
		return false, nil
	}

	candidates := r.byConclusion[goal]
	if len(candidates) == 0 {
		r.note(depth, "- No rule concludes '%s'.", goal)
		return false, nil
	}

	ordered := make([]rules.Rule, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		if r.tieBreak == TieBreakMax {
			return ordered[i].ID > ordered[j].ID
		}
		return ordered[i].ID < ordered[j].ID
	})

	r.visiting[goal] = struct{}{}
	r.note(depth, "- Considering %d rule(s) for goal '%s' (tie-break: %s).",
		len(ordered), goal, r.tieBreak)

	for _, rule := range ordered {
		r.note(depth, "  -> Trying R%d: %s", rule.ID, rule.Text())
		proven := true
		for _, premise := range rule.Premises {
			r.note(depth, "    * Proving premise '%s'", premise)
			ok, err := r.prove(premise, depth+2)
			if err != nil {
				return false, err
			}
			if !ok {
				proven = false
				r.note(depth, "    x Could not prove '%s'; abandoning R%d.", premise, rule.ID)
				break
			}
		}
		if proven {
			r.known[goal] = struct{}{}
			r.used = append(r.used, rule.ID)
			r.note(depth, "  + Goal '%s' proven via R%d.", goal, rule.ID)
			delete(r.visiting, goal)
			return true, nil
		}
	}

	delete(r.visiting, goal)
	r.note(depth, "- Could not prove '%s'.", goal)
	return false, nil
}

func (r *backwardRun) note(depth int, format string, args ...any) {
	r.steps = append(r.steps, strings.Repeat("  ", depth)+fmt.Sprintf(format, args...))
}

func normalizeAtoms(atoms []string) []string {
	var out []string
	for _, atom := range atoms {
		if a := rules.NormalizeAtom(atom); a != "" {
			out = append(out, a)
		}
	}
	return out
}
