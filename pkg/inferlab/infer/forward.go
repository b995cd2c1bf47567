package infer

import (
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
	"github.com/inferlab/inferlab/pkg/inferlab/results"
	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// Forward runs forward-chaining fixpoint derivation over the rule
// snapshot, seeded with initialFacts, until every goal is known or no
// candidate rule remains. Each rule fires at most once, so the loop
// terminates within len(ruleSet) iterations.
func Forward(ruleSet []rules.Rule, initialFacts, goals []string, opts ForwardOptions) (*results.ForwardResult, error) {
	structure, err := ParseStructure(string(opts.Structure))
	if err != nil {
		return nil, err
	}
	tieBreak, err := ParseTieBreak(string(opts.TieBreak))
	if err != nil {
		return nil, err
	}
	if len(ruleSet) == 0 {
		return nil, errors.Wrap(internalerr.ErrNoRules, "forward chaining")
	}
	goalSet := atomSet(goals)
	if len(goalSet) == 0 {
		return nil, errors.Wrap(internalerr.ErrNoGoals, "forward chaining")
	}

	started := time.Now()

	ordered := sortedByID(ruleSet)
	known := atomSet(initialFacts)
	ruleIndex := make(map[int]rules.Rule, len(ordered))
	remaining := make(map[int]struct{}, len(ordered))
	for _, rule := range ordered {
		ruleIndex[rule.ID] = rule
		remaining[rule.ID] = struct{}{}
	}

	var agenda, fired []int
	agenda = enqueueCandidates(agenda, remaining, known, ordered, structure, tieBreak)

	history := []results.StepTrace{{
		Step:      0,
		Known:     sortedAtoms(known),
		Agenda:    append([]int(nil), agenda...),
		Remaining: sortedIDs(remaining),
		Fired:     append([]int(nil), fired...),
		Note:      "initial state",
	}}

	step := 0
	for len(agenda) > 0 && !isSubset(goalSet, known) {
		step++
		var ruleID int
		if structure == StructureStack {
			ruleID = agenda[len(agenda)-1]
			agenda = agenda[:len(agenda)-1]
		} else {
			ruleID = agenda[0]
			agenda = agenda[1:]
		}
		rule := ruleIndex[ruleID]
		fired = append(fired, ruleID)
		delete(remaining, ruleID)
		known[rule.Conclusion] = struct{}{}

		agenda = enqueueCandidates(agenda, remaining, known, ordered, structure, tieBreak)

		history = append(history, results.StepTrace{
			Step:      step,
			RuleID:    ruleID,
			Known:     sortedAtoms(known),
			Agenda:    append([]int(nil), agenda...),
			Remaining: sortedIDs(remaining),
			Fired:     append([]int(nil), fired...),
			Note:      fmt.Sprintf("derived %s", rule.Conclusion),
		})
	}

	success := isSubset(goalSet, known)
	if !success && len(agenda) == 0 {
		history = append(history, results.StepTrace{
			Step:      step + 1,
			Known:     sortedAtoms(known),
			Agenda:    []int{},
			Remaining: sortedIDs(remaining),
			Fired:     append([]int(nil), fired...),
			Note:      "no further rules applicable",
		})
	}

	return &results.ForwardResult{
		RunID:      results.NewRunID(),
		Success:    success,
		Goals:      sortedAtoms(goalSet),
		FinalFacts: sortedAtoms(known),
		Fired:      fired,
		History:    history,
		Structure:  string(structure),
		TieBreak:   string(tieBreak),
		Elapsed:    time.Since(started),
	}, nil
}

// enqueueCandidates scans the remaining rules for newly applicable
// candidates (premises known, conclusion not yet known, not already
// queued), sorts the batch by rule id and appends it to the agenda.
// The sort direction pairs with the selection end: a stack pops from
// the back, so min tie-break sorts descending to surface the lowest id
// first; a queue pops from the front, so min sorts ascending.
func enqueueCandidates(agenda []int, remaining map[int]struct{}, known map[string]struct{}, ordered []rules.Rule, structure Structure, tieBreak TieBreak) []int {
	queued := make(map[int]struct{}, len(agenda))
	for _, id := range agenda {
		queued[id] = struct{}{}
	}

	var batch []int
	for _, rule := range ordered {
		if _, ok := remaining[rule.ID]; !ok {
			continue
		}
		if _, ok := queued[rule.ID]; ok {
			continue
		}
		if _, ok := known[rule.Conclusion]; ok {
			continue
		}
		if premisesKnown(rule, known) {
			batch = append(batch, rule.ID)
		}
	}
	if len(batch) == 0 {
		return agenda
	}

	descending := (structure == StructureStack) == (tieBreak == TieBreakMin)
	sort.Slice(batch, func(i, j int) bool {
		if descending {
			return batch[i] > batch[j]
		}
		return batch[i] < batch[j]
	})
	return append(agenda, batch...)
}

func premisesKnown(rule rules.Rule, known map[string]struct{}) bool {
	for _, premise := range rule.Premises {
		if _, ok := known[premise]; !ok {
			return false
		}
	}
	return true
}

func sortedByID(ruleSet []rules.Rule) []rules.Rule {
	out := make([]rules.Rule, len(ruleSet))
	copy(out, ruleSet)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func atomSet(atoms []string) map[string]struct{} {
	out := make(map[string]struct{}, len(atoms))
	for _, atom := range atoms {
		if a := rules.NormalizeAtom(atom); a != "" {
			out[a] = struct{}{}
		}
	}
	return out
}

func sortedAtoms(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for atom := range set {
		out = append(out, atom)
	}
	sort.Strings(out)
	return out
}

func sortedIDs(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func isSubset(subset map[string]struct{}, of map[string]struct{}) bool {
	for atom := range subset {
		if _, ok := of[atom]; !ok {
			return false
		}
	}
	return true
}
