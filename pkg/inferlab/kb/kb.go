// Package kb provides the mutable rule/fact store that both inference
// engines read snapshots from.
package kb

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// KnowledgeBase stores rules keyed by id plus a set of known facts.
// Rule ids are unique and never reused: the internal counter only
// ratchets upward, even across removals, so traces stay unambiguous.
//
// Not safe for concurrent mutation; engines work against snapshots.
type KnowledgeBase struct {
	name   string
	byID   map[int]rules.Rule
	facts  map[string]struct{}
	nextID int
}

// New creates an empty knowledge base.
func New(name string) *KnowledgeBase {
	if name == "" {
		name = "knowledge-base"
	}
	return &KnowledgeBase{
		name:   name,
		byID:   make(map[int]rules.Rule),
		facts:  make(map[string]struct{}),
		nextID: 1,
	}
}

// Name returns the knowledge base's display name.
func (k *KnowledgeBase) Name() string { return k.name }

// AddRule appends a rule under the next free id.
func (k *KnowledgeBase) AddRule(premises []string, conclusion string) (rules.Rule, error) {
	return k.insertRule(k.allocateID(), premises, conclusion)
}

// AddRuleWithID appends a rule under an explicit id and advances the
// counter past it. Fails when the id is already taken.
func (k *KnowledgeBase) AddRuleWithID(id int, premises []string, conclusion string) (rules.Rule, error) {
	if _, exists := k.byID[id]; exists {
		return rules.Rule{}, errors.Wrapf(internalerr.ErrIDConflict, "rule id %d", id)
	}
	if id >= k.nextID {
		k.nextID = id + 1
	}
	return k.insertRule(id, premises, conclusion)
}

// AddRuleText parses one line of rule text and adds the result.
func (k *KnowledgeBase) AddRuleText(text string) (rules.Rule, error) {
	premises, conclusion, err := rules.Parse(text)
	if err != nil {
		return rules.Rule{}, err
	}
	return k.AddRule(premises, conclusion)
}

// GetRule returns a copy of the rule with the given id.
func (k *KnowledgeBase) GetRule(id int) (rules.Rule, error) {
	rule, ok := k.byID[id]
	if !ok {
		return rules.Rule{}, errors.Wrapf(internalerr.ErrUnknownRuleID, "rule id %d", id)
	}
	return rule.Clone(), nil
}

// UpdateRule replaces the stored rule wholesale, keeping its id.
// Nil premises or an empty conclusion keep the existing value.
func (k *KnowledgeBase) UpdateRule(id int, premises []string, conclusion string) (rules.Rule, error) {
	existing, ok := k.byID[id]
	if !ok {
		return rules.Rule{}, errors.Wrapf(internalerr.ErrUnknownRuleID, "rule id %d", id)
	}
	if premises == nil {
		premises = existing.Premises
	}
	if rules.NormalizeAtom(conclusion) == "" {
		conclusion = existing.Conclusion
	}
	updated := rules.New(id, premises, conclusion)
	if err := validateRule(updated); err != nil {
		return rules.Rule{}, err
	}
	k.byID[id] = updated
	return updated.Clone(), nil
}

// RemoveRule deletes and returns the rule with the given id. The id is
// not freed for reuse.
func (k *KnowledgeBase) RemoveRule(id int) (rules.Rule, error) {
	rule, ok := k.byID[id]
	if !ok {
		return rules.Rule{}, errors.Wrapf(internalerr.ErrUnknownRuleID, "rule id %d", id)
	}
	delete(k.byID, id)
	return rule, nil
}

// Rules returns copies of all rules in ascending id order. Both
// engines' tie-break policies are defined relative to this ordering.
func (k *KnowledgeBase) Rules() []rules.Rule {
	out := make([]rules.Rule, 0, len(k.byID))
	for _, rule := range k.byID {
		out = append(out, rule.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RuleCount returns the number of stored rules.
func (k *KnowledgeBase) RuleCount() int { return len(k.byID) }

// ClearRules removes every rule. The id counter keeps its value.
func (k *KnowledgeBase) ClearRules() {
	k.byID = make(map[int]rules.Rule)
}

// LoadRulesText adds one rule per non-empty line. Lines starting with
// '#' are treated as comments.
func (k *KnowledgeBase) LoadRulesText(text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := k.AddRuleText(line); err != nil {
			return errors.Wrapf(err, "loading rule %q", line)
		}
	}
	return nil
}

// LoadRulesFile reads a plain-text rule file, one rule per line.
func (k *KnowledgeBase) LoadRulesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return k.LoadRulesText(string(data))
}

// ExportRulesText renders all rules in canonical form, one per line,
// in ascending id order.
func (k *KnowledgeBase) ExportRulesText() string {
	ruleSet := k.Rules()
	lines := make([]string, 0, len(ruleSet))
	for _, rule := range ruleSet {
		lines = append(lines, rule.Text())
	}
	return strings.Join(lines, "\n")
}

// AddFact adds a single fact. Blank atoms are rejected.
func (k *KnowledgeBase) AddFact(fact string) (string, error) {
	atom := rules.NormalizeAtom(fact)
	if atom == "" {
		return "", errors.Wrap(internalerr.ErrEmptyAtom, "add fact")
	}
	k.facts[atom] = struct{}{}
	return atom, nil
}

// RemoveFact deletes a fact if present.
func (k *KnowledgeBase) RemoveFact(fact string) {
	delete(k.facts, rules.NormalizeAtom(fact))
}

// SetFacts replaces the entire fact set, normalizing atoms and
// dropping empties.
func (k *KnowledgeBase) SetFacts(facts []string) {
	k.facts = make(map[string]struct{}, len(facts))
	for _, fact := range facts {
		if atom := rules.NormalizeAtom(fact); atom != "" {
			k.facts[atom] = struct{}{}
		}
	}
}

// ClearFacts removes every fact.
func (k *KnowledgeBase) ClearFacts() {
	k.facts = make(map[string]struct{})
}

// HasFact reports whether the atom is currently known.
func (k *KnowledgeBase) HasFact(fact string) bool {
	_, ok := k.facts[rules.NormalizeAtom(fact)]
	return ok
}

// Facts returns the current facts, sorted.
func (k *KnowledgeBase) Facts() []string {
	out := make([]string, 0, len(k.facts))
	for fact := range k.facts {
		out = append(out, fact)
	}
	sort.Strings(out)
	return out
}

// FactCount returns the number of known facts.
func (k *KnowledgeBase) FactCount() int { return len(k.facts) }

// Clone returns an independent copy of the knowledge base.
func (k *KnowledgeBase) Clone() *KnowledgeBase {
	out := New(k.name)
	for id, rule := range k.byID {
		out.byID[id] = rule.Clone()
	}
	for fact := range k.facts {
		out.facts[fact] = struct{}{}
	}
	out.nextID = k.nextID
	return out
}

// Summary returns a one-line description for display.
func (k *KnowledgeBase) Summary() string {
	return fmt.Sprintf("%s: %d rule(s), %d fact(s)", k.name, len(k.byID), len(k.facts))
}

func (k *KnowledgeBase) allocateID() int {
	id := k.nextID
	k.nextID++
	return id
}

func (k *KnowledgeBase) insertRule(id int, premises []string, conclusion string) (rules.Rule, error) {
	rule := rules.New(id, premises, conclusion)
	if err := validateRule(rule); err != nil {
		return rules.Rule{}, err
	}
	k.byID[id] = rule
	return rule.Clone(), nil
}

func validateRule(rule rules.Rule) error {
	if len(rule.Premises) == 0 {
		return errors.Wrapf(internalerr.ErrMissingPremises, "rule %d", rule.ID)
	}
	if rule.Conclusion == "" {
		return errors.Wrapf(internalerr.ErrMissingConclusion, "rule %d", rule.ID)
	}
	return nil
}
