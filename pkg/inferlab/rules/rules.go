// Package rules holds the immutable rule/atom model and the rule-text
// grammar shared by the knowledge base and both inference engines.
package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
)

// atomSplitPattern separates premises. Accepted separators are
// ",", "&", "?", "^" and the word "and" (case-insensitive).
var atomSplitPattern = regexp.MustCompile(`(?i)\s*(?:,|&|\?|\^|and)\s*`)

// controlCharPattern matches control characters stripped before parsing.
var controlCharPattern = regexp.MustCompile("[\\x00-\\x1f\\x7f]")

// Rule is a conjunctive implication: premises -> conclusion.
// Treat it as a value: the knowledge base hands out copies, never
// aliases into its own storage.
type Rule struct {
	ID         int
	Premises   []string
	Conclusion string
}

// New builds a rule from raw parts, trimming atoms and removing
// duplicate premises while keeping the first occurrence.
func New(id int, premises []string, conclusion string) Rule {
	return Rule{
		ID:         id,
		Premises:   dedupePreserveOrder(premises),
		Conclusion: NormalizeAtom(conclusion),
	}
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	out := r
	out.Premises = append([]string(nil), r.Premises...)
	return out
}

// Text renders the rule in canonical form, e.g. "a ^ b -> c".
func (r Rule) Text() string {
	return r.TextWith(" ^ ")
}

// TextWith renders the rule with a custom premise joiner.
func (r Rule) TextWith(joiner string) string {
	return strings.Join(r.Premises, joiner) + " -> " + r.Conclusion
}

// NormalizeAtom trims surrounding whitespace. Atoms carry no other
// normalization; comparison is exact string equality.
func NormalizeAtom(atom string) string {
	return strings.TrimSpace(atom)
}

// SplitAtoms splits raw text on the premise separators, dropping
// empty tokens. Duplicates are preserved.
func SplitAtoms(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range atomSplitPattern.Split(raw, -1) {
		if atom := NormalizeAtom(tok); atom != "" {
			out = append(out, atom)
		}
	}
	return out
}

// Parse turns one line of rule text into its premises and conclusion.
// Grammar: `premise_list "->" conclusion`. The arrow variants "=>",
// "→" and ":>" normalize to "->"; control characters are stripped
// first. Premises keep left-to-right order with duplicates removed.
func Parse(raw string) (premises []string, conclusion string, err error) {
	cleaned := controlCharPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	normalized := strings.NewReplacer("=>", "->", "→", "->", ":>", "->").Replace(cleaned)

	left, right, found := strings.Cut(normalized, "->")
	if !found {
		return nil, "", errors.Wrapf(internalerr.ErrMissingArrow,
			"expected an arrow like '->' (example: a & b -> c) in %q", raw)
	}

	premises = dedupePreserveOrder(SplitAtoms(left))
	conclusion = NormalizeAtom(right)
	if len(premises) == 0 {
		return nil, "", errors.Wrapf(internalerr.ErrMissingPremises, "in %q", raw)
	}
	if conclusion == "" {
		return nil, "", errors.Wrapf(internalerr.ErrMissingConclusion, "in %q", raw)
	}
	return premises, conclusion, nil
}

// FormatAtoms renders a set of atoms as a sorted, comma-separated
// list, or "∅" when empty. Used by the presentation layers.
func FormatAtoms(items []string) string {
	seen := make(map[string]struct{}, len(items))
	var uniq []string
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		uniq = append(uniq, item)
	}
	if len(uniq) == 0 {
		return "∅"
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ", ")
}

func dedupePreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		atom := NormalizeAtom(item)
		if atom == "" {
			continue
		}
		if _, ok := seen[atom]; ok {
			continue
		}
		seen[atom] = struct{}{}
		out = append(out, atom)
	}
	return out
}
