// Package scorer ranks diagnosis candidates against a static
// symptom-weight lookup table. It performs no inference: the engines
// decide what is derivable, the scorer only orders candidates by how
// well the observed symptoms match each condition's profile.
package scorer

import (
	"math"
	"sort"

	"github.com/inferlab/inferlab/pkg/inferlab/config"
)

// Combo is a symptom combination that earns a bonus when fully present.
type Combo struct {
	Symptoms []string
	Bonus    float64
}

// Table holds the per-condition scoring data. Positive weights are
// supporting evidence, negative weights contra-indications.
type Table struct {
	Weights  map[string]map[string]float64
	Priors   map[string]float64
	Severity map[string]map[string]float64
	Combos   map[string][]Combo
	Caps     map[string]float64 // per-condition confidence ceiling; defaultCap otherwise
}

const (
	defaultPrior = 0.05
	defaultCap   = 95.0

	evidenceScale = 70.0 // weight of the positive-evidence ratio
	priorScale    = 25.0 // weight of the prior probability
	contraScale   = 15.0 // penalty per unit of contra-indication weight
)

// WeightedSymptom pairs a symptom with its weight, for explanations.
type WeightedSymptom struct {
	Symptom string  `json:"symptom"`
	Weight  float64 `json:"weight"`
}

// ConditionScore is one ranked diagnosis candidate.
type ConditionScore struct {
	Condition  string  `json:"condition"`
	Confidence float64 `json:"confidence"` // 0..100
}

// Explanation describes why a condition scored the way it did.
type Explanation struct {
	MatchedPositive []WeightedSymptom `json:"matched_positive"`
	MatchedNegative []WeightedSymptom `json:"matched_negative"`
	MissingKey      []WeightedSymptom `json:"missing_key"` // important symptoms (weight > 0.7) not observed
}

// FromWeights builds a table from a loaded weight file, with default
// priors and no combo/severity data.
func FromWeights(w *config.Weights) *Table {
	return &Table{Weights: w.Conditions}
}

// Conditions returns the known condition names, sorted.
func (t *Table) Conditions() []string {
	out := make([]string, 0, len(t.Weights))
	for condition := range t.Weights {
		out = append(out, condition)
	}
	sort.Strings(out)
	return out
}

// Score computes the confidence (0..100) for one condition given the
// observed symptoms.
func (t *Table) Score(condition string, symptoms []string) float64 {
	weights, ok := t.Weights[condition]
	if !ok {
		return 0
	}
	observed := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		observed[s] = true
	}

	var positive, negative, maxPositive float64
	for symptom, weight := range weights {
		if weight > 0 {
			maxPositive += weight
			if observed[symptom] {
				positive += weight
			}
		} else if observed[symptom] {
			negative += -weight
		}
	}

	var ratio float64
	if maxPositive > 0 {
		ratio = positive / maxPositive
	}

	prior, ok := t.Priors[condition]
	if !ok {
		prior = defaultPrior
	}

	score := ratio*evidenceScale + prior*priorScale - negative*contraScale

	for symptom, penalty := range t.Severity[condition] {
		if observed[symptom] {
			score -= penalty
		}
	}
	for _, combo := range t.Combos[condition] {
		if containsAll(observed, combo.Symptoms) {
			score += combo.Bonus
		}
	}

	// Reward broad symptom pictures a little, and strong coverage of
	// the condition's profile more.
	if n := len(observed); n >= 4 {
		score += math.Min(10, float64(n-3)*2)
	}
	switch {
	case ratio >= 0.7:
		score += 10
	case ratio >= 0.5:
		score += 5
	}

	cap, ok := t.Caps[condition]
	if !ok {
		cap = defaultCap
	}
	score = math.Min(score, cap)
	score = math.Max(score, 0)
	return math.Round(score*10) / 10
}

// Rank scores the candidate conditions (all known conditions when nil)
// and returns those with a positive confidence, highest first. Ties
// break on condition name so the ordering is deterministic.
func (t *Table) Rank(symptoms []string, candidates []string) []ConditionScore {
	if candidates == nil {
		candidates = t.Conditions()
	}
	var out []ConditionScore
	for _, condition := range candidates {
		if score := t.Score(condition, symptoms); score > 0 {
			out = append(out, ConditionScore{Condition: condition, Confidence: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Condition < out[j].Condition
	})
	return out
}

// Explain breaks a condition's score down into matched evidence,
// contra-indications and important-but-missing symptoms.
func (t *Table) Explain(condition string, symptoms []string) Explanation {
	weights, ok := t.Weights[condition]
	if !ok {
		return Explanation{}
	}
	observed := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		observed[s] = true
	}

	var exp Explanation
	for symptom, weight := range weights {
		switch {
		case observed[symptom] && weight > 0:
			exp.MatchedPositive = append(exp.MatchedPositive, WeightedSymptom{symptom, weight})
		case observed[symptom]:
			exp.MatchedNegative = append(exp.MatchedNegative, WeightedSymptom{symptom, -weight})
		case weight > 0.7:
			exp.MissingKey = append(exp.MissingKey, WeightedSymptom{symptom, weight})
		}
	}
	sortByWeight(exp.MatchedPositive)
	sortByWeight(exp.MatchedNegative)
	sortByWeight(exp.MissingKey)
	exp.MatchedPositive = truncate(exp.MatchedPositive, 5)
	exp.MissingKey = truncate(exp.MissingKey, 3)
	return exp
}

func sortByWeight(items []WeightedSymptom) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Weight != items[j].Weight {
			return items[i].Weight > items[j].Weight
		}
		return items[i].Symptom < items[j].Symptom
	})
}

func truncate(items []WeightedSymptom, n int) []WeightedSymptom {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func containsAll(set map[string]bool, items []string) bool {
	for _, item := range items {
		if !set[item] {
			return false
		}
	}
	return true
}
