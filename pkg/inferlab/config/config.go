// Package config loads rulebase and scorer-weight files.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inferlab/inferlab/pkg/inferlab/kb"
)

// Rulebase is the on-disk YAML description of a knowledge base.
type Rulebase struct {
	Name  string   `yaml:"name"`
	Rules []string `yaml:"rules"`
	Facts []string `yaml:"facts"`
	Goals []string `yaml:"goals"`
}

// LoadRulebase loads a rulebase definition from a YAML file.
func LoadRulebase(path string) (*Rulebase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rb Rulebase
	if err := yaml.Unmarshal(data, &rb); err != nil {
		return nil, err
	}
	return &rb, nil
}

// Save writes the rulebase definition to a YAML file.
func (rb *Rulebase) Save(path string) error {
	data, err := yaml.Marshal(rb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Build materializes the rulebase into a knowledge base.
func (rb *Rulebase) Build() (*kb.KnowledgeBase, error) {
	base := kb.New(rb.Name)
	for _, text := range rb.Rules {
		if _, err := base.AddRuleText(text); err != nil {
			return nil, err
		}
	}
	base.SetFacts(rb.Facts)
	return base, nil
}

// LoadKnowledgeBase loads a YAML rulebase and returns the built
// knowledge base together with its default goals.
func LoadKnowledgeBase(path string) (*kb.KnowledgeBase, []string, error) {
	rb, err := LoadRulebase(path)
	if err != nil {
		return nil, nil, err
	}
	base, err := rb.Build()
	if err != nil {
		return nil, nil, err
	}
	return base, rb.Goals, nil
}

// Weights is a per-condition symptom weight table for the diagnosis
// scorer. Positive weights are supporting evidence, negative weights
// contra-indications.
type Weights struct {
	Conditions map[string]map[string]float64 `yaml:"conditions"`
}

// LoadWeights loads a scorer weight table from a YAML file.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}
