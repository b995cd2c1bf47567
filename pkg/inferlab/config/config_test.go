package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulebase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rb.yaml")
	content := `name: demo
rules:
  - "a, b -> c"
  - "c => d"
facts: [a, b]
goals: [d]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rb, err := LoadRulebase(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", rb.Name)
	assert.Len(t, rb.Rules, 2)
	assert.Equal(t, []string{"d"}, rb.Goals)

	base, goals, err := LoadKnowledgeBase(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", base.Name())
	assert.Equal(t, 2, base.RuleCount())
	assert.Equal(t, []string{"a", "b"}, base.Facts())
	assert.Equal(t, []string{"d"}, goals)
}

func TestBuildRejectsBadRuleText(t *testing.T) {
	rb := &Rulebase{Name: "bad", Rules: []string{"no arrow"}}
	_, err := rb.Build()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	rb := &Rulebase{
		Name:  "demo",
		Rules: []string{"a -> b"},
		Facts: []string{"a"},
		Goals: []string{"b"},
	}
	require.NoError(t, rb.Save(path))

	loaded, err := LoadRulebase(path)
	require.NoError(t, err)
	assert.Equal(t, rb, loaded)
}

func TestLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	content := `conditions:
  flu:
    fever: 0.8
    cough: 0.6
    rash: -0.3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w, err := LoadWeights(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, w.Conditions["flu"]["fever"], 1e-9)
	assert.InDelta(t, -0.3, w.Conditions["flu"]["rash"], 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadRulebase(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
