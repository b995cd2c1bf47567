package kb

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
)

func TestAddRuleAssignsSequentialIDs(t *testing.T) {
	base := New("test")

	r1, err := base.AddRule([]string{"a"}, "b")
	require.NoError(t, err)
	r2, err := base.AddRule([]string{"b"}, "c")
	require.NoError(t, err)

	assert.Equal(t, 1, r1.ID)
	assert.Equal(t, 2, r2.ID)
}

func TestAddRuleWithID(t *testing.T) {
	base := New("test")

	_, err := base.AddRuleWithID(10, []string{"a"}, "b")
	require.NoError(t, err)

	// Counter advances past the explicit id.
	next, err := base.AddRule([]string{"b"}, "c")
	require.NoError(t, err)
	assert.Equal(t, 11, next.ID)

	_, err = base.AddRuleWithID(10, []string{"x"}, "y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrIDConflict))
}

func TestRemovedIDsAreNeverReused(t *testing.T) {
	base := New("test")

	_, err := base.AddRule([]string{"a"}, "b")
	require.NoError(t, err)
	r2, err := base.AddRule([]string{"b"}, "c")
	require.NoError(t, err)

	_, err = base.RemoveRule(r2.ID)
	require.NoError(t, err)

	r3, err := base.AddRule([]string{"c"}, "d")
	require.NoError(t, err)
	assert.Equal(t, 3, r3.ID)
}

func TestGetUpdateRemoveUnknownID(t *testing.T) {
	base := New("test")

	_, err := base.GetRule(99)
	assert.True(t, errors.Is(err, internalerr.ErrUnknownRuleID))

	_, err = base.UpdateRule(99, []string{"a"}, "b")
	assert.True(t, errors.Is(err, internalerr.ErrUnknownRuleID))

	_, err = base.RemoveRule(99)
	assert.True(t, errors.Is(err, internalerr.ErrUnknownRuleID))
}

func TestUpdateRuleReplacesInPlace(t *testing.T) {
	base := New("test")
	rule, err := base.AddRule([]string{"a", "b"}, "c")
	require.NoError(t, err)

	updated, err := base.UpdateRule(rule.ID, []string{"x"}, "y")
	require.NoError(t, err)
	assert.Equal(t, rule.ID, updated.ID)
	assert.Equal(t, []string{"x"}, updated.Premises)
	assert.Equal(t, "y", updated.Conclusion)

	// Partial update keeps the other side.
	updated, err = base.UpdateRule(rule.ID, nil, "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, updated.Premises)
	assert.Equal(t, "z", updated.Conclusion)
}

func TestRulesEnumeratedAscending(t *testing.T) {
	base := New("test")
	_, err := base.AddRuleWithID(7, []string{"a"}, "b")
	require.NoError(t, err)
	_, err = base.AddRuleWithID(2, []string{"b"}, "c")
	require.NoError(t, err)
	_, err = base.AddRule([]string{"c"}, "d") // id 8
	require.NoError(t, err)

	var ids []int
	for _, rule := range base.Rules() {
		ids = append(ids, rule.ID)
	}
	assert.Equal(t, []int{2, 7, 8}, ids)
}

func TestFactManagement(t *testing.T) {
	base := New("test")

	atom, err := base.AddFact("  fever ")
	require.NoError(t, err)
	assert.Equal(t, "fever", atom)
	assert.True(t, base.HasFact("fever"))

	_, err = base.AddFact("   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrEmptyAtom))

	base.SetFacts([]string{" a ", "", "b", "a"})
	assert.Equal(t, []string{"a", "b"}, base.Facts())

	base.RemoveFact("a")
	assert.Equal(t, []string{"b"}, base.Facts())

	base.ClearFacts()
	assert.Empty(t, base.Facts())
}

func TestLoadAndExportRulesText(t *testing.T) {
	base := New("test")
	err := base.LoadRulesText("a, b -> c\n\n# comment\nc => d\n")
	require.NoError(t, err)
	assert.Equal(t, 2, base.RuleCount())
	assert.Equal(t, "a ^ b -> c\nc -> d", base.ExportRulesText())
}

func TestLoadRulesTextBadLine(t *testing.T) {
	base := New("test")
	err := base.LoadRulesText("a -> b\nno arrow here\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrMissingArrow))
}

func TestAddRuleValidatesParts(t *testing.T) {
	base := New("test")

	_, err := base.AddRule(nil, "c")
	assert.True(t, errors.Is(err, internalerr.ErrMissingPremises))

	_, err = base.AddRule([]string{"a"}, "  ")
	assert.True(t, errors.Is(err, internalerr.ErrMissingConclusion))
}

func TestCloneIsolation(t *testing.T) {
	base := New("original")
	_, err := base.AddRule([]string{"a"}, "b")
	require.NoError(t, err)
	_, err = base.AddFact("a")
	require.NoError(t, err)

	clone := base.Clone()
	_, err = clone.AddRule([]string{"b"}, "c")
	require.NoError(t, err)
	clone.ClearFacts()

	assert.Equal(t, 1, base.RuleCount())
	assert.Equal(t, []string{"a"}, base.Facts())
	assert.Equal(t, 2, clone.RuleCount())

	// The clone's counter continues from the original's.
	rule, err := clone.AddRule([]string{"c"}, "d")
	require.NoError(t, err)
	assert.Equal(t, 3, rule.ID)
}

func TestGetRuleReturnsCopy(t *testing.T) {
	base := New("test")
	added, err := base.AddRule([]string{"a", "b"}, "c")
	require.NoError(t, err)

	got, err := base.GetRule(added.ID)
	require.NoError(t, err)
	got.Premises[0] = "mutated"

	again, err := base.GetRule(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Premises[0])
}

func TestSummary(t *testing.T) {
	base := New("demo")
	_, err := base.AddRule([]string{"a"}, "b")
	require.NoError(t, err)
	assert.Equal(t, "demo: 1 rule(s), 0 fact(s)", base.Summary())
}
