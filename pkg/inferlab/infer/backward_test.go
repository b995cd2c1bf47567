package infer

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
)

func TestBackwardSimpleChain(t *testing.T) {
	ruleSet := mustRules(t, "a -> b", "b -> c")

	res, err := Backward(ruleSet, []string{"c"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	// b is proven before c, so R1 is recorded before R2.
	assert.Equal(t, []int{1, 2}, res.UsedRules)
	assert.Equal(t, []string{"a", "b", "c"}, res.FinalKnown)
}

func TestBackwardTieBreak(t *testing.T) {
	ruleSet := mustRules(t, "a -> g", "b -> g")
	facts := []string{"a", "b"}

	res, err := Backward(ruleSet, []string{"g"}, facts, BackwardOptions{TieBreak: TieBreakMin})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.UsedRules)

	res, err = Backward(ruleSet, []string{"g"}, facts, BackwardOptions{TieBreak: TieBreakMax})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.UsedRules)
}

func TestBackwardCycleSafety(t *testing.T) {
	ruleSet := mustRules(t, "x -> y", "y -> x")

	res, err := Backward(ruleSet, []string{"x"}, nil, BackwardOptions{})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Empty(t, res.UsedRules)
	assert.True(t, containsLine(res.Steps, "Cycle detected while proving 'x'."))
}

func TestBackwardBacktracksToNextRule(t *testing.T) {
	// R1 concludes g but needs the unprovable q; R2 succeeds.
	ruleSet := mustRules(t, "q -> g", "a -> g")

	res, err := Backward(ruleSet, []string{"g"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, []int{2}, res.UsedRules)
	assert.True(t, containsLine(res.Steps, "No rule concludes 'q'."))
}

func TestBackwardStopsAtFirstFailedGoal(t *testing.T) {
	ruleSet := mustRules(t, "a -> b", "b -> c")

	res, err := Backward(ruleSet, []string{"nope", "c"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Empty(t, res.UsedRules)
	// c was never attempted.
	assert.NotContains(t, res.FinalKnown, "c")
	assert.True(t, containsLine(res.Steps, "!!! Failed to prove 'nope'."))
}

func TestBackwardKeepsPartialDerivations(t *testing.T) {
	// Proving target via R2 first derives m via R1, then fails on q.
	// The derived m and the used R1 survive the failure.
	ruleSet := mustRules(t, "a -> m", "m ^ q -> target")

	res, err := Backward(ruleSet, []string{"target"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.FinalKnown, "m")
	assert.Equal(t, []int{1}, res.UsedRules)
}

func TestBackwardSkipsAlreadyKnownGoal(t *testing.T) {
	ruleSet := mustRules(t, "a -> b")

	res, err := Backward(ruleSet, []string{"a", "b"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, containsLine(res.Steps, "Goal 'a' already satisfied."))
	assert.Equal(t, []int{1}, res.UsedRules)
}

func TestBackwardFailedSubgoalIsRetried(t *testing.T) {
	// q fails while proving g, and fails again while proving h: failed
	// subgoals are not memoized, so q is re-explored from scratch.
	ruleSet := mustRules(t, "q -> g", "a -> g", "q -> h")

	res, err := Backward(ruleSet, []string{"g", "h"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, []int{2}, res.UsedRules)
	explored := 0
	for _, step := range res.Steps {
		if strings.Contains(step, "No rule concludes 'q'.") {
			explored++
		}
	}
	assert.Equal(t, 2, explored)
}

func TestBackwardRecursionLimit(t *testing.T) {
	ruleSet := mustRules(t, "a -> b", "b -> c", "c -> d")

	_, err := Backward(ruleSet, []string{"d"}, []string{"a"}, BackwardOptions{MaxDepth: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrRecursionLimit))
}

func TestBackwardDeterminism(t *testing.T) {
	texts := []string{"a -> b", "b -> c", "a -> c", "c ^ b -> d"}

	first, err := Backward(mustRules(t, texts...), []string{"d"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Backward(mustRules(t, texts...), []string{"d"}, []string{"a"}, BackwardOptions{})
		require.NoError(t, err)
		assert.Equal(t, first.UsedRules, again.UsedRules)
		assert.Equal(t, first.Steps, again.Steps)
		assert.Equal(t, first.FinalKnown, again.FinalKnown)
	}
}

func TestBackwardValidation(t *testing.T) {
	ruleSet := mustRules(t, "a -> b")

	_, err := Backward(nil, []string{"b"}, nil, BackwardOptions{})
	assert.True(t, errors.Is(err, internalerr.ErrNoRules))

	_, err = Backward(ruleSet, nil, nil, BackwardOptions{})
	assert.True(t, errors.Is(err, internalerr.ErrNoGoals))

	_, err = Backward(ruleSet, []string{"b"}, nil, BackwardOptions{TieBreak: "median"})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidOption))
}

func TestBackwardGoalOrderPreserved(t *testing.T) {
	ruleSet := mustRules(t, "a -> b", "a -> c")

	res, err := Backward(ruleSet, []string{"c", "b"}, []string{"a"}, BackwardOptions{})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"c", "b"}, res.Goals)
	// Proof order follows goal order, not rule id order.
	assert.Equal(t, []int{2, 1}, res.UsedRules)
}

func containsLine(steps []string, want string) bool {
	for _, step := range steps {
		if strings.Contains(step, want) {
			return true
		}
	}
	return false
}
