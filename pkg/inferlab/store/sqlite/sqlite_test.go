package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/inferlab/pkg/inferlab/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := store.Run{
		ID:         "run-1",
		Mode:       store.ModeForward,
		Success:    true,
		Goals:      []string{"r"},
		FinalFacts: []string{"a", "b", "r"},
		RuleIDs:    []int{9, 10, 16},
		Elapsed:    2500 * time.Microsecond,
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TraceJSON:  `[{"step":0,"note":"initial state"}]`,
	}
	require.NoError(t, s.SaveRun(ctx, run))

	got, ok, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run.Mode, got.Mode)
	assert.Equal(t, run.Goals, got.Goals)
	assert.Equal(t, run.FinalFacts, got.FinalFacts)
	assert.Equal(t, run.RuleIDs, got.RuleIDs)
	assert.Equal(t, run.Elapsed, got.Elapsed)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.TraceJSON, got.TraceJSON)
}

func TestGetMissingRun(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.GetRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := []string{"run-a", "run-b", "run-c"}
	for i, id := range ids {
		require.NoError(t, s.SaveRun(ctx, store.Run{
			ID:        id,
			Mode:      store.ModeBackward,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
}

func TestSaveRunReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, store.Run{ID: "run-1", Mode: store.ModeForward}))
	require.NoError(t, s.SaveRun(ctx, store.Run{ID: "run-1", Mode: store.ModeForward, Success: true}))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Success)
}

func TestFileBackedStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(ctx, store.Run{ID: "run-1", Mode: store.ModeForward}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
