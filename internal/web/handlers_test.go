package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inferlab/inferlab/pkg/inferlab"
	"github.com/inferlab/inferlab/pkg/inferlab/kb"
	"github.com/inferlab/inferlab/pkg/inferlab/sampledata"
	"github.com/inferlab/inferlab/pkg/inferlab/store/memstore"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	base, err := sampledata.Triangle().Build()
	require.NoError(t, err)
	lab := inferlab.New(inferlab.Options{KB: base, Store: memstore.New()})
	t.Cleanup(func() { lab.Close() })
	return New(lab, zap.NewNop().Sugar())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKBSummary(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/api/kb", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decode(t, w, &resp)
	assert.Equal(t, "triangle-demo", resp["name"])
	assert.EqualValues(t, 16, resp["rule_count"])
	assert.EqualValues(t, 3, resp["fact_count"])
}

func TestRuleCRUD(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/rules", map[string]string{"text": "x ^ y -> z"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created ruleJSON
	decode(t, w, &created)
	assert.Equal(t, 17, created.ID)
	assert.Equal(t, []string{"x", "y"}, created.Premises)

	w = doJSON(t, s, http.MethodGet, "/api/rules/17", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPut, "/api/rules/17", map[string]any{"conclusion": "w"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated ruleJSON
	decode(t, w, &updated)
	assert.Equal(t, "w", updated.Conclusion)
	assert.Equal(t, []string{"x", "y"}, updated.Premises) // premises untouched

	w = doJSON(t, s, http.MethodDelete, "/api/rules/17", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/rules/17", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddRuleRejectsBadText(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodPost, "/api/rules", map[string]string{"text": "no arrow here"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRules(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/api/rules", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []ruleJSON
	decode(t, w, &listed)
	require.Len(t, listed, 16)
	assert.Equal(t, 1, listed[0].ID)
}

func TestFactEndpoints(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/facts", map[string]string{"fact": "  HA  "})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "HA", resp["fact"])

	w = doJSON(t, s, http.MethodPost, "/api/facts", map[string]string{"fact": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/facts/HA", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/facts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var facts []string
	decode(t, w, &facts)
	assert.Equal(t, []string{"a", "b", "c"}, facts)
}

func TestForwardEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/forward", map[string]any{"goals": []string{"r"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RunID   string `json:"run_id"`
		Success bool   `json:"success"`
		Fired   []int  `json:"fired_rules"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, []int{9, 10, 14, 15, 16}, resp.Fired)
	require.NotEmpty(t, resp.RunID)

	// The run lands in history.
	w = doJSON(t, s, http.MethodGet, "/api/runs/"+resp.RunID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestForwardEndpointValidation(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/forward", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/forward",
		map[string]any{"goals": []string{"r"}, "structure": "heap"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackwardEndpoint(t *testing.T) {
	base := kb.New("chain")
	_, err := base.AddRuleText("a -> b")
	require.NoError(t, err)
	_, err = base.AddRuleText("b -> c")
	require.NoError(t, err)
	lab := inferlab.New(inferlab.Options{KB: base})
	s := New(lab, zap.NewNop().Sugar())

	w := doJSON(t, s, http.MethodPost, "/api/backward",
		map[string]any{"goals": []string{"c"}, "facts": []string{"a"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool  `json:"success"`
		UsedRules []int `json:"used_rules"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, []int{1, 2}, resp.UsedRules)
}

func TestDiagnoseEndpoint(t *testing.T) {
	base, err := sampledata.Medical().Build()
	require.NoError(t, err)
	lab := inferlab.New(inferlab.Options{KB: base})
	s := New(lab, zap.NewNop().Sugar())

	w := doJSON(t, s, http.MethodPost, "/api/diagnose", map[string]any{
		"symptoms": []string{"loss_of_taste", "loss_of_smell", "fever", "cough"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Best *struct {
			Condition string `json:"condition"`
		} `json:"best"`
	}
	decode(t, w, &resp)
	require.NotNil(t, resp.Best)
	assert.Equal(t, "covid19", resp.Best.Condition)
}

func TestRunsEndpoint(t *testing.T) {
	s := testServer(t)

	doJSON(t, s, http.MethodPost, "/api/forward", map[string]any{"goals": []string{"r"}})
	doJSON(t, s, http.MethodPost, "/api/forward", map[string]any{"goals": []string{"P"}})

	w := doJSON(t, s, http.MethodGet, "/api/runs?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Runs []struct {
			ID   string `json:"id"`
			Mode string `json:"mode"`
		} `json:"runs"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Runs, 2)

	w = doJSON(t, s, http.MethodGet, "/api/runs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/runs?limit=oops", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRuleIDIsNotFound(t *testing.T) {
	w := doJSON(t, testServer(t), http.MethodGet, "/api/rules/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, testServer(t), http.MethodGet, "/api/rules/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
