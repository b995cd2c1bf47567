package web

import (
	"net/http"
	"strconv"

	"github.com/inferlab/inferlab/pkg/inferlab"
	"github.com/inferlab/inferlab/pkg/inferlab/rules"
)

// ruleJSON is the wire shape of a rule.
type ruleJSON struct {
	ID         int      `json:"id"`
	Premises   []string `json:"premises"`
	Conclusion string   `json:"conclusion"`
	Text       string   `json:"text"`
}

func toRuleJSON(r rules.Rule) ruleJSON {
	return ruleJSON{ID: r.ID, Premises: r.Premises, Conclusion: r.Conclusion, Text: r.Text()}
}

func (s *Server) handleKB(w http.ResponseWriter, r *http.Request) {
	base := s.lab.KB()
	writeJSON(w, http.StatusOK, map[string]any{
		"name":       base.Name(),
		"rule_count": base.RuleCount(),
		"fact_count": base.FactCount(),
		"summary":    base.Summary(),
	})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	all := s.lab.KB().Rules()
	out := make([]ruleJSON, 0, len(all))
	for _, rule := range all {
		out = append(out, toRuleJSON(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string   `json:"text"`
		Premises   []string `json:"premises"`
		Conclusion string   `json:"conclusion"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	var (
		rule rules.Rule
		err  error
	)
	if req.Text != "" {
		rule, err = s.lab.KB().AddRuleText(req.Text)
	} else {
		rule, err = s.lab.KB().AddRule(req.Premises, req.Conclusion)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Infow("rule added", "id", rule.ID, "text", rule.Text())
	writeJSON(w, http.StatusCreated, toRuleJSON(rule))
}

func (s *Server) ruleID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rule id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ruleID(w, r)
	if !ok {
		return
	}
	rule, err := s.lab.KB().GetRule(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleJSON(rule))
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ruleID(w, r)
	if !ok {
		return
	}
	var req struct {
		Premises   []string `json:"premises"`
		Conclusion string   `json:"conclusion"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	rule, err := s.lab.KB().UpdateRule(id, req.Premises, req.Conclusion)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Infow("rule updated", "id", rule.ID, "text", rule.Text())
	writeJSON(w, http.StatusOK, toRuleJSON(rule))
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := s.ruleID(w, r)
	if !ok {
		return
	}
	rule, err := s.lab.KB().RemoveRule(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Infow("rule removed", "id", rule.ID)
	writeJSON(w, http.StatusOK, toRuleJSON(rule))
}

func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lab.KB().Facts())
}

func (s *Server) handleAddFact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fact string `json:"fact"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	fact, err := s.lab.KB().AddFact(req.Fact)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"fact": fact})
}

func (s *Server) handleDeleteFact(w http.ResponseWriter, r *http.Request) {
	fact := r.PathValue("fact")
	s.lab.KB().RemoveFact(fact)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals     []string `json:"goals"`
		Facts     []string `json:"facts"`
		Structure string   `json:"structure"`
		TieBreak  string   `json:"tiebreak"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	res, err := s.lab.Forward(r.Context(), inferlab.ForwardRequest{
		Goals:     req.Goals,
		Facts:     req.Facts,
		Structure: req.Structure,
		TieBreak:  req.TieBreak,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Infow("forward run", "run_id", res.RunID, "success", res.Success, "fired", len(res.Fired))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBackward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals    []string `json:"goals"`
		Facts    []string `json:"facts"`
		TieBreak string   `json:"tiebreak"`
		MaxDepth int      `json:"max_depth"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	res, err := s.lab.Backward(r.Context(), inferlab.BackwardRequest{
		Goals:    req.Goals,
		Facts:    req.Facts,
		TieBreak: req.TieBreak,
		MaxDepth: req.MaxDepth,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Infow("backward run", "run_id", res.RunID, "success", res.Success, "used", len(res.UsedRules))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms   []string `json:"symptoms"`
		Conditions []string `json:"conditions"`
	}
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	conditions := req.Conditions
	if len(conditions) == 0 {
		conditions = s.lab.Scorer().Conditions()
	}
	diag, err := s.lab.Diagnose(r.Context(), req.Symptoms, conditions)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diag)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	runs, err := s.lab.Runs(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok, err := s.lab.Run(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}
