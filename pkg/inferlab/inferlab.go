// Package inferlab ties the knowledge base, the two inference engines,
// and the optional collaborators (run store, graph renderer, diagnosis
// scorer) together behind one facade. The engines stay fully usable on
// their own; everything here is convenience wiring.
package inferlab

import (
	"context"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/inferlab/inferlab/pkg/inferlab/graphs"
	"github.com/inferlab/inferlab/pkg/inferlab/infer"
	"github.com/inferlab/inferlab/pkg/inferlab/kb"
	"github.com/inferlab/inferlab/pkg/inferlab/results"
	"github.com/inferlab/inferlab/pkg/inferlab/scorer"
	"github.com/inferlab/inferlab/pkg/inferlab/store"
)

// Lab is the main inference facade.
type Lab struct {
	kb         *kb.KnowledgeBase
	store      store.Store
	graphDir   string
	makeGraphs bool
	table      *scorer.Table
}

// Options configures a Lab instance.
type Options struct {
	KB         *kb.KnowledgeBase
	Store      store.Store   // optional run-history store
	GraphDir   string        // where graph artifacts land
	MakeGraphs bool          // render FPG/RPG after each run
	Scorer     *scorer.Table // diagnosis table; scorer.Default() when nil
}

// New creates a Lab with the given dependencies.
func New(opts Options) *Lab {
	base := opts.KB
	if base == nil {
		base = kb.New("")
	}
	graphDir := opts.GraphDir
	if graphDir == "" {
		graphDir = "inference_outputs"
	}
	table := opts.Scorer
	if table == nil {
		table = scorer.Default()
	}
	return &Lab{
		kb:         base,
		store:      opts.Store,
		graphDir:   graphDir,
		makeGraphs: opts.MakeGraphs,
		table:      table,
	}
}

// KB returns the underlying knowledge base for rule/fact management.
func (l *Lab) KB() *kb.KnowledgeBase { return l.kb }

// Close shuts down the run store, if one is configured.
func (l *Lab) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// ForwardRequest describes one forward-chaining run.
type ForwardRequest struct {
	Goals     []string
	Facts     []string // nil means the knowledge base's current facts
	Structure string
	TieBreak  string
}

// Forward snapshots the knowledge base and runs forward chaining.
// Collaborator failures (graphs, store) never change the result.
func (l *Lab) Forward(ctx context.Context, req ForwardRequest) (*results.ForwardResult, error) {
	snapshot := l.kb.Rules()
	facts := req.Facts
	if facts == nil {
		facts = l.kb.Facts()
	}

	res, err := infer.Forward(snapshot, facts, req.Goals, infer.ForwardOptions{
		Structure: infer.Structure(req.Structure),
		TieBreak:  infer.TieBreak(req.TieBreak),
	})
	if err != nil {
		return nil, err
	}

	if l.makeGraphs {
		files := map[string]string{}
		fpg := graphs.Renderer{Highlight: res.Fired}
		if path, err := fpg.RenderFPG(snapshot, res.FinalFacts, res.Goals, facts,
			filepath.Join(l.graphDir, "forward_fpg.svg")); err == nil && path != "" {
			files["fpg"] = path
		}
		rpg := graphs.Renderer{Rankdir: "TB", Highlight: res.Fired}
		if path, err := rpg.RenderRPG(snapshot,
			filepath.Join(l.graphDir, "forward_rpg.svg")); err == nil && path != "" {
			files["rpg"] = path
		}
		if len(files) > 0 {
			res.GraphFiles = files
		}
	}

	l.record(ctx, store.Run{
		ID:         res.RunID,
		Mode:       store.ModeForward,
		Success:    res.Success,
		Goals:      res.Goals,
		FinalFacts: res.FinalFacts,
		RuleIDs:    res.Fired,
		Elapsed:    res.Elapsed,
		TraceJSON:  marshalTrace(res.History),
	})
	return res, nil
}

// BackwardRequest describes one backward-chaining run.
type BackwardRequest struct {
	Goals    []string
	Facts    []string // nil means the knowledge base's current facts
	TieBreak string
	MaxDepth int
}

// Backward snapshots the knowledge base and runs backward chaining.
func (l *Lab) Backward(ctx context.Context, req BackwardRequest) (*results.BackwardResult, error) {
	snapshot := l.kb.Rules()
	facts := req.Facts
	if facts == nil {
		facts = l.kb.Facts()
	}

	res, err := infer.Backward(snapshot, req.Goals, facts, infer.BackwardOptions{
		TieBreak: infer.TieBreak(req.TieBreak),
		MaxDepth: req.MaxDepth,
	})
	if err != nil {
		return nil, err
	}

	if l.makeGraphs {
		renderer := graphs.Renderer{Highlight: res.UsedRules}
		if path, err := renderer.RenderFPG(snapshot, res.FinalKnown, res.Goals, facts,
			filepath.Join(l.graphDir, "backward_fpg.svg")); err == nil && path != "" {
			res.GraphFiles = map[string]string{"fpg": path}
		}
	}

	l.record(ctx, store.Run{
		ID:         res.RunID,
		Mode:       store.ModeBackward,
		Success:    res.Success,
		Goals:      res.Goals,
		FinalFacts: res.FinalKnown,
		RuleIDs:    res.UsedRules,
		Elapsed:    res.Elapsed,
		TraceJSON:  marshalTrace(res.Steps),
	})
	return res, nil
}

// Diagnosis is the outcome of a scored diagnosis pass.
type Diagnosis struct {
	Best       *scorer.ConditionScore  `json:"best,omitempty"`
	Candidates []scorer.ConditionScore `json:"candidates"`
	Derived    []string                `json:"derived_conditions"`
	Forward    *results.ForwardResult  `json:"forward"`
}

// Diagnose runs forward chaining from the given symptoms toward the
// candidate conditions, then ranks the derivable conditions with the
// symptom-weight table. An unreachable condition set is a normal
// negative result, not an error.
func (l *Lab) Diagnose(ctx context.Context, symptoms, conditions []string) (*Diagnosis, error) {
	res, err := l.Forward(ctx, ForwardRequest{Goals: conditions, Facts: symptoms})
	if err != nil {
		return nil, err
	}

	conditionSet := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		conditionSet[c] = true
	}
	var derived []string
	for _, fact := range res.FinalFacts {
		if conditionSet[fact] {
			derived = append(derived, fact)
		}
	}

	diag := &Diagnosis{Derived: derived, Forward: res}
	if len(derived) > 0 {
		diag.Candidates = l.table.Rank(symptoms, derived)
	}
	if len(diag.Candidates) > 0 {
		diag.Best = &diag.Candidates[0]
	}
	return diag, nil
}

// Scorer exposes the configured diagnosis table.
func (l *Lab) Scorer() *scorer.Table { return l.table }

// Runs lists recent run records, newest first.
func (l *Lab) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	if l.store == nil {
		return nil, nil
	}
	return l.store.ListRuns(ctx, limit)
}

// Run fetches one run record by id.
func (l *Lab) Run(ctx context.Context, id string) (store.Run, bool, error) {
	if l.store == nil {
		return store.Run{}, false, nil
	}
	return l.store.GetRun(ctx, id)
}

// record saves a run best-effort; history is an audit convenience and
// must never fail an inference call.
func (l *Lab) record(ctx context.Context, r store.Run) {
	if l.store == nil {
		return
	}
	r.CreatedAt = time.Now().UTC()
	_ = l.store.SaveRun(ctx, r)
}

func marshalTrace(trace any) string {
	data, err := json.Marshal(trace)
	if err != nil {
		return ""
	}
	return string(data)
}
