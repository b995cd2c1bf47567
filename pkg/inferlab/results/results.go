// Package results defines the records an inference run produces.
// They are constructed once per run and never mutated after return;
// presentation layers and the run store consume them as-is.
package results

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a fresh, sortable run identifier.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// StepTrace is one snapshot of the forward-chaining loop. Step 0 is
// the seeded initial state.
type StepTrace struct {
	Step      int      `json:"step"`
	RuleID    int      `json:"rule_id,omitempty"` // 0 when no rule fired this step
	Known     []string `json:"known_facts"`       // sorted
	Agenda    []int    `json:"agenda"`            // candidate structure contents, in order
	Remaining []int    `json:"remaining_rules"`   // sorted, not yet fired
	Fired     []int    `json:"fired_rules"`       // cumulative, in firing order
	Note      string   `json:"note,omitempty"`
}

// ForwardResult is the outcome of a forward-chaining run.
type ForwardResult struct {
	RunID      string        `json:"run_id"`
	Success    bool          `json:"success"`
	Goals      []string      `json:"goals"`       // sorted
	FinalFacts []string      `json:"final_facts"` // sorted
	Fired      []int         `json:"fired_rules"` // firing order
	History    []StepTrace   `json:"history"`
	Structure  string        `json:"structure"`
	TieBreak   string        `json:"tie_break"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	// GraphFiles maps graph label (fpg, rpg) to a rendered artifact
	// path; empty when the graph collaborator is absent or disabled.
	GraphFiles map[string]string `json:"graph_files,omitempty"`
}

// BackwardResult is the outcome of a backward-chaining run.
type BackwardResult struct {
	RunID      string            `json:"run_id"`
	Success    bool              `json:"success"`
	Goals      []string          `json:"goals"`       // caller-supplied order
	FinalKnown []string          `json:"final_known"` // sorted
	UsedRules  []int             `json:"used_rules"`  // order goals became proven
	Steps      []string          `json:"steps"`       // narrative trace
	TieBreak   string            `json:"tie_break"`
	Elapsed    time.Duration     `json:"elapsed_ns"`
	GraphFiles map[string]string `json:"graph_files,omitempty"`
}
