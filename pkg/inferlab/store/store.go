// Package store persists the history of inference runs for the
// presentation layers. The engines never touch it; a run record is an
// after-the-fact audit entry, not engine state.
package store

import (
	"context"
	"time"
)

// Mode labels which engine produced a run.
const (
	ModeForward  = "forward"
	ModeBackward = "backward"
)

// Run is one recorded inference run.
type Run struct {
	ID         string        `json:"id"`
	Mode       string        `json:"mode"`
	Success    bool          `json:"success"`
	Goals      []string      `json:"goals"`
	FinalFacts []string      `json:"final_facts"`
	RuleIDs    []int         `json:"rule_ids"` // fired (forward) or used (backward), in order
	Elapsed    time.Duration `json:"elapsed_ns"`
	CreatedAt  time.Time     `json:"created_at"`
	TraceJSON  string        `json:"trace,omitempty"` // serialized trace, opaque to the store
}

// Store is the interface for persisting and querying run history.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
