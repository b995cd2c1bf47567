// Package infer implements the two dual reasoning modes: forward
// chaining (derive everything reachable from known facts) and backward
// chaining (prove specific goals by recursive rule search). Engines
// never mutate their inputs; each run works on a private copy of the
// fact set and a snapshot of the rule list.
package infer

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/inferlab/inferlab/pkg/inferlab/internalerr"
)

// Structure selects the forward-chaining candidate structure.
type Structure string

const (
	StructureStack Structure = "stack" // LIFO: select from the end
	StructureQueue Structure = "queue" // FIFO: select from the front
)

// TieBreak is the rule-id ordering policy applied to simultaneously
// applicable rules.
type TieBreak string

const (
	TieBreakMin TieBreak = "min" // lower id considered first
	TieBreakMax TieBreak = "max" // higher id considered first
)

// DefaultMaxDepth bounds backward-chaining recursion. The cycle guard
// already prevents livelock; the ceiling protects the call stack on
// pathologically deep rule chains.
const DefaultMaxDepth = 256

// ParseStructure normalizes a structure name, defaulting to stack.
func ParseStructure(s string) (Structure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StructureStack):
		return StructureStack, nil
	case string(StructureQueue):
		return StructureQueue, nil
	default:
		return "", errors.Wrapf(internalerr.ErrInvalidOption,
			"structure must be one of: stack, queue (got %q)", s)
	}
}

// ParseTieBreak normalizes a tie-break name, defaulting to min.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(TieBreakMin):
		return TieBreakMin, nil
	case string(TieBreakMax):
		return TieBreakMax, nil
	default:
		return "", errors.Wrapf(internalerr.ErrInvalidOption,
			"tie-break must be one of: min, max (got %q)", s)
	}
}

// ForwardOptions configures a forward-chaining run. Zero values mean
// stack selection with min tie-break.
type ForwardOptions struct {
	Structure Structure
	TieBreak  TieBreak
}

// BackwardOptions configures a backward-chaining run. Zero values mean
// min tie-break with DefaultMaxDepth.
type BackwardOptions struct {
	TieBreak TieBreak
	MaxDepth int
}
