package internalerr

import "github.com/cockroachdb/errors"

// Sentinel errors for common cases. Check with errors.Is after
// unwrapping; call sites add context with errors.Wrap/Wrapf.
var (
	// Input validation (rejected before any inference work starts)
	ErrNoRules       = errors.New("rule set is empty")
	ErrNoGoals       = errors.New("goal set is empty")
	ErrInvalidOption = errors.New("invalid option")
	ErrEmptyAtom     = errors.New("atom is empty")

	// Rule-text parsing
	ErrMissingArrow      = errors.New("rule has no arrow")
	ErrMissingPremises   = errors.New("rule is missing premises")
	ErrMissingConclusion = errors.New("rule is missing conclusion")

	// Knowledge-base lookups
	ErrUnknownRuleID = errors.New("unknown rule id")
	ErrIDConflict    = errors.New("rule id already in use")

	// Backward chaining depth ceiling
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)

// IsValidation reports whether err belongs to the validation category:
// empty inputs, unrecognized options, or malformed rule text.
func IsValidation(err error) bool {
	return errors.IsAny(err,
		ErrNoRules,
		ErrNoGoals,
		ErrInvalidOption,
		ErrEmptyAtom,
		ErrMissingArrow,
		ErrMissingPremises,
		ErrMissingConclusion,
	)
}
