package domain

import "errors"

// Load-time errors. Both are fatal to the caller: a rule set that cannot be
// located or parsed is never partially served.
var (
	ErrRuleSetNotFound  = errors.New("rule set not found")
	ErrMalformedRuleSet = errors.New("malformed rule set")
)

// Workflow errors. All are recoverable by the caller (re-prompt, re-fetch)
// and must never be silently swallowed.
var (
	ErrAlreadyFinalized  = errors.New("case already has a final disposition")
	ErrNoDraft           = errors.New("no disposition draft exists for the case")
	ErrRationaleRequired = errors.New("override requires a non-empty rationale")
)

// Validation errors for data crossing the core's boundary.
var (
	ErrInvalidTier     = errors.New("invalid urgency tier")
	ErrInvalidPathway  = errors.New("invalid care pathway")
	ErrInvalidOperator = errors.New("unsupported condition operator")
)
