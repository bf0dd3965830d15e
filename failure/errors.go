package failure

import "errors"

// Sentinel errors for failure-policy evaluation (spec §7).
var (
	// ErrZeroSumWeights indicates every mode in a policy has weight 0.
	ErrZeroSumWeights = errors.New("failure: all mode weights are zero")

	// ErrUnknownScope indicates a rule names a scope other than
	// node/link/risk_group.
	ErrUnknownScope = errors.New("failure: unknown rule scope")

	// ErrUnknownSelectionKind indicates a rule names a selection kind
	// other than all/random/choice.
	ErrUnknownSelectionKind = errors.New("failure: unknown selection kind")

	// ErrInvalidOperator indicates a condition names an operator outside
	// the §6.5 set.
	ErrInvalidOperator = errors.New("failure: unknown condition operator")

	// ErrInvalidConditionOperand indicates a numeric operator (<, <=, >,
	// >=) or a contains/in operator was applied to a non-comparable
	// operand.
	ErrInvalidConditionOperand = errors.New("failure: operand not valid for this condition operator")

	// ErrMalformedSelector wraps a regexp.Compile failure on a rule's
	// name-pattern filter.
	ErrMalformedSelector = errors.New("failure: malformed name-pattern selector")

	// ErrNonPositiveChoiceCount indicates a choice selection's count is
	// <= 0.
	ErrNonPositiveChoiceCount = errors.New("failure: choice selection count must be positive")

	// ErrInvalidProbability indicates a random selection's probability is
	// outside [0, 1].
	ErrInvalidProbability = errors.New("failure: random selection probability must be within [0,1]")
)
