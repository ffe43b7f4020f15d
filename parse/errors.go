package parse

import "errors"

var (
	// ErrIllegalTransition is returned when a transition precondition fails:
	// empty buffer on SHIFT, fewer than two stack elements on an arc, or an
	// attempt to make the root a dependent.
	ErrIllegalTransition = errors.New("parse: illegal transition")

	// ErrUnknownTransition is returned for a malformed transition value.
	ErrUnknownTransition = errors.New("parse: unknown transition")

	// ErrOracleExhausted is returned when the oracle is asked for a
	// transition on a complete parse.
	ErrOracleExhausted = errors.New("parse: partial parse already completed")

	// ErrNoDerivation is returned when no transition leads to the gold tree,
	// typically because the tree is not projective.
	ErrNoDerivation = errors.New("parse: no derivation for gold tree")

	// ErrBatchSize is returned by the batch driver for a batch size below 1.
	ErrBatchSize = errors.New("parse: batch size must be at least 1")

	// ErrPredictorMismatch is returned when a predictor does not return
	// exactly one proposal per state.
	ErrPredictorMismatch = errors.New("parse: predictor returned wrong number of proposals")
)
