package predicate

import "errors"

// Sentinel errors returned by predicate evaluation and construction.
var (
	// ErrTypeMismatch is returned when an ordering operator is applied to
	// values that are not mutually ordered (mixed types, containers, nil).
	ErrTypeMismatch = errors.New("predicate: type mismatch")

	// ErrArgument is returned for structurally invalid predicate arguments:
	// unknown operator tokens, unsupported call shapes, bad expressions.
	ErrArgument = errors.New("predicate: invalid argument")

	// ErrExpr is returned when a compiled expression fails at evaluation
	// time or yields a result of the wrong type.
	ErrExpr = errors.New("predicate: expression evaluation failed")
)
