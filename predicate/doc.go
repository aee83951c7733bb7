// Package predicate evaluates comparison operators between dynamic values
// and turns the loosely-typed argument lists accepted by filtering
// operations into a single canonical [Predicate].
//
// # Operators
//
// The operator set is closed:
//
//	=  ==          equality (aliases)
//	~= != <>       inequality (aliases)
//	>= <= < >      ordering
//
// Equality is structural: two sequences or mappings are equal when they hold
// the same keys and every corresponding value is recursively equal. All Go
// integer and floating-point kinds form a single numeric type, so 2, int64(2)
// and 2.0 compare equal. Ordering is defined only between two numbers or two
// strings; anything else fails with [ErrTypeMismatch] rather than quietly
// returning false.
//
//	predicate.Evaluate(predicate.OpEq, 2, 2)     // true, nil
//	predicate.Evaluate(predicate.OpGt, "b", "a") // true, nil
//	predicate.Evaluate(predicate.OpGt, 1, "x")   // false, ErrTypeMismatch
//
// # Call shapes
//
// [Parse] resolves the argument forms used by where-style operations once,
// at the API boundary:
//
//	Parse(fn)                 // caller-supplied closure
//	Parse(2)                  // equality against the entry itself
//	Parse(">", 2)             // operator against the entry itself
//	Parse("age", 30)          // equality at path
//	Parse("age", ">=", 30)    // operator at path
//
// # Expressions
//
// [Filter] and [Comparator] compile CEL expressions (github.com/google/cel-go)
// into predicates and sort comparators respectively.
package predicate
