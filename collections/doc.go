// Package collections provides a fluent Container over a single dynamic
// slice or map, inspired by Laravel's Illuminate/Collections.
//
// # Overview
//
// A [Container] wraps one value and classifies it, on demand, as a
// [Sequence] (keys exactly 1..N, every Go slice) or a [Mapping] (any other
// key set). Operations reach into nested entries with separator-delimited
// paths (package arr) and compare values with the operators of package
// predicate:
//
//	names, err := collections.FromValue(users).
//	    Where("age", ">=", 18).
//	    WhereNotNil("email").
//	    SortBy("name").
//	    Pluck("name").
//	    Value()
//
// Positions are 1-based. Negative positions count from the end, so Get(-1)
// is the last element of a Sequence.
//
// # Copy and in-place operations
//
// Filters and actions return a new Container over freshly allocated storage.
// Sorts and updates (Set, SetPath, Forget, Transform) write into the
// Container they are called on and return it. Use [FromClone] to work on a
// private deep copy.
//
// # Deferred mode
//
// A Container built with [Deferred] (or switched with [Container.Defer])
// records operations instead of running them. [Container.Materialize] runs
// every recorded filter, then every action, then every update, whatever
// order they were chained in:
//
//	c := collections.FromValue(rows, collections.Deferred())
//	c.SortBy("score").Set(1, "winner").Where("active", true)
//	out, err := c.Materialize() // where → sortBy → set
//
// A failed materialization leaves the wrapped value and the recorded steps
// as they were.
//
// # Operations by name
//
// Every operation is also reachable through [Container.Call], which is how
// the fluent CLI applies steps. Names outside the built-in catalogue are
// looked up in a [Registry]:
//
//	collections.RegisterOperation("evens", func(c *collections.Container, _ ...any) (any, error) {
//	    return c.Where(func(v any) bool { n, _ := v.(int); return n%2 == 0 }).Value()
//	}, collections.AsFilter())
//
//	collections.New(1, 2, 3, 4).Call("evens") // [2, 4]
//
// # Errors
//
// Failures are reported as [*OpError] values wrapping one of [ErrShape],
// [ErrTypeMismatch], [ErrPath], [ErrArgument] or [ErrUnknownOperation]. A
// failed call yields a failed Container and leaves its receiver untouched.
package collections
