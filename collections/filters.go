package collections

import (
	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/hashing"
	"github.com/hasbyte1/go-fluent/predicate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Filters
//
// Filters keep a subset of the entries. Sequences are re-packed to positions
// 1..N in their original relative order; Mappings keep their keys.
// ─────────────────────────────────────────────────────────────────────────────

// Filter keeps the entries for which fn returns true. fn may be any shape
// accepted by [predicate.AsPredicate]. Without fn, falsy values (nil, false,
// zero numbers, "" and empty containers) are removed.
//
//	collections.New(1, 2, 3, 4).Filter(func(v any) bool { return v.(int) > 2 }) // [3, 4]
func (c *Container) Filter(fn ...any) *Container { return c.Call("filter", fn...) }

// Reject removes the entries for which fn returns true.
func (c *Container) Reject(fn any) *Container { return c.Call("reject", fn) }

// Where keeps the entries matching a where-style condition:
//
//	Where(value)              // entry == value
//	Where(op, value)          // entry <op> value, e.g. Where(">", 2)
//	Where(path, value)        // entry.path == value
//	Where(path, op, value)    // entry.path <op> value
//	Where(func(v any) bool)   // closure
//
// Entries whose path does not resolve never match.
func (c *Container) Where(args ...any) *Container { return c.Call("where", args...) }

// WhereNot removes the entries [Container.Where] would keep.
func (c *Container) WhereNot(args ...any) *Container { return c.Call("whereNot", args...) }

// WhereNil keeps entries whose path is missing or holds nil.
func (c *Container) WhereNil(path ...string) *Container { return c.Call("whereNil", pathArgs(path)...) }

// WhereNotNil keeps entries whose path resolves to a non-nil value.
func (c *Container) WhereNotNil(path ...string) *Container {
	return c.Call("whereNotNil", pathArgs(path)...)
}

// WhereHas keeps entries in which path resolves, whatever its value.
func (c *Container) WhereHas(path string) *Container { return c.Call("whereHas", path) }

// WhereMissing keeps entries in which path does not resolve.
func (c *Container) WhereMissing(path string) *Container { return c.Call("whereMissing", path) }

// WhereIn keeps entries whose path value equals one of values.
func (c *Container) WhereIn(path string, values any) *Container {
	return c.Call("whereIn", path, values)
}

// WhereNotIn keeps entries whose path value equals none of values.
func (c *Container) WhereNotIn(path string, values any) *Container {
	return c.Call("whereNotIn", path, values)
}

// WhereBetween keeps entries whose path value lies in [lo, hi].
func (c *Container) WhereBetween(path string, lo, hi any) *Container {
	return c.Call("whereBetween", path, lo, hi)
}

// WhereExpr keeps entries for which the CEL expression holds. The
// expression sees the variables value and key:
//
//	c.WhereExpr(`value.age >= 18 && value.name.startsWith("A")`)
func (c *Container) WhereExpr(expr string) *Container { return c.Call("whereExpr", expr) }

// Unique keeps the first entry of each distinct value, or of each distinct
// value at path / returned by a key function.
func (c *Container) Unique(by ...any) *Container { return c.Call("unique", by...) }

// Only keeps the given keys (positions on a Sequence).
func (c *Container) Only(keys ...any) *Container { return c.Call("only", keys...) }

// Except removes the given keys (positions on a Sequence).
func (c *Container) Except(keys ...any) *Container { return c.Call("except", keys...) }

func pathArgs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// keep is the body shared by every filter.
func keep(in *Container, pred predicate.Predicate) (any, error) {
	shape, err := Classify(in.value)
	if err != nil {
		return nil, err
	}
	entries := arr.Entries(in.value)
	kept := make([]arr.Entry, 0, len(entries))
	for _, e := range entries {
		ok, err := pred(e.Value, e.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, e)
		}
	}
	return rebuild(shape, in.value, kept), nil
}

func filtering(pred predicate.Predicate) applyFunc {
	return func(in *Container) (any, error) { return keep(in, pred) }
}

func prepareFilter(negate bool) prepareFunc {
	return func(_ *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 0, 1); err != nil {
			return nil, err
		}
		var pred predicate.Predicate
		if len(args) == 0 {
			pred = func(value, _ any) (bool, error) { return truthy(value), nil }
		} else {
			p, ok := predicate.AsPredicate(args[0])
			if !ok {
				return nil, argError("expected a predicate function, got %T", args[0])
			}
			pred = p
		}
		if negate {
			pred = predicate.Not(pred)
		}
		return filtering(pred), nil
	}
}

func prepareWhere(negate bool) prepareFunc {
	return func(c *Container, args []any) (applyFunc, error) {
		pred, err := c.MakePredicate(args...)
		if err != nil {
			return nil, err
		}
		if negate {
			pred = predicate.Not(pred)
		}
		return filtering(pred), nil
	}
}

// prepareResolved builds filters that look only at the outcome of resolving
// a single path.
func prepareResolved(optional bool, match func(v any, found bool) bool) prepareFunc {
	return func(c *Container, args []any) (applyFunc, error) {
		var path string
		var err error
		if optional {
			path, err = optPath(args)
		} else if err = wantArgs(args, 1, 1); err == nil {
			path, err = stringArg(args, 0, "path")
		}
		if err != nil {
			return nil, err
		}
		resolve := c.cfg.resolver().Resolve
		return filtering(func(value, _ any) (bool, error) {
			v, found, err := resolve(value, path)
			if err != nil {
				return false, err
			}
			return match(v, found), nil
		}), nil
	}
}

func isNil(v any) bool { return predicate.Equal(v, nil) }

func prepareWhereIn(negate bool) prepareFunc {
	return func(c *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 2, 2); err != nil {
			return nil, err
		}
		path, err := stringArg(args, 0, "path")
		if err != nil {
			return nil, err
		}
		if !arr.IsContainer(args[1]) {
			return nil, argError("values must be a slice or map, got %T", args[1])
		}
		candidates := valuesOf(arr.Entries(args[1]))
		resolve := c.cfg.resolver().Resolve
		return filtering(func(value, _ any) (bool, error) {
			v, found, err := resolve(value, path)
			if err != nil || !found {
				return false, err
			}
			for _, want := range candidates {
				if predicate.Equal(v, want) {
					return !negate, nil
				}
			}
			return negate, nil
		}), nil
	}
}

func prepareWhereBetween(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 3, 3); err != nil {
		return nil, err
	}
	path, err := stringArg(args, 0, "path")
	if err != nil {
		return nil, err
	}
	lo, hi := args[1], args[2]
	resolve := c.cfg.resolver().Resolve
	return filtering(func(value, _ any) (bool, error) {
		v, found, err := resolve(value, path)
		if err != nil || !found {
			return false, err
		}
		above, err := predicate.Evaluate(predicate.OpGe, v, lo)
		if err != nil || !above {
			return false, err
		}
		return predicate.Evaluate(predicate.OpLe, v, hi)
	}), nil
}

func prepareWhereExpr(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	var e *predicate.Expr
	switch src := args[0].(type) {
	case string:
		compiled, err := predicate.Filter(src)
		if err != nil {
			return nil, err
		}
		e = compiled
	case *predicate.Expr:
		e = src
	default:
		return nil, argError("expected a CEL expression, got %T", args[0])
	}
	return filtering(e.Match), nil
}

func prepareUnique(c *Container, args []any) (applyFunc, error) {
	by, err := optExtractor(c, args)
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) {
		seen := make(map[hashing.Sum]struct{})
		return keep(in, func(value, key any) (bool, error) {
			k, _, err := by(value, key)
			if err != nil {
				return false, err
			}
			sum := hashing.Of(k)
			if _, dup := seen[sum]; dup {
				return false, nil
			}
			seen[sum] = struct{}{}
			return true, nil
		})
	}, nil
}

func prepareKeys(exclude bool) prepareFunc {
	return func(_ *Container, args []any) (applyFunc, error) {
		keys := flatArgs(args)
		return func(in *Container) (any, error) {
			shape, err := Classify(in.value)
			if err != nil {
				return nil, err
			}
			n := arr.Len(in.value)
			want := make(map[any]struct{}, len(keys))
			for _, k := range keys {
				want[predicate.NormalizeKey(k)] = struct{}{}
				if p, ok := position(k); ok && p < 0 && shape == Sequence {
					want[predicate.NormalizeKey(normalizePosition(p, n))] = struct{}{}
				}
			}
			return keep(in, func(_, key any) (bool, error) {
				_, listed := want[predicate.NormalizeKey(key)]
				return listed != exclude, nil
			})
		}, nil
	}
}
