package collections

import (
	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sorting
//
// Sorts are Sequence-only and write the ordered values back into the
// receiver's storage. All sorts are stable. Comparing values that have no
// common order (a number and a string, say) fails with ErrTypeMismatch.
// ─────────────────────────────────────────────────────────────────────────────

// Sort orders a Sequence ascending: numbers numerically, strings by byte.
func (c *Container) Sort() *Container { return c.Call("sort") }

// SortDesc orders a Sequence descending.
func (c *Container) SortDesc() *Container { return c.Call("sortDesc") }

// SortBy orders a Sequence by the value at path or returned by a key
// function. Entries whose path is missing sort last.
func (c *Container) SortBy(by any) *Container { return c.Call("sortBy", by) }

// SortByDesc is [Container.SortBy] in descending order. Missing paths still
// sort last.
func (c *Container) SortByDesc(by any) *Container { return c.Call("sortByDesc", by) }

// SortWith orders a Sequence with a caller-supplied comparison:
// func(a, b any) bool ("a before b"), func(a, b any) int (three-way) or
// func(a, b any) (bool, error).
func (c *Container) SortWith(less any) *Container { return c.Call("sortWith", less) }

// SortExpr orders a Sequence with a CEL comparator over the variables a and
// b, yielding a bool ("a before b") or an int (three-way):
//
//	c.SortExpr(`a.price < b.price`)
func (c *Container) SortExpr(expr string) *Container { return c.Call("sortExpr", expr) }

// Shuffle puts a Sequence in random order.
func (c *Container) Shuffle() *Container { return c.Call("shuffle") }

// stableSort sorts items with a fallible less; the first error wins.
func stableSort[T any](items []T, less func(a, b T) (bool, error)) ([]T, error) {
	var failed error
	out := arr.Sort(items, func(a, b T) bool {
		if failed != nil {
			return false
		}
		ok, err := less(a, b)
		if err != nil {
			failed = err
		}
		return ok
	})
	return out, failed
}

func sortedSeq(in *Container, values []any) any {
	entries := make([]arr.Entry, len(values))
	for i, v := range values {
		entries[i] = arr.Entry{Key: i + 1, Value: v}
	}
	return rebuild(Sequence, in.value, entries)
}

func sortBody(desc bool) applyFunc {
	return func(in *Container) (any, error) {
		values, err := stableSort(valuesOf(arr.Entries(in.value)), func(a, b any) (bool, error) {
			cmp, err := predicate.Compare(a, b)
			if desc {
				return cmp > 0, err
			}
			return cmp < 0, err
		})
		if err != nil {
			return nil, err
		}
		return sortedSeq(in, values), nil
	}
}

type sortKey struct {
	value any
	key   any
	found bool
}

func prepareSortBy(desc bool) prepareFunc {
	return func(c *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 1, 1); err != nil {
			return nil, err
		}
		by, err := c.extractor(args[0])
		if err != nil {
			return nil, err
		}
		return func(in *Container) (any, error) {
			entries := arr.Entries(in.value)
			keyed := make([]sortKey, len(entries))
			for i, e := range entries {
				k, found, err := by(e.Value, e.Key)
				if err != nil {
					return nil, err
				}
				keyed[i] = sortKey{value: e.Value, key: k, found: found}
			}
			sorted, err := stableSort(keyed, func(a, b sortKey) (bool, error) {
				if !a.found || !b.found {
					return a.found && !b.found, nil
				}
				cmp, err := predicate.Compare(a.key, b.key)
				if desc {
					return cmp > 0, err
				}
				return cmp < 0, err
			})
			if err != nil {
				return nil, err
			}
			values := make([]any, len(sorted))
			for i, k := range sorted {
				values[i] = k.value
			}
			return sortedSeq(in, values), nil
		}, nil
	}
}

func prepareSortWith(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	less, err := comparator(args[0])
	if err != nil {
		return nil, err
	}
	return sortWithBody(less), nil
}

func prepareSortExpr(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	src, err := stringArg(args, 0, "expression")
	if err != nil {
		return nil, err
	}
	e, err := predicate.Comparator(src)
	if err != nil {
		return nil, err
	}
	return sortWithBody(e.Less), nil
}

func sortWithBody(less lessFunc) applyFunc {
	return func(in *Container) (any, error) {
		values, err := stableSort(valuesOf(arr.Entries(in.value)), less)
		if err != nil {
			return nil, err
		}
		return sortedSeq(in, values), nil
	}
}

func shuffleBody(in *Container) (any, error) {
	return sortedSeq(in, arr.Shuffle(valuesOf(arr.Entries(in.value)))), nil
}
