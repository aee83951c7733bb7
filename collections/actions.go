package collections

import (
	"fmt"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/hashing"
	"github.com/hasbyte1/go-fluent/predicate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Actions
//
// Actions restructure the container and always return a new Container over
// new storage. Sorting actions are the exception (see sort.go).
// ─────────────────────────────────────────────────────────────────────────────

// Map replaces every value with fn(value[, key]). Keys are kept.
func (c *Container) Map(fn any) *Container { return c.Call("map", fn) }

// MapWithKeys builds a Mapping from the (key, value) pairs returned by fn,
// which has the form func(value any) (any, any) or
// func(value, key any) (any, any). Later pairs win on key collisions.
func (c *Container) MapWithKeys(fn any) *Container { return c.Call("mapWithKeys", fn) }

// Pluck collects the value at path from every entry, missing paths giving
// nil. With keyPath the result is a Mapping keyed by the value at keyPath.
func (c *Container) Pluck(path string, keyPath ...string) *Container {
	return c.Call("pluck", append([]any{path}, pathArgs(keyPath)...)...)
}

// Keys returns a Sequence of the container's keys.
func (c *Container) Keys() *Container { return c.Call("keys") }

// Values returns a Sequence of the container's values, dropping the keys.
func (c *Container) Values() *Container { return c.Call("values") }

// Flatten flattens nested containers into a single Sequence, depth levels
// deep (all levels when depth is omitted).
func (c *Container) Flatten(depth ...int) *Container { return c.Call("flatten", ints(depth)...) }

// Chunk splits a Sequence into Sequences of size entries; the last may be
// shorter. size must be positive.
func (c *Container) Chunk(size int) *Container { return c.Call("chunk", size) }

// Slice returns length entries starting at the 1-based offset (negative
// counts from the end). Without length it runs to the end; a negative length
// stops that many entries before the end.
func (c *Container) Slice(offset int, length ...int) *Container {
	return c.Call("slice", append([]any{offset}, ints(length)...)...)
}

// Take returns the first n entries, or the last -n when n is negative.
func (c *Container) Take(n int) *Container { return c.Call("take", n) }

// Skip drops the first n entries, or the last -n when n is negative.
func (c *Container) Skip(n int) *Container { return c.Call("skip", n) }

// Reverse reverses a Sequence.
func (c *Container) Reverse() *Container { return c.Call("reverse") }

// Push appends values to a Sequence.
func (c *Container) Push(values ...any) *Container { return c.Call("push", values...) }

// Prepend inserts values at the front of a Sequence.
func (c *Container) Prepend(values ...any) *Container { return c.Call("prepend", values...) }

// Merge combines the container with other (a *Container, slice or map).
// Two Sequences are concatenated; otherwise other's keys overwrite.
func (c *Container) Merge(other any) *Container { return c.Call("merge", other) }

// GroupBy groups values into Sequences keyed by the value at path or
// returned by a key function. Equal keys of different numeric kinds, and
// structurally equal container keys, share a group.
func (c *Container) GroupBy(by any) *Container { return c.Call("groupBy", by) }

// KeyBy keys every value by the value at path or returned by a key
// function. Later values win on collisions.
func (c *Container) KeyBy(by any) *Container { return c.Call("keyBy", by) }

// CountBy counts the entries per distinct value (or per distinct value at
// path / returned by a key function).
func (c *Container) CountBy(by ...any) *Container { return c.Call("countBy", by...) }

// Duplicates maps every value that occurs more than once to its number of
// occurrences.
//
//	collections.New(1, 1, 2, 3, 4, 4, 4).Duplicates() // {1: 2, 4: 3}
func (c *Container) Duplicates(by ...any) *Container { return c.Call("duplicates", by...) }

// Dot flattens nested containers into a Mapping of separator-joined paths.
func (c *Container) Dot() *Container { return c.Call("dot") }

// Undot expands a Mapping of separator-joined paths into nested maps.
func (c *Container) Undot() *Container { return c.Call("undot") }

func ints(ns []int) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

// noArgs adapts a body that takes no arguments.
func noArgs(body applyFunc) prepareFunc {
	return func(_ *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 0, 0); err != nil {
			return nil, err
		}
		return body, nil
	}
}

// intOp adapts a body that takes one integer argument.
func intOp(name string, valid func(int) bool, body func(in *Container, n int) (any, error)) prepareFunc {
	return func(_ *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 1, 1); err != nil {
			return nil, err
		}
		n, err := intArg(args, 0, name)
		if err != nil {
			return nil, err
		}
		if valid != nil && !valid(n) {
			return nil, argError("invalid %s %d", name, n)
		}
		return func(in *Container) (any, error) { return body(in, n) }, nil
	}
}

func prepareMap(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	fn, err := mapper(args[0])
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) { return mapEntries(in.value, fn) }, nil
}

func mapEntries(v any, fn valueFunc) (any, error) {
	shape, err := Classify(v)
	if err != nil {
		return nil, err
	}
	entries := arr.Entries(v)
	for i, e := range entries {
		out, err := fn(e.Value, e.Key)
		if err != nil {
			return nil, err
		}
		entries[i].Value = out
	}
	return rebuild(shape, v, entries), nil
}

func prepareMapWithKeys(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	var fn func(value, key any) (any, any)
	switch f := args[0].(type) {
	case func(value any) (any, any):
		fn = func(value, _ any) (any, any) { return f(value) }
	case func(value, key any) (any, any):
		fn = f
	default:
		return nil, argError("expected func(value[, key]) (key, value), got %T", args[0])
	}
	return func(in *Container) (any, error) {
		entries := arr.Entries(in.value)
		out := make([]arr.Entry, len(entries))
		for i, e := range entries {
			k, v := fn(e.Value, e.Key)
			out[i] = arr.Entry{Key: k, Value: v}
		}
		return makeMap(mapLike(in.value), out), nil
	}, nil
}

// mapLike returns v when it is a map, nil otherwise, for use as a makeMap
// template.
func mapLike(v any) any {
	if _, ok := v.([]any); ok {
		return nil
	}
	if s, err := Classify(v); err == nil && s == Mapping {
		return v
	}
	return nil
}

func preparePluck(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 2); err != nil {
		return nil, err
	}
	path, err := stringArg(args, 0, "path")
	if err != nil {
		return nil, err
	}
	keyPath := ""
	if len(args) == 2 {
		if keyPath, err = stringArg(args, 1, "key path"); err != nil {
			return nil, err
		}
	}
	resolve := c.cfg.resolver().Resolve
	return func(in *Container) (any, error) {
		entries := arr.Entries(in.value)
		out := make([]arr.Entry, len(entries))
		for i, e := range entries {
			v, _, err := resolve(e.Value, path)
			if err != nil {
				return nil, err
			}
			out[i] = arr.Entry{Key: i + 1, Value: v}
			if keyPath != "" {
				k, _, err := resolve(e.Value, keyPath)
				if err != nil {
					return nil, err
				}
				out[i].Key = k
			}
		}
		if keyPath != "" {
			return makeMap(nil, out), nil
		}
		return makeSeq(nil, valuesOf(out)), nil
	}, nil
}

func keysBody(in *Container) (any, error) {
	entries := arr.Entries(in.value)
	keys := make([]any, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys, nil
}

func valuesBody(in *Container) (any, error) {
	return makeSeq(in.value, valuesOf(arr.Entries(in.value))), nil
}

func prepareFlatten(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return nil, err
	}
	depth := -1
	if len(args) == 1 {
		d, err := intArg(args, 0, "depth")
		if err != nil {
			return nil, err
		}
		if d < 1 {
			return nil, argError("depth must be at least 1, got %d", d)
		}
		depth = d
	}
	return func(in *Container) (any, error) {
		out := make([]any, 0, arr.Len(in.value))
		var walk func(v any, depth int)
		walk = func(v any, depth int) {
			for _, e := range arr.Entries(v) {
				if depth != 0 && arr.IsContainer(e.Value) {
					walk(e.Value, depth-1)
					continue
				}
				out = append(out, e.Value)
			}
		}
		walk(in.value, depth)
		return out, nil
	}, nil
}

func chunkBody(in *Container, size int) (any, error) {
	chunks := arr.Chunk(valuesOf(arr.Entries(in.value)), size)
	out := make([]any, len(chunks))
	for i, chunk := range chunks {
		out[i] = makeSeq(in.value, chunk)
	}
	return out, nil
}

func prepareSlice(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 2); err != nil {
		return nil, err
	}
	offset, err := intArg(args, 0, "offset")
	if err != nil {
		return nil, err
	}
	if offset == 0 {
		return nil, argError("offset is 1-based, got 0")
	}
	length, bounded := 0, len(args) == 2
	if bounded {
		if length, err = intArg(args, 1, "length"); err != nil {
			return nil, err
		}
	}
	return func(in *Container) (any, error) {
		values := valuesOf(arr.Entries(in.value))
		n := len(values)
		start := offset - 1
		if offset < 0 {
			start = max(n+offset, 0)
		}
		start = min(start, n)
		end := n
		switch {
		case bounded && length >= 0:
			end = min(start+length, n)
		case bounded:
			end = max(n+length, start)
		}
		return makeSeq(in.value, values[start:end]), nil
	}, nil
}

func takeBody(in *Container, n int) (any, error) {
	values := valuesOf(arr.Entries(in.value))
	total := len(values)
	if n < 0 {
		return makeSeq(in.value, values[max(total+n, 0):]), nil
	}
	return makeSeq(in.value, values[:min(n, total)]), nil
}

func skipBody(in *Container, n int) (any, error) {
	values := valuesOf(arr.Entries(in.value))
	total := len(values)
	if n < 0 {
		return makeSeq(in.value, values[:max(total+n, 0)]), nil
	}
	return makeSeq(in.value, values[min(n, total):]), nil
}

func reverseBody(in *Container) (any, error) {
	return makeSeq(in.value, arr.Reverse(valuesOf(arr.Entries(in.value)))), nil
}

func prepareAdd(front bool) prepareFunc {
	return func(_ *Container, args []any) (applyFunc, error) {
		if err := wantArgs(args, 1, -1); err != nil {
			return nil, err
		}
		return func(in *Container) (any, error) {
			values := valuesOf(arr.Entries(in.value))
			if front {
				return makeSeq(in.value, arr.Prepend(values, args...)), nil
			}
			return makeSeq(in.value, append(values, args...)), nil
		}, nil
	}
}

func prepareMerge(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	other := args[0]
	if oc, ok := other.(*Container); ok {
		v, err := oc.current()
		if err != nil {
			return nil, err
		}
		other = v
	}
	otherShape, err := Classify(other)
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) {
		shape, err := Classify(in.value)
		if err != nil {
			return nil, err
		}
		if shape == Sequence && otherShape == Sequence {
			values := valuesOf(arr.Entries(in.value))
			return makeSeq(in.value, append(values, valuesOf(arr.Entries(other))...)), nil
		}
		entries := arr.Entries(in.value)
		index := make(map[any]int, len(entries))
		for i, e := range entries {
			index[predicate.NormalizeKey(e.Key)] = i
		}
		for _, e := range arr.Entries(other) {
			if i, ok := index[predicate.NormalizeKey(e.Key)]; ok {
				entries[i].Value = e.Value
				continue
			}
			index[predicate.NormalizeKey(e.Key)] = len(entries)
			entries = append(entries, e)
		}
		return makeMap(mapLike(in.value), entries), nil
	}, nil
}

// group buckets entries by the fingerprint of their extracted key. Buckets
// are returned in first-seen order together with their output key.
type group struct {
	key     any
	entries []arr.Entry
}

func groupEntries(v any, by keyFunc) ([]*group, error) {
	var order []*group
	index := make(map[hashing.Sum]*group)
	for _, e := range arr.Entries(v) {
		k, found, err := by(e.Value, e.Key)
		if err != nil {
			return nil, err
		}
		if !found {
			k = nil
		}
		sum := hashing.Of(k)
		g, ok := index[sum]
		if !ok {
			g = &group{key: groupKey(k, sum)}
			index[sum] = g
			order = append(order, g)
		}
		g.entries = append(g.entries, e)
	}
	return order, nil
}

// groupKey is the first-seen key itself, or its fingerprint for containers.
func groupKey(k any, sum hashing.Sum) any {
	if arr.IsContainer(k) {
		return sum.String()
	}
	return hashableKey(k)
}

func prepareGroupBy(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	by, err := c.extractor(args[0])
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) {
		groups, err := groupEntries(in.value, by)
		if err != nil {
			return nil, err
		}
		out := make(map[any]any, len(groups))
		for _, g := range groups {
			out[g.key] = makeSeq(in.value, valuesOf(g.entries))
		}
		return out, nil
	}, nil
}

func prepareKeyBy(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	by, err := c.extractor(args[0])
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) {
		groups, err := groupEntries(in.value, by)
		if err != nil {
			return nil, err
		}
		out := make(map[any]any, len(groups))
		for _, g := range groups {
			out[g.key] = g.entries[len(g.entries)-1].Value
		}
		return out, nil
	}, nil
}

func prepareCount(minCount int) prepareFunc {
	return func(c *Container, args []any) (applyFunc, error) {
		by, err := optExtractor(c, args)
		if err != nil {
			return nil, err
		}
		return func(in *Container) (any, error) {
			groups, err := groupEntries(in.value, by)
			if err != nil {
				return nil, err
			}
			out := make(map[any]any, len(groups))
			for _, g := range groups {
				if len(g.entries) >= minCount {
					out[g.key] = len(g.entries)
				}
			}
			return out, nil
		}, nil
	}
}

func prepareDot(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return nil, err
	}
	r := c.cfg.resolver()
	return func(in *Container) (any, error) { return r.Dot(in.value), nil }, nil
}

func prepareUndot(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 0, 0); err != nil {
		return nil, err
	}
	r := c.cfg.resolver()
	return func(in *Container) (any, error) {
		flat := make(map[string]any, arr.Len(in.value))
		for _, e := range arr.Entries(in.value) {
			flat[fmt.Sprint(e.Key)] = e.Value
		}
		return r.Undot(flat), nil
	}, nil
}
