package collections

import (
	"errors"
	"fmt"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Updates
//
// Updates modify the Container they are called on and return it. Writing
// to a slice position or an existing map key goes into the wrapped storage;
// growing, shrinking or reclassifying the container replaces the storage.
//
// Key contiguity: Forget on a Sequence shifts the later entries down so the
// container stays a Sequence. Set with a key that is neither a position
// 1..N, a negative position, nor N+1 turns the container into a Mapping
// (map[any]any holding the positions as int keys).
// ─────────────────────────────────────────────────────────────────────────────

// Set stores value under key. On a Sequence, key is a position: negative
// positions count from the end and N+1 appends.
//
//	c.Set(-1, "last") // overwrites the final element
func (c *Container) Set(key, value any) *Container { return c.Call("set", key, value) }

// SetPath writes value at a nested path, creating intermediate maps.
func (c *Container) SetPath(path string, value any) *Container {
	return c.Call("setPath", path, value)
}

// Forget removes the given keys. Missing keys are ignored.
func (c *Container) Forget(keys ...any) *Container { return c.Call("forget", keys...) }

// Transform replaces every value with fn(value[, key]) in place.
func (c *Container) Transform(fn any) *Container { return c.Call("transform", fn) }

func prepareSet(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 2, 2); err != nil {
		return nil, err
	}
	key, value := args[0], args[1]
	return func(in *Container) (any, error) {
		shape, err := Classify(in.value)
		if err != nil {
			return nil, err
		}
		entries := arr.Entries(in.value)
		if shape == Sequence {
			if p, ok := position(key); ok {
				n := len(entries)
				p = normalizePosition(p, n)
				switch {
				case p >= 1 && p <= n:
					entries[p-1].Value = value
					return rebuild(Sequence, in.value, entries), nil
				case p == n+1:
					return rebuild(Sequence, in.value, append(entries, arr.Entry{Key: p, Value: value})), nil
				case p < 1:
					return nil, fmt.Errorf("%w: %v of %d", ErrIndexOutOfRange, key, n)
				}
			}
			return makeMap(in.value, append(entries, arr.Entry{Key: key, Value: value})), nil
		}
		want := predicate.NormalizeKey(key)
		for i, e := range entries {
			if predicate.NormalizeKey(e.Key) == want {
				entries[i].Value = value
				return makeMap(in.value, entries), nil
			}
		}
		return makeMap(in.value, append(entries, arr.Entry{Key: key, Value: value})), nil
	}, nil
}

func prepareSetPath(c *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 2, 2); err != nil {
		return nil, err
	}
	path, err := stringArg(args, 0, "path")
	if err != nil {
		return nil, err
	}
	r := c.cfg.resolver()
	if _, err := r.Split(path); err != nil {
		return nil, err
	}
	value := args[1]
	return func(in *Container) (any, error) {
		out := deepClone(in.value)
		if err := r.Set(out, path, value); err != nil {
			if errors.Is(err, ErrPath) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrArgument, err)
		}
		return out, nil
	}, nil
}

func prepareForget(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, -1); err != nil {
		return nil, err
	}
	keys := flatArgs(args)
	return func(in *Container) (any, error) {
		shape, err := Classify(in.value)
		if err != nil {
			return nil, err
		}
		entries := arr.Entries(in.value)
		drop := make(map[any]struct{}, len(keys))
		for _, k := range keys {
			if p, ok := position(k); ok && shape == Sequence {
				k = normalizePosition(p, len(entries))
			}
			drop[predicate.NormalizeKey(k)] = struct{}{}
		}
		kept := entries[:0]
		for _, e := range entries {
			if _, gone := drop[predicate.NormalizeKey(e.Key)]; !gone {
				kept = append(kept, e)
			}
		}
		return rebuild(shape, in.value, kept), nil
	}, nil
}

func prepareTransform(_ *Container, args []any) (applyFunc, error) {
	if err := wantArgs(args, 1, 1); err != nil {
		return nil, err
	}
	fn, err := mapper(args[0])
	if err != nil {
		return nil, err
	}
	return func(in *Container) (any, error) { return mapEntries(in.value, fn) }, nil
}
