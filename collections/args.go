package collections

import (
	"reflect"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// Argument shapes are resolved once, when an operation is called, into the
// closures below. Step bodies never inspect raw arguments again.

// keyFunc extracts a grouping or sorting key from an entry.
type keyFunc func(value, key any) (out any, found bool, err error)

// valueFunc maps an entry to a new value.
type valueFunc func(value, key any) (any, error)

// lessFunc orders two values.
type lessFunc func(a, b any) (bool, error)

func wantArgs(args []any, lo, hi int) error {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		switch {
		case hi < 0:
			return argError("expected at least %d arguments, got %d", lo, len(args))
		case lo == hi:
			return argError("expected %d arguments, got %d", lo, len(args))
		}
		return argError("expected %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

func intArg(args []any, i int, name string) (int, error) {
	n, ok := arr.ToInt(args[i])
	if !ok {
		return 0, argError("%s must be an integer, got %T", name, args[i])
	}
	return n, nil
}

func stringArg(args []any, i int, name string) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", argError("%s must be a string, got %T", name, args[i])
	}
	return s, nil
}

// optPath reads an optional leading path argument; absent means the entry
// itself.
func optPath(args []any) (string, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return "", err
	}
	if len(args) == 0 {
		return ".", nil
	}
	return stringArg(args, 0, "path")
}

// flatArgs expands a single container argument into its values, so both
// Only("a", "b") and Only([]string{"a", "b"}) work.
func flatArgs(args []any) []any {
	if len(args) == 1 && arr.IsContainer(args[0]) {
		return valuesOf(arr.Entries(args[0]))
	}
	return args
}

func isFunc(a any) bool {
	if a == nil {
		return false
	}
	if _, ok := a.(*predicate.Expr); ok {
		return true
	}
	return reflect.TypeOf(a).Kind() == reflect.Func
}

// extractor resolves a "by" argument: a path string, or a function of the
// value (and optionally the key).
func (c *Container) extractor(by any) (keyFunc, error) {
	switch f := by.(type) {
	case nil:
		return func(value, _ any) (any, bool, error) { return value, true, nil }, nil
	case string:
		resolve := c.cfg.resolver().Resolve
		return func(value, _ any) (any, bool, error) { return resolve(value, f) }, nil
	case func(value any) any:
		return func(value, _ any) (any, bool, error) { return f(value), true, nil }, nil
	case func(value, key any) any:
		return func(value, key any) (any, bool, error) { return f(value, key), true, nil }, nil
	case func(value, key any) (any, error):
		return func(value, key any) (any, bool, error) {
			out, err := f(value, key)
			return out, err == nil, err
		}, nil
	}
	return nil, argError("expected a path or key function, got %T", by)
}

func optExtractor(c *Container, args []any) (keyFunc, error) {
	if err := wantArgs(args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return c.extractor(nil)
	}
	return c.extractor(args[0])
}

func mapper(fn any) (valueFunc, error) {
	switch f := fn.(type) {
	case func(value any) any:
		return func(value, _ any) (any, error) { return f(value), nil }, nil
	case func(value, key any) any:
		return func(value, key any) (any, error) { return f(value, key), nil }, nil
	case func(value any) (any, error):
		return func(value, _ any) (any, error) { return f(value) }, nil
	case func(value, key any) (any, error):
		return f, nil
	}
	return nil, argError("expected a mapping function, got %T", fn)
}

func comparator(fn any) (lessFunc, error) {
	switch f := fn.(type) {
	case func(a, b any) bool:
		return func(a, b any) (bool, error) { return f(a, b), nil }, nil
	case func(a, b any) int:
		return func(a, b any) (bool, error) { return f(a, b) < 0, nil }, nil
	case func(a, b any) (bool, error):
		return f, nil
	case *predicate.Expr:
		return f.Less, nil
	case string:
		e, err := predicate.Comparator(f)
		if err != nil {
			return nil, err
		}
		return e.Less, nil
	}
	return nil, argError("expected a comparison function, got %T", fn)
}
