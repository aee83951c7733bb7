package collections

import (
	"fmt"
	"reflect"

	"github.com/hasbyte1/go-fluent/arr"
)

// Shape is the derived classification of a container.
type Shape int

const (
	// Sequence: keys are exactly the positions 1..N (the empty container
	// included). Ordering is meaningful.
	Sequence Shape = iota
	// Mapping: any other key set.
	Mapping
)

func (s Shape) String() string {
	switch s {
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Classify derives the shape of v from its keys.
//
// Every Go slice or array is a Sequence. A map is a Sequence when its keys,
// read as integers, are exactly {1, ..., N}; any gap, duplicate position or
// non-integer key makes it a Mapping. Values that are not containers fail
// with [ErrArgument].
func Classify(v any) (Shape, error) {
	switch t := v.(type) {
	case []any:
		return Sequence, nil
	case map[string]any:
		if len(t) == 0 {
			return Sequence, nil
		}
		return Mapping, nil
	case map[any]any:
		return classifyKeys(len(t), func(yield func(any) bool) {
			for k := range t {
				if !yield(k) {
					return
				}
			}
		}), nil
	case nil:
		return 0, argError("nil is not a container")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return Sequence, nil
	case reflect.Map:
		return classifyKeys(rv.Len(), func(yield func(any) bool) {
			iter := rv.MapRange()
			for iter.Next() {
				if !yield(iter.Key().Interface()) {
					return
				}
			}
		}), nil
	}
	return 0, argError("%T is not a container", v)
}

func classifyKeys(n int, keys func(yield func(any) bool)) Shape {
	seen := make([]bool, n+1)
	shape := Sequence
	keys(func(k any) bool {
		p, ok := position(k)
		if !ok || p < 1 || p > n || seen[p] {
			shape = Mapping
			return false
		}
		seen[p] = true
		return true
	})
	return shape
}

// position reads an integer-kinded key. Integral floats and strings do not
// count as positions.
func position(k any) (int, bool) {
	if !isIntKind(reflect.ValueOf(k).Kind()) {
		return 0, false
	}
	return arr.ToInt(k)
}

// requireSequence fails with [ErrShape] unless v is a Sequence.
func requireSequence(v any) error {
	shape, err := Classify(v)
	if err != nil {
		return err
	}
	if shape != Sequence {
		return fmt.Errorf("%w, got a mapping of %d keys", ErrShape, arr.Len(v))
	}
	return nil
}
