package predicate

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/hasbyte1/go-fluent/arr"
)

// Evaluate applies op to left and right.
//
// Ordering operators fail with [ErrTypeMismatch] unless both operands are
// numbers or both are strings.
func Evaluate(op Operator, left, right any) (bool, error) {
	switch op {
	case OpEq:
		return Equal(left, right), nil
	case OpNe:
		return !Equal(left, right), nil
	}
	c, err := Compare(left, right)
	if err != nil {
		return false, err
	}
	switch op {
	case OpGe:
		return c >= 0, nil
	case OpLe:
		return c <= 0, nil
	case OpLt:
		return c < 0, nil
	case OpGt:
		return c > 0, nil
	}
	return false, fmt.Errorf("%w: unknown operator %q", ErrArgument, op)
}

// Compare orders a and b, returning -1, 0 or +1.
// Numbers compare numerically, strings lexicographically by byte.
func Compare(a, b any) (int, error) {
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return na.cmp(nb), nil
		}
	}
	if sa, ok := toString(a); ok {
		if sb, ok := toString(b); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	return 0, fmt.Errorf("%w: cannot order %s and %s", ErrTypeMismatch, typeName(a), typeName(b))
}

// Equal reports structural equality of a and b.
//
// Containers are equal when they hold the same keys and every value is
// recursively equal; a []any{"x"} equals map[any]any{1: "x"}. Numbers of any
// kind compare by value. Other scalars must share a type and value.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)
		return ok && na.cmp(nb) == 0 && !na.isNaN() && !nb.isNaN()
	}
	if sa, ok := toString(a); ok {
		sb, ok := toString(b)
		return ok && sa == sb
	}
	ca, cb := arr.IsContainer(a), arr.IsContainer(b)
	if ca || cb {
		return ca && cb && equalContainers(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func equalContainers(a, b any) bool {
	if arr.Len(a) != arr.Len(b) {
		return false
	}
	index := make(map[any]any, arr.Len(b))
	for _, e := range arr.Entries(b) {
		index[NormalizeKey(e.Key)] = e.Value
	}
	for _, e := range arr.Entries(a) {
		other, ok := index[NormalizeKey(e.Key)]
		if !ok || !Equal(e.Value, other) {
			return false
		}
	}
	return true
}

// NormalizeKey maps keys that compare equal onto one comparable value:
// integers and integral floats become int64 (uint64 above MaxInt64), other
// floats stay float64, string kinds become string. Non-comparable keys are
// replaced by their printed form.
func NormalizeKey(k any) any {
	if n, ok := toNumber(k); ok {
		return n.key(k)
	}
	if s, ok := toString(k); ok {
		return s
	}
	if k != nil && !reflect.TypeOf(k).Comparable() {
		return fmt.Sprintf("%T:%v", k, k)
	}
	return k
}

// Number converts a numeric value of any Go kind to float64.
func Number(v any) (float64, bool) {
	return arr.ToFloat(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func toString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// number keeps integers exact and falls back to float64 for mixed kinds.
type number struct {
	i     int64
	f     float64
	isInt bool
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{i: int64(n), f: float64(n), isInt: true}, true
	case int64:
		return number{i: n, f: float64(n), isInt: true}, true
	case float64:
		return number{f: n}, true
	case nil, bool, string:
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{i: rv.Int(), f: float64(rv.Int()), isInt: true}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return number{i: int64(u), f: float64(u), isInt: true}, true
		}
		return number{f: float64(u)}, true
	case reflect.Float32, reflect.Float64:
		return number{f: rv.Float()}, true
	}
	return number{}, false
}

func (n number) key(v any) any {
	switch {
	case n.isInt:
		return n.i
	case n.f != math.Trunc(n.f):
		return n.f
	case n.f >= math.MinInt64 && n.f < math.MaxInt64:
		return int64(n.f)
	case n.f >= math.MaxInt64 && n.f < math.MaxUint64:
		if rv := reflect.ValueOf(v); rv.CanUint() {
			return rv.Uint()
		}
		return uint64(n.f)
	}
	return n.f
}

func (n number) isNaN() bool { return !n.isInt && math.IsNaN(n.f) }

func (n number) cmp(o number) int {
	if n.isInt && o.isInt {
		switch {
		case n.i < o.i:
			return -1
		case n.i > o.i:
			return 1
		}
		return 0
	}
	switch {
	case n.f < o.f:
		return -1
	case n.f > o.f:
		return 1
	}
	return 0
}
