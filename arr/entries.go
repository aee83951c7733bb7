package arr

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Entry is a single key/value pair of a container. Slice entries are keyed
// by their 1-based position (an int).
type Entry struct {
	Key   any
	Value any
}

// IsContainer reports whether v is a slice, array or map.
func IsContainer(v any) bool {
	switch v.(type) {
	case []any, map[string]any, map[any]any:
		return true
	case nil:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// Len returns the number of key/value pairs in v, or 0 for non-containers.
func Len(v any) int {
	switch t := v.(type) {
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	case map[any]any:
		return len(t)
	case nil:
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	return 0
}

// Entries lists the key/value pairs of v in a deterministic order:
// positional for slices and arrays, [KeyLess] order for maps.
// It returns nil when v is not a container.
func Entries(v any) []Entry {
	switch t := v.(type) {
	case []any:
		out := make([]Entry, len(t))
		for i, item := range t {
			out[i] = Entry{Key: i + 1, Value: item}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Entry, len(keys))
		for i, k := range keys {
			out[i] = Entry{Key: k, Value: t[k]}
		}
		return out
	case map[any]any:
		keys := make([]any, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		SortKeys(keys)
		out := make([]Entry, len(keys))
		for i, k := range keys {
			out[i] = Entry{Key: k, Value: t[k]}
		}
		return out
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Entry, rv.Len())
		for i := range out {
			out[i] = Entry{Key: i + 1, Value: rv.Index(i).Interface()}
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		sort.SliceStable(keys, func(i, j int) bool {
			return KeyLess(keys[i].Interface(), keys[j].Interface())
		})
		out := make([]Entry, len(keys))
		for i, k := range keys {
			out[i] = Entry{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}
		}
		return out
	}
	return nil
}

// SortKeys sorts map keys in place using [KeyLess].
func SortKeys(keys []any) {
	sort.SliceStable(keys, func(i, j int) bool { return KeyLess(keys[i], keys[j]) })
}

// KeyLess is the total order used to iterate map keys: numbers ascending,
// then strings lexicographically, then booleans, then everything else by its
// printed form.
func KeyLess(a, b any) bool {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return fa < fb
	case 1:
		return reflect.ValueOf(a).String() < reflect.ValueOf(b).String()
	case 2:
		return !reflect.ValueOf(a).Bool() && reflect.ValueOf(b).Bool()
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func keyRank(k any) int {
	if _, ok := ToFloat(k); ok {
		return 0
	}
	switch reflect.ValueOf(k).Kind() {
	case reflect.String:
		return 1
	case reflect.Bool:
		return 2
	}
	return 3
}

// ToFloat converts any Go integer or floating-point kind to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// ToInt converts v to an int when it is an integer kind or an integral
// float.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f >= math.MinInt && f < math.MaxInt && f == math.Trunc(f) {
			return int(f), true
		}
	}
	return 0, false
}
