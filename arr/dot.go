package arr

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation helpers
//
// These functions read, write, and test values in nested maps and slices
// using dot-separated key paths. Slices are addressed by 1-based position.
//
//	m := map[string]any{
//	    "user": map[string]any{
//	        "name":    "Alice",
//	        "address": map[string]any{"city": "London"},
//	        "tags":    []any{"admin", "ops"},
//	    },
//	}
//
//	Get(m, "user.address.city")  → "London"
//	Get(m, "user.tags.-1")       → "ops"
//	Set(m, "user.age", 30)
//	Has(m, "user.name")          → true
// ─────────────────────────────────────────────────────────────────────────────

// Dot flattens nested maps and slices into a single-level map using dot
// notation for the keys. Slice elements are keyed by 1-based position.
//
//	Dot(map[string]any{"a": map[string]any{"b": 1}, "c": []any{"x"}})
//	// → map[string]any{"a.b": 1, "c.1": "x"}
func Dot(v any) map[string]any { return Resolver{}.Dot(v) }

// Dot is the separator-aware form of the package-level [Dot].
func (r Resolver) Dot(v any) map[string]any {
	out := make(map[string]any)
	r.flatten("", v, out)
	return out
}

func (r Resolver) flatten(prefix string, v any, out map[string]any) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + r.sep() + k
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Len() == 0 && prefix != "" {
			out[prefix] = v
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			r.flatten(join(fmt.Sprint(iter.Key().Interface())), iter.Value().Interface(), out)
		}
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 && prefix != "" {
			out[prefix] = v
			return
		}
		for i := 0; i < rv.Len(); i++ {
			r.flatten(join(strconv.Itoa(i+1)), rv.Index(i).Interface(), out)
		}
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

// Undot expands a flat dot-notation map into a nested map[string]any.
//
//	Undot(map[string]any{"a.b": 1, "a.c": 2})
//	// → map[string]any{"a": map[string]any{"b": 1, "c": 2}}
func Undot(m map[string]any) map[string]any { return Resolver{}.Undot(m) }

// Undot is the separator-aware form of the package-level [Undot]. Keys that
// are malformed paths are kept verbatim at the top level.
func (r Resolver) Undot(m map[string]any) map[string]any {
	out := make(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := r.Set(out, key, m[key]); err != nil {
			out[key] = m[key]
		}
	}
	return out
}

// Get retrieves a value from v using a dot-notation key.
// Returns def[0] (or nil) when the key does not exist.
//
//	Get(m, "user.address.city")        // "London"
//	Get(m, "user.missing", "default")  // "default"
func Get(v any, key string, def ...any) any {
	val, ok, _ := Resolver{}.Resolve(v, key)
	if !ok {
		if len(def) > 0 {
			return def[0]
		}
		return nil
	}
	return val
}

// Set writes value into target at the dot-notation key, creating
// intermediate map[string]any values as needed. Existing non-container
// intermediates are replaced by a fresh map.
//
// Set fails when target itself is not a map or slice, when the key is
// malformed, or when a slice position is out of range.
//
//	Set(m, "user.address.postcode", "EC1")
func Set(target any, key string, value any) error {
	return Resolver{Strict: true}.Set(target, key, value)
}

// Set is the separator-aware form of the package-level [Set].
func (r Resolver) Set(target any, key string, value any) error {
	segments, err := r.Split(key)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("%w: cannot set the entry itself", ErrMalformedPath)
	}
	return setIn(reflect.ValueOf(target), segments, value)
}

func setIn(rv reflect.Value, segments []string, value any) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return fmt.Errorf("arr: cannot write through nil at %q", segments[0])
		}
		rv = rv.Elem()
	}
	seg, rest := segments[0], segments[1:]
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return fmt.Errorf("arr: cannot write into nil map at %q", seg)
		}
		k, ok := mapKeyFor(rv, seg)
		if !ok {
			return fmt.Errorf("arr: %q is not a valid key for %s", seg, rv.Type())
		}
		if len(rest) == 0 {
			return setMapIndex(rv, k, value)
		}
		child := rv.MapIndex(k)
		if !child.IsValid() || !isWritable(child.Interface()) {
			fresh := map[string]any{}
			if err := setMapIndex(rv, k, fresh); err != nil {
				return err
			}
			return setIn(reflect.ValueOf(fresh), rest, value)
		}
		return setIn(child, rest, value)
	case reflect.Slice:
		i, ok := Position(seg, rv.Len())
		if !ok {
			return fmt.Errorf("arr: position %q out of range", seg)
		}
		elem := rv.Index(i)
		if len(rest) == 0 {
			return assign(elem, value)
		}
		if !isWritable(elem.Interface()) {
			fresh := map[string]any{}
			if err := assign(elem, fresh); err != nil {
				return err
			}
			return setIn(reflect.ValueOf(fresh), rest, value)
		}
		return setIn(elem, rest, value)
	}
	return fmt.Errorf("arr: cannot write %q into %T", seg, rv.Interface())
}

// mapKeyFor prefers an existing integer key over its string spelling for
// interface-keyed maps.
func mapKeyFor(m reflect.Value, seg string) (reflect.Value, bool) {
	if m.Type().Key().Kind() == reflect.Interface {
		if n, err := strconv.Atoi(seg); err == nil {
			if k := reflect.ValueOf(n); m.MapIndex(k).IsValid() {
				return k, true
			}
		}
	}
	return MapKey(m.Type().Key(), seg)
}

func isWritable(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func setMapIndex(m, k reflect.Value, value any) error {
	val, ok := assignable(value, m.Type().Elem())
	if !ok {
		return fmt.Errorf("arr: %T is not assignable to %s", value, m.Type().Elem())
	}
	m.SetMapIndex(k, val)
	return nil
}

func assign(dst reflect.Value, value any) error {
	val, ok := assignable(value, dst.Type())
	if !ok {
		return fmt.Errorf("arr: %T is not assignable to %s", value, dst.Type())
	}
	dst.Set(val)
	return nil
}

// assignable returns value as a reflect.Value of type t, treating nil as the
// zero value of nillable types.
func assignable(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

// Has reports whether the dot-notation key exists in v.
func Has(v any, key string) bool {
	_, ok, _ := Resolver{}.Resolve(v, key)
	return ok
}
