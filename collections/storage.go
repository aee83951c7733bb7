package collections

import (
	"fmt"
	"reflect"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/hashing"
)

// ─────────────────────────────────────────────────────────────────────────────
// Result storage
//
// Operations read their input as []arr.Entry and build fresh storage for the
// result. Results keep the input's Go type whenever every value (and key) is
// assignable to it; otherwise they widen to []any or map[any]any.
// ─────────────────────────────────────────────────────────────────────────────

var anyType = reflect.TypeOf((*any)(nil)).Elem()

func valuesOf(entries []arr.Entry) []any {
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

func elemType(like any) reflect.Type {
	if like == nil {
		return anyType
	}
	switch t := reflect.TypeOf(like); t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return t.Elem()
	}
	return anyType
}

// makeSeq builds a slice holding values, typed after like's element type.
func makeSeq(like any, values []any) any {
	if et := elemType(like); et != anyType {
		out := reflect.MakeSlice(reflect.SliceOf(et), len(values), len(values))
		typed := true
		for i, v := range values {
			rv, ok := assignTo(v, et)
			if !ok {
				typed = false
				break
			}
			out.Index(i).Set(rv)
		}
		if typed {
			return out.Interface()
		}
	}
	out := make([]any, len(values))
	copy(out, values)
	return out
}

// makeMap builds a map holding entries, typed after like when like is a map.
func makeMap(like any, entries []arr.Entry) any {
	if like != nil {
		if t := reflect.TypeOf(like); t.Kind() == reflect.Map {
			if m, ok := fillMap(reflect.MakeMapWithSize(t, len(entries)), entries); ok {
				return m
			}
			if t.Elem() != anyType {
				mt := reflect.MapOf(t.Key(), anyType)
				if m, ok := fillMap(reflect.MakeMapWithSize(mt, len(entries)), entries); ok {
					return m
				}
			}
		}
	}
	out := make(map[any]any, len(entries))
	for _, e := range entries {
		out[hashableKey(e.Key)] = e.Value
	}
	return out
}

func fillMap(m reflect.Value, entries []arr.Entry) (any, bool) {
	kt, vt := m.Type().Key(), m.Type().Elem()
	for _, e := range entries {
		k, ok := keyTo(e.Key, kt)
		if !ok || !k.Comparable() {
			return nil, false
		}
		v, ok := assignTo(e.Value, vt)
		if !ok {
			return nil, false
		}
		m.SetMapIndex(k, v)
	}
	return m.Interface(), true
}

// rebuild stores entries in the given shape: Sequences are re-packed to
// positions 1..N, Mappings keep their keys.
// A Sequence stored in a map stays a map, keyed 1..N.
func rebuild(shape Shape, like any, entries []arr.Entry) any {
	if shape != Sequence {
		return makeMap(like, entries)
	}
	if like != nil && reflect.TypeOf(like).Kind() == reflect.Map {
		packed := make([]arr.Entry, len(entries))
		for i, e := range entries {
			packed[i] = arr.Entry{Key: i + 1, Value: e.Value}
		}
		return makeMap(like, packed)
	}
	return makeSeq(like, valuesOf(entries))
}

func assignTo(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	if t.Kind() == reflect.Interface {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, true
	}
	return rv, true
}

// keyTo is assignTo that also converts between integer kinds, so positions
// fit map[int64]T and similar key types.
func keyTo(k any, kt reflect.Type) (reflect.Value, bool) {
	if rv, ok := assignTo(k, kt); ok {
		return rv, true
	}
	if _, ok := position(k); ok && isIntKind(kt.Kind()) {
		rv := reflect.ValueOf(k)
		if rv.CanConvert(kt) {
			return rv.Convert(kt), true
		}
	}
	return reflect.Value{}, false
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// hashableKey returns k when it can be used as a map key, its fingerprint
// otherwise.
func hashableKey(k any) any {
	if k == nil || reflect.ValueOf(k).Comparable() {
		return k
	}
	return hashing.Of(k).String()
}

// ─────────────────────────────────────────────────────────────────────────────
// In-place commit, cloning and identity
// ─────────────────────────────────────────────────────────────────────────────

// commitInPlace writes src into dst's storage when both share a Go type (and,
// for slices, a length) and returns the value the container should hold.
// Otherwise src replaces dst.
func commitInPlace(dst, src any) any {
	dv, sv := reflect.ValueOf(dst), reflect.ValueOf(src)
	if !dv.IsValid() || !sv.IsValid() || dv.Type() != sv.Type() {
		return src
	}
	switch dv.Kind() {
	case reflect.Slice:
		if dv.Len() != sv.Len() {
			return src
		}
		if dv.Len() > 0 && dv.Pointer() != sv.Pointer() {
			reflect.Copy(dv, sv)
		}
		return dst
	case reflect.Map:
		if dv.IsNil() {
			return src
		}
		if dv.Pointer() == sv.Pointer() {
			return dst
		}
		dv.Clear()
		iter := sv.MapRange()
		for iter.Next() {
			dv.SetMapIndex(iter.Key(), iter.Value())
		}
		return dst
	}
	return src
}

// deepClone copies every slice, array and map reachable from v. Pointers,
// structs and scalars are shared.
func deepClone(v any) any {
	if v == nil {
		return nil
	}
	return cloneValue(reflect.ValueOf(v)).Interface()
}

func cloneValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := range rv.Len() {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := range rv.Len() {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(cloneValue(rv.Elem()))
		return out
	}
	return rv
}

// sameStorage reports whether a and b are backed by the same slice or map.
func sameStorage(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Map:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}

// Portable converts v into plain []any and map[string]any trees: Sequences
// become slices, Mappings become string-keyed maps. Encoders that cannot
// handle arbitrary key types (JSON, YAML) use it.
func Portable(v any) any {
	shape, err := Classify(v)
	if err != nil {
		return v
	}
	entries := arr.Entries(v)
	if shape == Sequence {
		out := make([]any, len(entries))
		for i, e := range entries {
			out[i] = Portable(e.Value)
		}
		return out
	}
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[fmt.Sprint(e.Key)] = Portable(e.Value)
	}
	return out
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := arr.ToFloat(v); ok {
		return f != 0
	}
	if arr.IsContainer(v) {
		return arr.Len(v) > 0
	}
	return true
}
