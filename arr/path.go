package arr

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// DefaultSeparator is the segment separator used when a [Resolver] does not
// name one.
const DefaultSeparator = "."

// ErrMalformedPath is returned in strict mode when a path contains an empty
// segment ("a..b", ".a", "a.").
var ErrMalformedPath = errors.New("arr: malformed path")

// Indexer lets host types take part in path resolution without reflection.
// Lookup reports whether key names a field or entry of the receiver.
type Indexer interface {
	Lookup(key string) (any, bool)
}

// Resolver resolves separator-delimited paths against nested values.
//
// The zero value resolves "."-separated paths leniently: a malformed path is
// simply not found. With Strict set, a malformed path is an error.
type Resolver struct {
	Separator string
	Strict    bool
}

func (r Resolver) sep() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

// IsSelf reports whether path denotes the entry itself (no traversal).
func (r Resolver) IsSelf(path string) bool {
	return path == "" || path == "." || path == r.sep()
}

// Split breaks path into its segments. The self path yields no segments.
func (r Resolver) Split(path string) ([]string, error) {
	if r.IsSelf(path) {
		return nil, nil
	}
	segments := strings.Split(path, r.sep())
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPath, path)
		}
	}
	return segments, nil
}

// Resolve walks path from entry and returns the value reached.
//
// found is false when a key is absent or an intermediate value cannot be
// indexed; this is never an error. err is non-nil only for a malformed path
// in strict mode.
//
//	r := arr.Resolver{}
//	r.Resolve(map[string]any{"a": map[string]any{"b": 5}}, "a.b") // 5, true, nil
//	r.Resolve(entry, ".")                                          // entry, true, nil
func (r Resolver) Resolve(entry any, path string) (value any, found bool, err error) {
	segments, err := r.Split(path)
	if err != nil {
		if r.Strict {
			return nil, false, err
		}
		return nil, false, nil
	}
	return Walk(entry, segments)
}

// Walk follows already-split segments from entry.
func Walk(entry any, segments []string) (any, bool, error) {
	current := entry
	for _, seg := range segments {
		next, ok := Lookup(current, seg)
		if !ok {
			return nil, false, nil
		}
		current = next
	}
	return current, true, nil
}

// Lookup performs a single segment step on v.
//
// Maps are indexed by key (string keys directly, integer keys when the segment
// parses as an integer), slices and arrays by 1-based position (negative
// positions count from the end), structs by exported field name.
func Lookup(v any, key string) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Indexer:
		return t.Lookup(key)
	case map[string]any:
		val, ok := t[key]
		return val, ok
	case map[any]any:
		if val, ok := t[key]; ok {
			return val, true
		}
		if n, err := strconv.Atoi(key); err == nil {
			val, ok := t[n]
			return val, ok
		}
		return nil, false
	case []any:
		i, ok := Position(key, len(t))
		if !ok {
			return nil, false
		}
		return t[i], true
	}
	return lookupReflect(reflect.ValueOf(v), key)
}

func lookupReflect(rv reflect.Value, key string) (any, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		k, ok := MapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}
		val := rv.MapIndex(k)
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		i, ok := Position(key, rv.Len())
		if !ok {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(key)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}

// Position converts a 1-based (or negative, from the end) position segment
// into a 0-based index for a sequence of length n.
func Position(seg string, n int) (int, bool) {
	p, err := strconv.Atoi(seg)
	if err != nil || p == 0 {
		return 0, false
	}
	if p < 0 {
		p = n + p + 1
	}
	if p < 1 || p > n {
		return 0, false
	}
	return p - 1, true
}

// MapKey converts a path segment into a key of type kt, if possible.
func MapKey(kt reflect.Type, seg string) (reflect.Value, bool) {
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(seg).Convert(kt), true
	case reflect.Interface:
		return reflect.ValueOf(seg), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(seg, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		k := reflect.New(kt).Elem()
		k.SetInt(n)
		return k, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(seg, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		k := reflect.New(kt).Elem()
		k.SetUint(n)
		return k, true
	}
	return reflect.Value{}, false
}
