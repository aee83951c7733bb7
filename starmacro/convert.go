package starmacro

import (
	"fmt"
	"reflect"

	"go.starlark.net/starlark"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/collections"
)

// ToStarlark converts a Go value into a Starlark value. Sequences become
// lists and Mappings become dicts; scalars map onto the matching Starlark
// type.
func ToStarlark(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case starlark.Value:
		return val, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	}

	if arr.IsContainer(v) {
		return containerToStarlark(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return starlark.String(rv.String()), nil
	case reflect.Bool:
		return starlark.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return starlark.Float(rv.Float()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return starlark.None, nil
		}
	}
	return nil, fmt.Errorf("starmacro: unsupported type %T", v)
}

func containerToStarlark(v any) (starlark.Value, error) {
	shape, err := collections.Classify(v)
	if err != nil {
		return nil, err
	}
	entries := arr.Entries(v)
	if shape == collections.Sequence {
		list := make([]starlark.Value, len(entries))
		for i, e := range entries {
			sv, err := ToStarlark(e.Value)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i+1, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil
	}
	dict := starlark.NewDict(len(entries))
	for _, e := range entries {
		k, err := ToStarlark(e.Key)
		if err != nil {
			return nil, fmt.Errorf("dict key %v: %w", e.Key, err)
		}
		sv, err := ToStarlark(e.Value)
		if err != nil {
			return nil, fmt.Errorf("dict key %v: %w", e.Key, err)
		}
		if err := dict.SetKey(k, sv); err != nil {
			return nil, fmt.Errorf("dict setkey %v: %w", e.Key, err)
		}
	}
	return dict, nil
}

// ToGo converts a Starlark value back into a Go value: string, int, float64,
// bool, []any, map[string]any (dicts with string keys only), map[any]any or
// nil.
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("starmacro: integer %s out of range", val)
		}
		if int64(int(i64)) == i64 {
			return int(i64), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case starlark.Indexable:
		result := make([]any, val.Len())
		for i := range result {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i+1, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		return dictToGo(val)
	}
	return nil, fmt.Errorf("starmacro: cannot convert %s to a Go value", v.Type())
}

func dictToGo(d *starlark.Dict) (any, error) {
	items := d.Items()
	stringKeys := true
	for _, item := range items {
		if _, ok := item[0].(starlark.String); !ok {
			stringKeys = false
			break
		}
	}
	if stringKeys {
		result := make(map[string]any, len(items))
		for _, item := range items {
			key := string(item[0].(starlark.String))
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[key] = gv
		}
		return result, nil
	}
	result := make(map[any]any, len(items))
	for _, item := range items {
		key, err := ToGo(item[0])
		if err != nil {
			return nil, fmt.Errorf("dict key %s: %w", item[0], err)
		}
		if key != nil && !reflect.TypeOf(key).Comparable() {
			return nil, fmt.Errorf("starmacro: dict key %s is not hashable in Go", item[0])
		}
		gv, err := ToGo(item[1])
		if err != nil {
			return nil, fmt.Errorf("dict key %s: %w", item[0], err)
		}
		result[key] = gv
	}
	return result, nil
}
