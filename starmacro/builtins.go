package starmacro

import (
	"go.starlark.net/starlark"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/collections"
)

// Builtins returns the names predeclared in every macro file:
//
//	get(value, path, default = None)  value at path, or default when missing
//	has(value, path)                  whether path resolves
//
// Paths follow the calling Container's separator and strictness; outside an
// operation call they use the default "." separator.
func Builtins() starlark.StringDict {
	return starlark.StringDict{
		"get": starlark.NewBuiltin("get", builtinGet),
		"has": starlark.NewBuiltin("has", builtinHas),
	}
}

func builtinGet(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		value starlark.Value
		path  string
		def   starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "path", &path, "default?", &def); err != nil {
		return nil, err
	}
	got, found, err := resolve(thread, value, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return def, nil
	}
	return ToStarlark(got)
}

func builtinHas(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		value starlark.Value
		path  string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "path", &path); err != nil {
		return nil, err
	}
	_, found, err := resolve(thread, value, path)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(found), nil
}

func resolve(thread *starlark.Thread, value starlark.Value, path string) (any, bool, error) {
	entry, err := ToGo(value)
	if err != nil {
		return nil, false, err
	}
	if c, ok := thread.Local(containerLocal).(*collections.Container); ok {
		return c.ResolveEntry(entry, path)
	}
	return arr.Resolver{}.Resolve(entry, path)
}
