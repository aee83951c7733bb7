// Package starmacro registers container operations written in Starlark.
//
// Every *.star file in a directory is executed once; each exported function
// (a name not starting with "_") becomes an operation named
// "<file>.<function>". The function receives the container's value followed
// by the call arguments and returns the new value:
//
//	# macros/nums.star
//	_phases = {"evens": "filter", "bump": "update"}
//
//	def evens(value):
//	    return [v for v in value if v % 2 == 0]
//
//	def bump(value, by = 1):
//	    return [v + by for v in value]
//
// The optional private _phases dict places functions in the filter or update
// phase; everything else is an action. Two builtins are predeclared:
// get(value, path, default = None) and has(value, path), which resolve paths
// the same way the container does.
//
//	names, err := starmacro.NewLoader("macros", logger).Load(reg)
//	collections.FromValue(doc, collections.WithRegistry(reg)).Call("nums.evens")
package starmacro
