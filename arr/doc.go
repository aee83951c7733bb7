// Package arr resolves paths into nested Go values and provides the small
// set of slice helpers the container layer is built on.
//
// # Paths
//
// A path is a separator-delimited list of segments ("user.address.city").
// Each segment indexes one level: map keys by name (integer keys when the
// segment parses as an integer), slices and arrays by 1-based position with
// negative positions counting from the end, structs by exported field name.
// The paths "" and "." denote the value itself.
//
//	m := map[string]any{
//	    "user": map[string]any{
//	        "name":    "Alice",
//	        "address": map[string]any{"city": "London"},
//	        "tags":    []any{"admin", "ops"},
//	    },
//	}
//	arr.Get(m, "user.address.city")            // → "London"
//	arr.Get(m, "user.tags.-1")                 // → "ops"
//	arr.Set(m, "user.address.postcode", "EC1")
//	arr.Has(m, "user.name")                    // → true
//	flat := arr.Dot(m)                         // → {"user.name": "Alice", "user.tags.1": "admin", ...}
//
// A [Resolver] carries the separator and strictness. The zero value treats a
// malformed path ("a..b") as not found; a strict Resolver reports
// [ErrMalformedPath].
//
// # Entries
//
// [Entries] lists any slice, array or map as key/value pairs in a
// deterministic order, which is how callers iterate containers of unknown
// Go type.
package arr
