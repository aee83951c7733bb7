// Package hashing computes structural fingerprints of dynamic values.
//
// A fingerprint is the BLAKE2b-256 digest (golang.org/x/crypto/blake2b) of a
// canonical encoding of the value. Two values that are structurally equal
// (see the predicate package) always share a fingerprint, which lets grouping
// and de-duplication work on values that are not comparable in Go, such as
// maps and slices:
//
//	a := map[string]any{"id": 1, "tags": []any{"x"}}
//	b := map[string]any{"tags": []any{"x"}, "id": 1.0}
//	hashing.Of(a) == hashing.Of(b) // true
//
// Pointers and other opaque values hash by identity. Host types can opt into
// content hashing by implementing [Fingerprinter].
package hashing
