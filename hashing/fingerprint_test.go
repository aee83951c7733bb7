package hashing_test

import (
	"testing"

	"github.com/hasbyte1/go-fluent/hashing"
)

type point struct{ X, Y int }

// caseless fingerprints its content case-insensitively.
type caseless string

func (c caseless) Fingerprint() []byte {
	out := []byte(c)
	for i, b := range out {
		if b >= 'A' && b <= 'Z' {
			out[i] = b + ('a' - 'A')
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Equal fingerprints
// ──────────────────────────────────────────────────────────────────────────────

func TestOf_Same(t *testing.T) {
	tests := []struct {
		name string
		a, b any
	}{
		{"int kinds", 1, int64(1)},
		{"unsigned", 1, uint8(1)},
		{"integral float", 1, 1.0},
		{"float32", 0.5, float32(0.5)},
		{"string kinds", "x", caselessString("x")},
		{"slice and dense map", []any{"x"}, map[any]any{1: "x"}},
		{"typed slice", []int{1, 2}, []any{1.0, int64(2)}},
		{"map key order", map[string]any{"a": 1, "b": 2}, map[any]any{"b": 2, "a": 1}},
		{"nil and empty slice", []any(nil), []any{}},
		{"nested", map[string]any{"t": []any{1}}, map[string]any{"t": map[int]int{1: 1}}},
		{"struct", point{1, 2}, point{1, 2}},
		{"fingerprinter", caseless("ABC"), caseless("abc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hashing.Of(tt.a) != hashing.Of(tt.b) {
				t.Fatalf("Of(%#v) != Of(%#v)", tt.a, tt.b)
			}
			if !hashing.Equal(tt.a, tt.b) {
				t.Fatalf("Equal(%#v, %#v) = false", tt.a, tt.b)
			}
		})
	}
}

type caselessString string

// ──────────────────────────────────────────────────────────────────────────────
// Distinct fingerprints
// ──────────────────────────────────────────────────────────────────────────────

func TestOf_Different(t *testing.T) {
	tests := []struct {
		name string
		a, b any
	}{
		{"number and string", 1, "1"},
		{"fraction", 1, 1.5},
		{"bool and number", true, 1},
		{"true and false", true, false},
		{"nil and empty", nil, []any{}},
		{"nil and zero", nil, 0},
		{"order", []any{1, 2}, []any{2, 1}},
		{"depth", []any{[]any{1}}, []any{1}},
		{"key", map[string]any{"a": 1}, map[string]any{"b": 1}},
		{"value", map[string]any{"a": 1}, map[string]any{"a": 2}},
		{"length prefix", []any{"ab", "c"}, []any{"a", "bc"}},
		{"struct", point{1, 2}, point{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hashing.Of(tt.a) == hashing.Of(tt.b) {
				t.Fatalf("Of(%#v) == Of(%#v)", tt.a, tt.b)
			}
		})
	}
}

func TestOf_PointersHashByIdentity(t *testing.T) {
	a, b := &point{1, 2}, &point{1, 2}
	if hashing.Of(a) != hashing.Of(a) {
		t.Fatal("same pointer should hash alike")
	}
	if hashing.Of(a) == hashing.Of(b) {
		t.Fatal("distinct pointers should hash differently")
	}
	var nilPtr *point
	if hashing.Of(nilPtr) != hashing.Of(nil) {
		t.Fatal("nil pointer should hash like nil")
	}
}

func TestOf_Deterministic(t *testing.T) {
	v := map[string]any{"a": []any{1, "x", nil}, "b": map[int]bool{1: true, 2: false}}
	want := hashing.Of(v)
	for i := 0; i < 20; i++ {
		if got := hashing.Of(v); got != want {
			t.Fatalf("iteration %d: fingerprint changed", i)
		}
	}
}

func TestSum_String(t *testing.T) {
	s := hashing.Of("x").String()
	if len(s) != 2*hashing.Size {
		t.Fatalf("len = %d, want %d", len(s), 2*hashing.Size)
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("non-hex rune %q in %s", r, s)
		}
	}
}
