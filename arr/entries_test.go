package arr_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/hasbyte1/go-fluent/arr"
)

func TestEntriesSequence(t *testing.T) {
	got := arr.Entries([]string{"a", "b"})
	want := []arr.Entry{{Key: 1, Value: "a"}, {Key: 2, Value: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries = %v; want %v", got, want)
	}
}

func TestEntriesMapOrder(t *testing.T) {
	got := arr.Entries(map[any]any{"b": 1, 2: "x", 1.5: "y", "a": 2, true: 0})
	keys := make([]any, len(got))
	for i, e := range got {
		keys[i] = e.Key
	}
	want := []any{1.5, 2, "a", "b", true}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v; want %v", keys, want)
	}

	typed := arr.Entries(map[string]int{"z": 1, "y": 2})
	if typed[0].Key != "y" || typed[1].Key != "z" {
		t.Fatalf("typed entries = %v", typed)
	}
}

func TestEntriesNonContainer(t *testing.T) {
	if arr.Entries(42) != nil || arr.Entries(nil) != nil {
		t.Fatal("Entries of a scalar should be nil")
	}
}

func TestIsContainerAndLen(t *testing.T) {
	tests := []struct {
		v    any
		is   bool
		size int
	}{
		{[]any{1, 2}, true, 2},
		{[3]int{}, true, 3},
		{map[string]any{"a": 1}, true, 1},
		{map[int]bool{}, true, 0},
		{"abc", false, 0},
		{nil, false, 0},
		{42, false, 0},
	}
	for _, tt := range tests {
		if got := arr.IsContainer(tt.v); got != tt.is {
			t.Fatalf("IsContainer(%#v) = %v", tt.v, got)
		}
		if got := arr.Len(tt.v); got != tt.size {
			t.Fatalf("Len(%#v) = %d; want %d", tt.v, got, tt.size)
		}
	}
}

func TestToFloatToInt(t *testing.T) {
	if f, ok := arr.ToFloat(uint8(3)); !ok || f != 3 {
		t.Fatalf("ToFloat(uint8) = %v, %v", f, ok)
	}
	if _, ok := arr.ToFloat("3"); ok {
		t.Fatal("ToFloat of a string should fail")
	}
	if n, ok := arr.ToInt(2.0); !ok || n != 2 {
		t.Fatalf("ToInt(2.0) = %v, %v", n, ok)
	}
	if _, ok := arr.ToInt(2.5); ok {
		t.Fatal("ToInt(2.5) should fail")
	}
	if n, ok := arr.ToInt(int32(-4)); !ok || n != -4 {
		t.Fatalf("ToInt(int32) = %v, %v", n, ok)
	}
	for _, v := range []any{uint64(math.MaxUint64), uint(math.MaxInt) + 1, 1e300, math.Inf(-1)} {
		if n, ok := arr.ToInt(v); ok {
			t.Fatalf("ToInt(%v) = %d; want no int", v, n)
		}
	}
}
