package arr_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hasbyte1/go-fluent/arr"
)

type record struct {
	Name   string
	hidden int
}

// env resolves keys through a function, the way host objects do.
type env map[string]string

func (e env) Lookup(key string) (any, bool) {
	v, ok := e[key]
	if !ok {
		return nil, false
	}
	return "env:" + v, true
}

// ─── Resolver ────────────────────────────────────────────────────────────────

func TestResolve(t *testing.T) {
	m := makeNested()
	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"user.name", "Alice", true},
		{"user.tags.1", "admin", true},
		{"user.tags.-2", "admin", true},
		{"user.tags.3", nil, false},
		{"user.tags.x", nil, false},
		{"user.name.first", nil, false},
		{"nope", nil, false},
		{"a..b", nil, false},
	}
	for _, tt := range tests {
		got, found, err := arr.Resolver{}.Resolve(m, tt.path)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.path, err)
		}
		if found != tt.found || got != tt.want {
			t.Fatalf("Resolve(%q) = %v, %v; want %v, %v", tt.path, got, found, tt.want, tt.found)
		}
	}
}

func TestResolveSelf(t *testing.T) {
	for _, path := range []string{"", "."} {
		got, found, err := arr.Resolver{}.Resolve(7, path)
		if err != nil || !found || got != 7 {
			t.Fatalf("Resolve(7, %q) = %v, %v, %v", path, got, found, err)
		}
	}
	got, found, _ := arr.Resolver{Separator: "/"}.Resolve(7, "/")
	if !found || got != 7 {
		t.Fatalf("Resolve(7, \"/\") = %v, %v", got, found)
	}
}

func TestResolveStrict(t *testing.T) {
	r := arr.Resolver{Strict: true}
	for _, path := range []string{"a..b", ".a", "a."} {
		_, _, err := r.Resolve(makeNested(), path)
		if !errors.Is(err, arr.ErrMalformedPath) {
			t.Fatalf("Resolve(%q) err = %v; want ErrMalformedPath", path, err)
		}
	}
	if _, found, err := r.Resolve(makeNested(), "user.missing"); err != nil || found {
		t.Fatalf("missing key in strict mode = %v, %v; want not found, nil", found, err)
	}
}

func TestResolveCustomSeparator(t *testing.T) {
	r := arr.Resolver{Separator: "/"}
	got, found, _ := r.Resolve(makeNested(), "user/address/city")
	if !found || got != "London" {
		t.Fatalf("Resolve = %v, %v", got, found)
	}
	if _, found, _ := r.Resolve(map[string]any{"a.b": 1}, "a.b"); !found {
		t.Fatal("dots are ordinary characters under a / separator")
	}
}

func TestSplit(t *testing.T) {
	segs, err := arr.Resolver{}.Split("a.b.-1")
	if err != nil || !reflect.DeepEqual(segs, []string{"a", "b", "-1"}) {
		t.Fatalf("Split = %v, %v", segs, err)
	}
	segs, err = arr.Resolver{}.Split(".")
	if err != nil || segs != nil {
		t.Fatalf("Split(.) = %v, %v", segs, err)
	}
}

// ─── Lookup ──────────────────────────────────────────────────────────────────

func TestLookupContainers(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		key   string
		want  any
		found bool
	}{
		{"interface map int key", map[any]any{1: "x"}, "1", "x", true},
		{"interface map string key", map[any]any{"1": "s", 1: "x"}, "1", "s", true},
		{"typed int map", map[int]string{2: "b"}, "2", "b", true},
		{"typed uint map", map[uint8]string{2: "b"}, "2", "b", true},
		{"typed map bad key", map[int]string{2: "b"}, "b", nil, false},
		{"typed slice", []int{10, 20}, "-1", 20, true},
		{"array", [2]string{"a", "b"}, "1", "a", true},
		{"struct field", record{Name: "A"}, "Name", "A", true},
		{"unexported field", record{hidden: 1}, "hidden", nil, false},
		{"pointer", &record{Name: "P"}, "Name", "P", true},
		{"indexer", env{"HOME": "/root"}, "HOME", "env:/root", true},
		{"scalar", 42, "x", nil, false},
		{"nil", nil, "x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := arr.Lookup(tt.v, tt.key)
			if found != tt.found || got != tt.want {
				t.Fatalf("Lookup = %v, %v; want %v, %v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		seg  string
		n    int
		want int
		ok   bool
	}{
		{"1", 3, 0, true},
		{"3", 3, 2, true},
		{"-1", 3, 2, true},
		{"-3", 3, 0, true},
		{"0", 3, 0, false},
		{"4", 3, 0, false},
		{"-4", 3, 0, false},
		{"x", 3, 0, false},
	}
	for _, tt := range tests {
		got, ok := arr.Position(tt.seg, tt.n)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Position(%q, %d) = %d, %v; want %d, %v", tt.seg, tt.n, got, ok, tt.want, tt.ok)
		}
	}
}
