package collections_test

import (
	"fmt"

	"github.com/hasbyte1/go-fluent/collections"
)

func ExampleFromValue() {
	out, err := collections.FromValue([]any{1, 2, 3, 4}).
		Filter(func(v any) bool { return v.(int) > 2 }).
		Value()
	fmt.Println(out, err)
	// Output: [3 4] <nil>
}

func ExampleOfLength() {
	fmt.Println(collections.OfLength(5, func(i int) any { return i }).Raw())
	// Output: [1 2 3 4 5]
}

func ExampleContainer_Where() {
	names, _ := collections.FromValue(people()).
		Where("age", ">=", 18).
		SortByDesc("age").
		Implode(", ", "name")
	fmt.Println(names)
	// Output: Carol, Alice
}

func ExampleContainer_Duplicates() {
	fmt.Println(collections.New(1, 1, 2, 3, 4, 4, 4).Duplicates().Raw())
	// Output: map[1:2 4:3]
}

func ExampleContainer_Set() {
	s := []any{"a", "b", "c"}
	collections.FromValue(s).Set(-1, "z")
	fmt.Println(s)
	// Output: [a b z]
}

func ExampleContainer_Call() {
	c := collections.New(5, 3, 8, 1).
		Call("where", ">", 2).
		Call("sort")
	fmt.Println(c.Raw(), c.Err())
	// Output: [3 5 8] <nil>
}

func ExampleContainer_Materialize() {
	c := collections.New(5, 3, 8, 1).Defer().
		Set(1, 0).
		Map(func(v any) any { return v.(int) * 10 }).
		Where(">", 2)
	fmt.Println(c.Pipeline())

	out, err := c.Materialize()
	fmt.Println(out.Raw(), err)
	// Output:
	// where(">", 2) | map(func) | set(1, 0)
	// [0 30 80] <nil>
}

func ExampleRegistry_Register() {
	reg := collections.NewRegistry()
	reg.Register("evens", func(c *collections.Container, _ ...any) (any, error) {
		return c.Filter(func(v any) bool { n, _ := v.(int); return n%2 == 0 }).Value()
	}, collections.AsFilter())

	c := collections.FromValue([]any{1, 2, 3, 4}, collections.WithRegistry(reg))
	fmt.Println(c.Call("evens").Raw())
	// Output: [2 4]
}
