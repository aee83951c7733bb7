package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-fluent/collections"
)

func names(t *testing.T, c *collections.Container) []any {
	t.Helper()
	out, err := c.Pluck("name").Value()
	require.NoError(t, err)
	return out.([]any)
}

func TestFilter(t *testing.T) {
	out := collections.FromValue([]any{1, 2, 3, 4}).Filter(func(v any) bool { return v.(int) > 2 })
	assert.Equal(t, []any{3, 4}, out.Raw())

	typed := collections.FromValue([]int{1, 2, 3, 4}).Filter(func(v any) bool { return v.(int)%2 == 0 })
	assert.Equal(t, []int{2, 4}, typed.Raw())

	withKey := collections.New("a", "b", "c").Filter(func(_, k any) bool { return k.(int) != 2 })
	assert.Equal(t, []any{"a", "c"}, withKey.Raw())

	truthy := collections.New(0, 1, "", "a", nil, false, true, []any{}).Filter()
	assert.Equal(t, []any{1, "a", true}, truthy.Raw())

	rejected := collections.New(1, 2, 3).Reject(func(v any) bool { return v.(int) == 2 })
	assert.Equal(t, []any{1, 3}, rejected.Raw())
}

func TestFilterKeepsMappingKeys(t *testing.T) {
	out := collections.FromValue(map[string]int{"a": 1, "b": 2}).Filter(func(v any) bool { return v.(int) > 1 })
	assert.Equal(t, map[string]int{"b": 2}, out.Raw())
}

func TestFilterRejectsNonPredicate(t *testing.T) {
	assert.ErrorIs(t, collections.New(1).Filter(42).Err(), collections.ErrArgument)
}

func TestWhereForms(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want []any
	}{
		{"value", []any{2}, []any{2, 2}},
		{"op value", []any{"==", 2}, []any{2, 2}},
		{"ordering", []any{">=", 3}, []any{3, 4}},
		{"op alias", []any{"<>", 2}, []any{1, 3, 4}},
		{"func", []any{func(v any) bool { return v.(int) < 2 }}, []any{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := collections.FromValue([]any{1, 2, 2, 3, 4}).Where(tt.args...)
			require.NoError(t, out.Err())
			assert.Equal(t, tt.want, out.Raw())
		})
	}
}

func TestWherePaths(t *testing.T) {
	c := collections.FromValue(people())

	assert.Equal(t, []any{"Alice", "Carol"}, names(t, c.Where("age", ">=", 18)))
	assert.Equal(t, []any{"Bob"}, names(t, c.Where("name", "Bob")))
	assert.Equal(t, []any{"Alice"}, names(t, c.Where("tags.1", "admin")))
	assert.Equal(t, []any{"Alice"}, names(t, c.Where("tags.-1", "ops")))
	assert.Equal(t, []any{"Bob"}, names(t, c.WhereNot("age", ">=", 18)))
}

func TestWhereMissingPathNeverMatches(t *testing.T) {
	c := collections.FromValue(people())
	assert.Equal(t, []any{"Alice", "Bob"}, names(t, c.Where("email", "!=", "x")))
	assert.Equal(t, []any{"Alice"}, names(t, c.Where("tags", "!=", nil)))

	// whereNot negates the result, so entries without the path are kept.
	assert.Equal(t, []any{"Carol"}, names(t, c.WhereNot("email", "!=", "x").WhereMissing("email")))
}

func TestWhereTypeMismatch(t *testing.T) {
	err := collections.FromValue(people()).Where("age", ">", "x").Err()
	assert.ErrorIs(t, err, collections.ErrTypeMismatch)
}

func TestWhereBadArguments(t *testing.T) {
	c := collections.New(1)
	assert.ErrorIs(t, c.Where("age", "<=>", 1).Err(), collections.ErrArgument)
	assert.ErrorIs(t, c.Where().Err(), collections.ErrArgument)
	assert.ErrorIs(t, c.Where(1, 2).Err(), collections.ErrArgument)
}

func TestMalformedPath(t *testing.T) {
	lenient := collections.FromValue(people()).Where("a..b", 1)
	require.NoError(t, lenient.Err())
	assert.Equal(t, 0, lenient.Len())

	strict := collections.FromValue(people(), collections.WithStrict(true)).Where("a..b", 1)
	assert.ErrorIs(t, strict.Err(), collections.ErrPath)
}

func TestNilAndPresence(t *testing.T) {
	c := collections.FromValue(people())

	assert.Equal(t, []any{"Bob", "Carol"}, names(t, c.WhereNil("email")))
	assert.Equal(t, []any{"Alice"}, names(t, c.WhereNotNil("email")))
	assert.Equal(t, []any{"Alice", "Bob"}, names(t, c.WhereHas("email")))
	assert.Equal(t, []any{"Carol"}, names(t, c.WhereMissing("email")))

	values := collections.New(1, nil, 2).WhereNotNil()
	assert.Equal(t, []any{1, 2}, values.Raw())
}

func TestWhereIn(t *testing.T) {
	c := collections.FromValue(people())
	assert.Equal(t, []any{"Alice", "Carol"}, names(t, c.WhereIn("name", []string{"Alice", "Carol"})))
	assert.Equal(t, []any{"Bob"}, names(t, c.WhereNotIn("name", []string{"Alice", "Carol"})))
	assert.Equal(t, []any{"Bob"}, names(t, c.WhereIn("age", []float64{17})))
	assert.ErrorIs(t, c.WhereIn("name", "Alice").Err(), collections.ErrArgument)
}

func TestWhereBetween(t *testing.T) {
	c := collections.FromValue(people())
	assert.Equal(t, []any{"Alice"}, names(t, c.WhereBetween("age", 18, 40)))
	assert.Equal(t, []any{"Alice", "Carol"}, names(t, c.WhereBetween("age", 30, 45)))
}

func TestWhereExpr(t *testing.T) {
	c := collections.FromValue(people())
	assert.Equal(t, []any{"Alice", "Carol"}, names(t, c.WhereExpr(`value.age > 20`)))
	assert.Equal(t, []any{"Bob"}, names(t, c.WhereExpr(`key == 2`)))
	assert.ErrorIs(t, c.WhereExpr(`value.age +`).Err(), collections.ErrArgument)
	assert.ErrorIs(t, c.WhereExpr(`1 + 2`).Err(), collections.ErrArgument)
}

func TestUnique(t *testing.T) {
	out := collections.New(1, 1.0, int64(1), 2, "1", 2).Unique()
	assert.Equal(t, []any{1, 2, "1"}, out.Raw())

	nested := collections.New([]any{1}, map[any]any{1: 1}, []any{2}).Unique()
	assert.Equal(t, []any{[]any{1}, []any{2}}, nested.Raw())

	byTeam := collections.FromValue(people()).Unique("team")
	assert.Equal(t, []any{"Alice", "Bob"}, names(t, byTeam))
}

func TestOnlyExcept(t *testing.T) {
	m := collections.FromValue(map[string]any{"a": 1, "b": 2, "c": 3})
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, m.Only("a", "c").Raw())
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, m.Except("b").Raw())
	assert.Equal(t, map[string]any{"b": 2}, m.Only([]string{"b"}).Raw())

	s := collections.New("a", "b", "c")
	assert.Equal(t, []any{"a", "c"}, s.Only(1, -1).Raw())
	assert.Equal(t, []any{"b"}, s.Except(1, 3).Raw())
}
