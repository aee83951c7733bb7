package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-fluent/collections"
)

// ─────────────────────────────────────────────────────────────────────────────
// Search & lookup
// ─────────────────────────────────────────────────────────────────────────────

func TestFirstLast(t *testing.T) {
	p := people()
	c := collections.FromValue(p)

	v, ok, err := c.First()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p[0], v)

	v, ok, _ = c.First("age", ">", 40)
	assert.True(t, ok)
	assert.Equal(t, p[2], v)

	v, _, _ = c.Last()
	assert.Equal(t, p[2], v)

	v, _, _ = c.Last("age", "<", 40)
	assert.Equal(t, p[1], v)

	_, ok, err = collections.Empty().First()
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.First("age", ">", "x")
	assert.ErrorIs(t, err, collections.ErrTypeMismatch)
}

func TestFirstOrFail(t *testing.T) {
	c := collections.FromValue(people())
	_, err := c.FirstOrFail("name", "Zed")
	assert.ErrorIs(t, err, collections.ErrNoMatchingItems)

	v, err := c.FirstOrFail("name", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 17, v.(map[string]any)["age"])
}

func TestContainsEverySearch(t *testing.T) {
	nums := collections.New(1, 2, 3)

	ok, err := nums.Contains(2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = collections.FromValue(people()).Contains("name", "Bob")
	assert.True(t, ok)

	_, err = nums.Contains()
	assert.ErrorIs(t, err, collections.ErrArgument)

	ok, _ = nums.Every(">", 0)
	assert.True(t, ok)
	ok, _ = nums.Every(">", 1)
	assert.False(t, ok)
	ok, _ = collections.Empty().Every(">", 0)
	assert.True(t, ok)

	key, ok, _ := collections.FromValue(people()).Search("name", "Carol")
	assert.True(t, ok)
	assert.Equal(t, 3, key)

	key, ok, _ = collections.FromValue(map[string]any{"a": 1, "b": 2}).Search(2)
	assert.True(t, ok)
	assert.Equal(t, "b", key)
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

func TestAggregates(t *testing.T) {
	c := collections.FromValue(people())

	sum, err := c.Sum("age")
	require.NoError(t, err)
	assert.Equal(t, 92.0, sum)

	avg, err := c.Average("age")
	require.NoError(t, err)
	assert.InDelta(t, 30.667, avg, 0.001)

	median, err := c.Median("age")
	require.NoError(t, err)
	assert.Equal(t, 30.0, median)

	lo, err := c.Min("age")
	require.NoError(t, err)
	assert.Equal(t, 17, lo)

	hi, err := c.Max("age")
	require.NoError(t, err)
	assert.Equal(t, 45, hi)

	even, _ := collections.New(4, 1, 3, 2).Median()
	assert.Equal(t, 2.5, even)

	skipped, _ := collections.New(1, nil, 2.5).Sum()
	assert.Equal(t, 3.5, skipped)
}

func TestAggregateErrors(t *testing.T) {
	total, err := collections.Empty().Sum()
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = collections.Empty().Average()
	assert.ErrorIs(t, err, collections.ErrEmptyCollection)
	_, err = collections.Empty().Max()
	assert.ErrorIs(t, err, collections.ErrEmptyCollection)

	_, err = collections.FromValue(people()).Sum("name")
	assert.ErrorIs(t, err, collections.ErrTypeMismatch)
}

func TestImplode(t *testing.T) {
	s, err := collections.FromValue(people()).Implode(", ", "name")
	require.NoError(t, err)
	assert.Equal(t, "Alice, Bob, Carol", s)

	s, _ = collections.New(1, 2, 3).Implode("-")
	assert.Equal(t, "1-2-3", s)
}
