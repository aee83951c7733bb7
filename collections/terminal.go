package collections

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// ─────────────────────────────────────────────────────────────────────────────
// Search & lookup
//
// Terminal reads are never recorded. On a deferred Container they run
// against a preview of the pending steps.
// ─────────────────────────────────────────────────────────────────────────────

// First returns the first value, or the first value matching a where-style
// condition (see [Container.Where]).
func (c *Container) First(args ...any) (any, bool, error) {
	e, ok, err := c.find("first", false, args)
	return e.Value, ok, err
}

// Last returns the last value, or the last value matching a where-style
// condition.
func (c *Container) Last(args ...any) (any, bool, error) {
	e, ok, err := c.find("last", true, args)
	return e.Value, ok, err
}

// FirstOrFail is [Container.First] reporting a miss as [ErrNoMatchingItems].
func (c *Container) FirstOrFail(args ...any) (any, error) {
	v, ok, err := c.First(args...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, opError("firstOrFail", ErrNoMatchingItems)
	}
	return v, nil
}

// Contains reports whether any entry matches a where-style condition.
func (c *Container) Contains(args ...any) (bool, error) {
	if len(args) == 0 {
		return false, opError("contains", argError("missing condition"))
	}
	_, ok, err := c.find("contains", false, args)
	return ok, err
}

// Every reports whether all entries match a where-style condition. It is
// true for an empty container.
func (c *Container) Every(args ...any) (bool, error) {
	if len(args) == 0 {
		return false, opError("every", argError("missing condition"))
	}
	pred, err := c.MakePredicate(args...)
	if err != nil {
		return false, opError("every", err)
	}
	_, found, err := c.find("every", false, []any{predicate.Not(pred)})
	return !found && err == nil, err
}

// Search returns the key of the first entry matching a where-style
// condition.
func (c *Container) Search(args ...any) (any, bool, error) {
	if len(args) == 0 {
		return nil, false, opError("search", argError("missing condition"))
	}
	e, ok, err := c.find("search", false, args)
	return e.Key, ok, err
}

func (c *Container) find(op string, reverse bool, args []any) (arr.Entry, bool, error) {
	v, err := c.current()
	if err != nil {
		return arr.Entry{}, false, err
	}
	entries := arr.Entries(v)
	if reverse {
		entries = arr.Reverse(entries)
	}
	if len(args) == 0 {
		if len(entries) == 0 {
			return arr.Entry{}, false, nil
		}
		return entries[0], true, nil
	}
	pred, err := c.MakePredicate(args...)
	if err != nil {
		return arr.Entry{}, false, opError(op, err)
	}
	for _, e := range entries {
		ok, err := pred(e.Value, e.Key)
		if err != nil {
			return arr.Entry{}, false, opError(op, err)
		}
		if ok {
			return e, true, nil
		}
	}
	return arr.Entry{}, false, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
//
// Aggregates read the values themselves, or the values at an optional path.
// Missing and nil values are skipped; any other non-number fails with
// ErrTypeMismatch.
// ─────────────────────────────────────────────────────────────────────────────

type sample struct {
	value any
	num   float64
}

func (c *Container) numbers(op string, path []string) ([]sample, error) {
	v, err := c.current()
	if err != nil {
		return nil, err
	}
	if len(path) > 1 {
		return nil, opError(op, argError("expected at most one path, got %d", len(path)))
	}
	p := "."
	if len(path) == 1 {
		p = path[0]
	}
	entries := arr.Entries(v)
	out := make([]sample, 0, len(entries))
	for _, e := range entries {
		x, found, err := c.ResolveEntry(e.Value, p)
		if err != nil {
			return nil, opError(op, err)
		}
		if !found || isNil(x) {
			continue
		}
		f, ok := predicate.Number(x)
		if !ok {
			return nil, opError(op, fmt.Errorf("%w: %T is not a number", ErrTypeMismatch, x))
		}
		out = append(out, sample{value: x, num: f})
	}
	return out, nil
}

// Sum adds the values. An empty container sums to 0.
func (c *Container) Sum(path ...string) (float64, error) {
	nums, err := c.numbers("sum", path)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, n := range nums {
		total += n.num
	}
	return total, nil
}

// Average returns the arithmetic mean.
func (c *Container) Average(path ...string) (float64, error) {
	nums, err := c.numbers("average", path)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, opError("average", ErrEmptyCollection)
	}
	var total float64
	for _, n := range nums {
		total += n.num
	}
	return total / float64(len(nums)), nil
}

// Median returns the middle value, or the mean of the two middle values.
func (c *Container) Median(path ...string) (float64, error) {
	nums, err := c.numbers("median", path)
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 0, opError("median", ErrEmptyCollection)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i].num < nums[j].num })
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid].num, nil
	}
	return (nums[mid-1].num + nums[mid].num) / 2, nil
}

// Min returns the smallest value, as stored.
func (c *Container) Min(path ...string) (any, error) {
	return c.extreme("min", path, func(a, b float64) bool { return a < b })
}

// Max returns the largest value, as stored.
func (c *Container) Max(path ...string) (any, error) {
	return c.extreme("max", path, func(a, b float64) bool { return a > b })
}

func (c *Container) extreme(op string, path []string, better func(a, b float64) bool) (any, error) {
	nums, err := c.numbers(op, path)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, opError(op, ErrEmptyCollection)
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if better(n.num, best.num) {
			best = n
		}
	}
	return best.value, nil
}

// Implode joins the values (or the values at path) with sep.
func (c *Container) Implode(sep string, path ...string) (string, error) {
	v, err := c.current()
	if err != nil {
		return "", err
	}
	if len(path) > 1 {
		return "", opError("implode", argError("expected at most one path, got %d", len(path)))
	}
	p := "."
	if len(path) == 1 {
		p = path[0]
	}
	entries := arr.Entries(v)
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		x, found, err := c.ResolveEntry(e.Value, p)
		if err != nil {
			return "", opError("implode", err)
		}
		if found {
			parts = append(parts, fmt.Sprint(x))
		}
	}
	return strings.Join(parts, sep), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Conditional pipeline
// ─────────────────────────────────────────────────────────────────────────────

// When calls fn(c) if condition is true and returns the result.
// Otherwise returns c unchanged.
func (c *Container) When(condition bool, fn func(*Container) *Container) *Container {
	if condition && c.err == nil {
		return fn(c)
	}
	return c
}

// Unless calls fn(c) if condition is false; otherwise returns c.
func (c *Container) Unless(condition bool, fn func(*Container) *Container) *Container {
	return c.When(!condition, fn)
}

// WhenEmpty calls fn(c) if c is empty; otherwise returns c.
func (c *Container) WhenEmpty(fn func(*Container) *Container) *Container {
	return c.When(c.IsEmpty(), fn)
}

// WhenNotEmpty calls fn(c) if c is not empty; otherwise returns c.
func (c *Container) WhenNotEmpty(fn func(*Container) *Container) *Container {
	return c.When(c.IsNotEmpty(), fn)
}

// Tap calls fn(c) for side effects and returns c.
func (c *Container) Tap(fn func(*Container)) *Container {
	fn(c)
	return c
}
