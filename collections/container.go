package collections

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// Container is a fluent handle around one slice or map.
//
// Operations are invoked as methods (Where, SortBy, Set, ...) or by name
// through [Container.Call]. In eager mode (the default) each call runs at
// once: filters and actions return a new Container over freshly allocated
// storage, while sorts and updates write their result back into the
// receiver's storage and return the receiver. In deferred mode calls are
// recorded and [Container.Materialize] runs them in phase order.
//
// # Creating a container
//
//	c := collections.FromValue([]any{1, 2, 3})          // wraps by reference
//	c := collections.FromClone(doc)                     // deep copy
//	c := collections.OfLength(5, func(i int) any { return i * i })
//	c := collections.New("a", "b", "c")
//
// # Errors
//
// A failing call returns a failed Container; the receiver is left as it
// was. Further calls on a failed Container do nothing, and Err, Value and
// Materialize report the first failure:
//
//	out, err := collections.FromValue(users).
//	    Where("age", ">=", 18).
//	    SortBy("name").
//	    Value()
//
// A Container is not safe for concurrent use.
type Container struct {
	value    any
	cfg      Config
	registry *Registry
	pipeline *Pipeline
	err      error
}

// Generator produces the value stored at a 1-based position.
type Generator func(i int) any

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func build(value any, opts []Option) *Container {
	c := &Container{value: value, cfg: DefaultConfig(), registry: defaultRegistry}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromValue wraps raw without copying it. raw must be a slice, array or map;
// nil wraps an empty []any.
func FromValue(raw any, opts ...Option) *Container {
	if raw == nil {
		raw = []any{}
	}
	c := build(raw, opts)
	if _, err := Classify(raw); err != nil {
		c.value, c.err = nil, opError("fromValue", err)
	}
	return c
}

// FromClone wraps a deep copy of raw.
func FromClone(raw any, opts ...Option) *Container {
	return FromValue(deepClone(raw), opts...)
}

// OfLength builds a Sequence of n entries. When valueOrGenerator is a
// function taking an int (a [Generator], func(int) any, or any func(int) T)
// it is called with each position 1..n; otherwise every entry holds
// valueOrGenerator.
func OfLength(n int, valueOrGenerator any, opts ...Option) *Container {
	if n < 0 {
		c := build(nil, opts)
		c.err = opError("ofLength", argError("negative length %d", n))
		return c
	}
	produce := producer(valueOrGenerator)
	items := make([]any, n)
	for i := range items {
		items[i] = produce(i + 1)
	}
	return build(items, opts)
}

func producer(v any) func(int) any {
	switch f := v.(type) {
	case Generator:
		return f
	case func(int) any:
		return f
	case nil:
		return func(int) any { return nil }
	}
	rv := reflect.ValueOf(v)
	t := rv.Type()
	if t.Kind() == reflect.Func && !rv.IsNil() && t.NumIn() == 1 && t.NumOut() == 1 && t.In(0).Kind() == reflect.Int {
		return func(i int) any {
			return rv.Call([]reflect.Value{reflect.ValueOf(i).Convert(t.In(0))})[0].Interface()
		}
	}
	return func(int) any { return v }
}

// New wraps a copy of items as a Sequence.
func New(items ...any) *Container {
	dst := make([]any, len(items))
	copy(dst, items)
	return build(dst, nil)
}

// Empty returns an empty Sequence.
func Empty(opts ...Option) *Container {
	return build([]any{}, opts)
}

// ─────────────────────────────────────────────────────────────────────────────
// Mode & state
// ─────────────────────────────────────────────────────────────────────────────

// Raw returns the wrapped value itself, without running pending steps.
// Comparing Raw results compares storage identity.
func (c *Container) Raw() any { return c.value }

// Value returns the container's current value. In deferred mode the pending
// steps are previewed without being consumed.
func (c *Container) Value() (any, error) { return c.current() }

// Err returns the error that failed the chain, if any.
func (c *Container) Err() error { return c.err }

// Config returns the container's configuration.
func (c *Container) Config() Config { return c.cfg }

// Registry returns the registry consulted for non-built-in operations.
func (c *Container) Registry() *Registry { return c.registry }

// Shape classifies the current value.
func (c *Container) Shape() (Shape, error) {
	v, err := c.current()
	if err != nil {
		return 0, err
	}
	return Classify(v)
}

// IsDeferred reports whether operations are being recorded.
func (c *Container) IsDeferred() bool { return c.pipeline != nil }

// Defer switches c to deferred mode and returns it.
func (c *Container) Defer() *Container {
	if c.err == nil && c.pipeline == nil {
		c.pipeline = &Pipeline{}
	}
	return c
}

// Pipeline returns the recorded steps, or nil in eager mode.
func (c *Container) Pipeline() *Pipeline { return c.pipeline }

// Materialize runs the recorded steps (filters, then actions, then updates)
// and returns a new eager Container holding the result. The recorded steps
// are consumed on success. On failure no result is produced and both the
// wrapped value and the recorded steps are left intact.
//
// On an eager Container Materialize returns c.
func (c *Container) Materialize() (*Container, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.pipeline == nil {
		return c, nil
	}
	out, err := c.pipeline.run(c, c.value)
	if err != nil {
		return nil, err
	}
	c.pipeline.reset()
	return c.derive(out), nil
}

// Replay runs the recorded steps against raw instead of the wrapped value,
// without consuming them. raw is not modified.
func (c *Container) Replay(raw any) (*Container, error) {
	if c.err != nil {
		return nil, c.err
	}
	if _, err := Classify(raw); err != nil {
		return nil, opError("replay", err)
	}
	if c.pipeline.Len() == 0 {
		return c.derive(raw), nil
	}
	out, err := c.pipeline.run(c, raw)
	if err != nil {
		return nil, err
	}
	return c.derive(out), nil
}

func (c *Container) current() (any, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.pipeline.Len() == 0 {
		return c.value, nil
	}
	return c.pipeline.run(c, c.value)
}

func (c *Container) derive(value any) *Container {
	return &Container{value: value, cfg: c.cfg, registry: c.registry}
}

func (c *Container) fail(op string, err error) *Container {
	err = opError(op, err)
	if c.cfg.Debug {
		c.cfg.logger().Debug("operation failed", "op", op, "error", err)
	}
	return &Container{cfg: c.cfg, registry: c.registry, err: err}
}

// reject fails a call made before anything ran. A deferred builder keeps
// the error itself so every handle to it fails on materialization.
func (c *Container) reject(op string, err error) *Container {
	if c.pipeline == nil {
		return c.fail(op, err)
	}
	c.err = c.fail(op, err).err
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispatch
// ─────────────────────────────────────────────────────────────────────────────

// Call invokes the operation called name, built-in or registered.
//
//	c.Call("where", "age", ">", 30).Call("sortBy", "name")
//
// Unknown names fail with [ErrUnknownOperation]. Arguments are validated
// when the call is made, in both modes.
func (c *Container) Call(name string, args ...any) *Container {
	if c.err != nil {
		return c
	}
	op, ok := lookupOperation(c.registry, name)
	if !ok {
		return c.reject(name, fmt.Errorf("%w: %q", ErrUnknownOperation, name))
	}
	args = append([]any(nil), args...)
	apply, err := op.prepare(c, args)
	if err != nil {
		return c.reject(name, err)
	}
	s := Step{
		Name:         name,
		Args:         args,
		Phase:        op.Phase,
		InPlace:      op.InPlace,
		SequenceOnly: op.SequenceOnly,
		apply:        apply,
	}
	if c.pipeline != nil {
		c.pipeline.add(s)
		return c
	}
	out, err := c.exec(s, c.value)
	if err != nil {
		return c.fail(name, err)
	}
	if s.InPlace {
		c.value = commitInPlace(c.value, out)
		return c
	}
	return c.derive(out)
}

func lookupOperation(r *Registry, name string) (Operation, bool) {
	if op, ok := builtins[name]; ok {
		return op, true
	}
	if r == nil {
		r = defaultRegistry
	}
	return r.prepared(name)
}

// exec runs one step against value. value itself is never modified.
func (c *Container) exec(s Step, value any) (any, error) {
	if s.SequenceOnly {
		if err := requireSequence(value); err != nil {
			return nil, err
		}
	}
	out, err := s.apply(c.derive(value))
	if err != nil {
		return nil, err
	}
	if _, err := Classify(out); err != nil {
		return nil, fmt.Errorf("%w: result is %T, not a container", ErrArgument, out)
	}
	if c.cfg.Debug {
		c.cfg.logger().Debug("step",
			"op", s.Name,
			"phase", s.Phase.String(),
			"in_place", s.InPlace,
			"len_in", arr.Len(value),
			"len_out", arr.Len(out),
		)
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolution helpers for operations
// ─────────────────────────────────────────────────────────────────────────────

// Resolve resolves path against the container's current value.
func (c *Container) Resolve(path string) (any, bool, error) {
	v, err := c.current()
	if err != nil {
		return nil, false, err
	}
	return c.ResolveEntry(v, path)
}

// ResolveEntry resolves path against entry using the container's separator
// and strictness.
func (c *Container) ResolveEntry(entry any, path string) (any, bool, error) {
	return c.cfg.resolver().Resolve(entry, path)
}

// MakePredicate builds a predicate from a where-style argument list (see
// [predicate.Parse]) that resolves paths with the container's settings.
func (c *Container) MakePredicate(args ...any) (predicate.Predicate, error) {
	return predicate.Make(c.cfg.resolver().Resolve, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Access
// ─────────────────────────────────────────────────────────────────────────────

// Len returns the number of key/value pairs, for both shapes.
func (c *Container) Len() int {
	v, err := c.current()
	if err != nil {
		return 0
	}
	return arr.Len(v)
}

// Count is an alias for [Container.Len].
func (c *Container) Count() int { return c.Len() }

// IsEmpty reports whether the container holds no entries.
func (c *Container) IsEmpty() bool { return c.Len() == 0 }

// IsNotEmpty reports whether the container holds at least one entry.
func (c *Container) IsNotEmpty() bool { return c.Len() > 0 }

// Get returns the value stored under key.
//
// On a Sequence an integer key is a 1-based position and negative positions
// count from the end: Get(-1) is the last element. On a Mapping key is
// matched against the map's keys, numbers of any kind comparing by value.
func (c *Container) Get(key any) (any, bool) {
	v, err := c.current()
	if err != nil {
		return nil, false
	}
	return lookupKey(v, key)
}

// Has reports whether key is present (see [Container.Get]).
func (c *Container) Has(key any) bool {
	_, ok := c.Get(key)
	return ok
}

// At returns the element at a 1-based position, negative from the end.
// It fails with [ErrShape] on a Mapping.
func (c *Container) At(i int) (any, error) {
	v, err := c.current()
	if err != nil {
		return nil, err
	}
	if err := requireSequence(v); err != nil {
		return nil, opError("at", err)
	}
	n := arr.Len(v)
	p := normalizePosition(i, n)
	if p < 1 || p > n {
		return nil, opError("at", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, n))
	}
	return arr.Entries(v)[p-1].Value, nil
}

// KeyList returns the keys in iteration order.
func (c *Container) KeyList() []any {
	v, err := c.current()
	if err != nil {
		return nil
	}
	entries := arr.Entries(v)
	keys := make([]any, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Each calls fn(value, key) for every entry in iteration order.
func (c *Container) Each(fn func(value, key any)) {
	v, err := c.current()
	if err != nil {
		return
	}
	for _, e := range arr.Entries(v) {
		fn(e.Value, e.Key)
	}
}

// Equals reports whether both containers hold structurally equal values.
func (c *Container) Equals(other *Container) bool {
	if other == nil {
		return false
	}
	a, err := c.current()
	if err != nil {
		return false
	}
	b, err := other.current()
	if err != nil {
		return false
	}
	return predicate.Equal(a, b)
}

// Same reports whether both containers wrap the same storage.
func (c *Container) Same(other *Container) bool {
	return other != nil && sameStorage(c.value, other.value)
}

// ToJSON encodes the current value as JSON. Mappings become objects and
// Sequences arrays.
func (c *Container) ToJSON() ([]byte, error) {
	v, err := c.current()
	if err != nil {
		return nil, err
	}
	return json.Marshal(Portable(v))
}

// String returns the JSON form of the container. It implements
// [fmt.Stringer].
func (c *Container) String() string {
	if c.err != nil {
		return fmt.Sprintf("<error: %v>", c.err)
	}
	b, err := c.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", c.value)
	}
	return string(b)
}

func normalizePosition(i, n int) int {
	if i < 0 {
		return n + i + 1
	}
	return i
}

func lookupKey(v any, key any) (any, bool) {
	if shape, err := Classify(v); err == nil && shape == Sequence {
		p, ok := position(key)
		if !ok {
			return nil, false
		}
		n := arr.Len(v)
		p = normalizePosition(p, n)
		if p < 1 || p > n {
			return nil, false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return rv.Index(p - 1).Interface(), true
		}
		return arr.Entries(v)[p-1].Value, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	if k, ok := assignTo(key, rv.Type().Key()); ok && k.Comparable() {
		if val := rv.MapIndex(k); val.IsValid() {
			return val.Interface(), true
		}
	}
	want := predicate.NormalizeKey(key)
	iter := rv.MapRange()
	for iter.Next() {
		if predicate.NormalizeKey(iter.Key().Interface()) == want {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}
