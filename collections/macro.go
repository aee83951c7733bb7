package collections

import (
	"sort"
	"sync"
)

// OperationFunc implements a registered operation.
//
// c wraps the operation's input value and carries the calling Container's
// configuration, so implementations can use [Container.Raw],
// [Container.Resolve] and [Container.MakePredicate]. The returned value must
// be a container; it becomes the operation's result. Implementations must
// not modify c's value: in-place operations have their result written back
// by the caller.
type OperationFunc func(c *Container, args ...any) (any, error)

// Operation describes one entry of the operation table.
type Operation struct {
	Name         string
	Phase        Phase
	InPlace      bool
	SequenceOnly bool
	// Func is nil for built-in operations.
	Func OperationFunc

	prepare prepareFunc
}

// OperationOption sets metadata on a registered operation.
type OperationOption func(*Operation)

// AsFilter places the operation in the filter phase.
func AsFilter() OperationOption {
	return func(op *Operation) { op.Phase = PhaseFilter; op.InPlace = false }
}

// AsAction places the operation in the action phase. This is the default.
func AsAction() OperationOption {
	return func(op *Operation) { op.Phase = PhaseAction }
}

// AsUpdate places the operation in the update phase. Updates always write
// their result back into the Container they run on.
func AsUpdate() OperationOption {
	return func(op *Operation) { op.Phase = PhaseUpdate; op.InPlace = true }
}

// InPlace marks an action as writing its result back into the Container.
func InPlace() OperationOption {
	return func(op *Operation) {
		if op.Phase != PhaseFilter {
			op.InPlace = true
		}
	}
}

// SequenceOnly makes the operation fail with [ErrShape] on Mappings.
func SequenceOnly() OperationOption {
	return func(op *Operation) { op.SequenceOnly = true }
}

// Registry is a goroutine-safe table of user-supplied operations. It is
// populate-only: entries can be replaced but never removed.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide Registry used by Containers built
// without [WithRegistry].
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds fn under name. Re-registering a name replaces it.
// Built-in operations take precedence over registered ones of the same name.
//
// Example – register an operation that keeps only even numbers:
//
//	reg.Register("evens", func(c *collections.Container, _ ...any) (any, error) {
//	    return c.Filter(func(v any) bool { n, _ := v.(int); return n%2 == 0 }).Value()
//	}, collections.AsFilter())
//
//	collections.New(1, 2, 3, 4).Call("evens").Raw() // []any{2, 4}
func (r *Registry) Register(name string, fn OperationFunc, opts ...OperationOption) {
	op := Operation{Name: name, Phase: PhaseAction, Func: fn}
	for _, opt := range opts {
		opt(&op)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[name] = op
}

// Has reports whether an operation with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[name]
	return ok
}

// Lookup returns the registered operation called name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// RegisterOperation adds fn to the [DefaultRegistry].
func RegisterOperation(name string, fn OperationFunc, opts ...OperationOption) {
	defaultRegistry.Register(name, fn, opts...)
}

// HasOperation reports whether name is registered in the [DefaultRegistry].
func HasOperation(name string) bool {
	return defaultRegistry.Has(name)
}

// Catalogue lists the built-in operations followed by those registered in r
// (the default registry when r is nil), each group sorted by name.
func Catalogue(r *Registry) []Operation {
	if r == nil {
		r = defaultRegistry
	}
	out := make([]Operation, 0, len(builtins))
	for _, op := range builtins {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for _, name := range r.Names() {
		if _, shadowed := builtins[name]; shadowed {
			continue
		}
		op, _ := r.Lookup(name)
		out = append(out, op)
	}
	return out
}

func (r *Registry) prepared(name string) (Operation, bool) {
	op, ok := r.Lookup(name)
	if !ok || op.Func == nil {
		return Operation{}, false
	}
	fn := op.Func
	op.prepare = func(_ *Container, args []any) (applyFunc, error) {
		return func(in *Container) (any, error) { return fn(in, args...) }, nil
	}
	return op, true
}
