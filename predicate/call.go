package predicate

import (
	"fmt"

	"github.com/hasbyte1/go-fluent/arr"
)

// Predicate decides whether an entry (value at key) matches.
type Predicate func(value, key any) (bool, error)

// ResolveFunc resolves path against entry. It has the shape of
// [arr.Resolver.Resolve].
type ResolveFunc func(entry any, path string) (any, bool, error)

// Form identifies which call shape produced a [Call].
type Form int

const (
	// FormFunc wraps a caller-supplied closure or compiled expression.
	FormFunc Form = iota
	// FormValue compares the entry itself for equality.
	FormValue
	// FormOpValue compares the entry itself with an operator.
	FormOpValue
	// FormPathValue compares the value at a path for equality.
	FormPathValue
	// FormPathOpValue compares the value at a path with an operator.
	FormPathOpValue
)

func (f Form) String() string {
	switch f {
	case FormFunc:
		return "func"
	case FormValue:
		return "value"
	case FormOpValue:
		return "op,value"
	case FormPathValue:
		return "path,value"
	case FormPathOpValue:
		return "path,op,value"
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// Call is the canonical form of a where-style argument list.
type Call struct {
	Form  Form
	Path  string
	Op    Operator
	Value any
	fn    Predicate
}

// Parse resolves a where-style argument list into a [Call].
//
// A single argument is either a predicate function (see [AsPredicate]) or a
// value compared for equality. Two arguments are (operator, value) when the
// first is an operator token, (path, value) otherwise. Three arguments are
// (path, operator, value).
func Parse(args ...any) (Call, error) {
	switch len(args) {
	case 1:
		if fn, ok := AsPredicate(args[0]); ok {
			return Call{Form: FormFunc, Path: ".", fn: fn}, nil
		}
		return Call{Form: FormValue, Path: ".", Op: OpEq, Value: args[0]}, nil
	case 2:
		head, ok := args[0].(string)
		if !ok {
			return Call{}, fmt.Errorf("%w: expected operator or path, got %T", ErrArgument, args[0])
		}
		if IsOperator(head) {
			op, _ := ParseOperator(head)
			return Call{Form: FormOpValue, Path: ".", Op: op, Value: args[1]}, nil
		}
		return Call{Form: FormPathValue, Path: head, Op: OpEq, Value: args[1]}, nil
	case 3:
		path, ok := args[0].(string)
		if !ok {
			return Call{}, fmt.Errorf("%w: expected path, got %T", ErrArgument, args[0])
		}
		tok, ok := args[1].(string)
		if !ok {
			return Call{}, fmt.Errorf("%w: expected operator, got %T", ErrArgument, args[1])
		}
		op, err := ParseOperator(tok)
		if err != nil {
			return Call{}, err
		}
		return Call{Form: FormPathOpValue, Path: path, Op: op, Value: args[2]}, nil
	}
	return Call{}, fmt.Errorf("%w: expected 1 to 3 arguments, got %d", ErrArgument, len(args))
}

// Predicate builds the matching function for c. A nil resolve uses a
// lenient "."-separated [arr.Resolver].
//
// Entries whose path cannot be resolved never match, whatever the operator.
func (c Call) Predicate(resolve ResolveFunc) Predicate {
	if c.Form == FormFunc {
		return c.fn
	}
	if resolve == nil {
		resolve = arr.Resolver{}.Resolve
	}
	path, op, want := c.Path, c.Op, c.Value
	return func(value, _ any) (bool, error) {
		got, found, err := resolve(value, path)
		if err != nil || !found {
			return false, err
		}
		return Evaluate(op, got, want)
	}
}

// Make is Parse followed by [Call.Predicate].
func Make(resolve ResolveFunc, args ...any) (Predicate, error) {
	c, err := Parse(args...)
	if err != nil {
		return nil, err
	}
	return c.Predicate(resolve), nil
}

// Not negates p. Errors pass through unchanged.
func Not(p Predicate) Predicate {
	return func(value, key any) (bool, error) {
		ok, err := p(value, key)
		return !ok && err == nil, err
	}
}

// AsPredicate recognises the closure shapes accepted in place of a value:
//
//	func(value any) bool
//	func(value, key any) bool
//	func(value any) (bool, error)
//	func(value, key any) (bool, error)
//	Predicate, *Expr
func AsPredicate(fn any) (Predicate, bool) {
	switch f := fn.(type) {
	case Predicate:
		return f, f != nil
	case func(value, key any) (bool, error):
		return f, f != nil
	case func(value any) bool:
		if f == nil {
			return nil, false
		}
		return func(value, _ any) (bool, error) { return f(value), nil }, true
	case func(value, key any) bool:
		if f == nil {
			return nil, false
		}
		return func(value, key any) (bool, error) { return f(value, key), nil }, true
	case func(value any) (bool, error):
		if f == nil {
			return nil, false
		}
		return func(value, _ any) (bool, error) { return f(value) }, true
	case *Expr:
		if f == nil {
			return nil, false
		}
		return f.Match, true
	}
	return nil, false
}
