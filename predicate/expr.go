package predicate

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Expr is a compiled CEL expression used either as a filter ([Filter]) or a
// sort comparator ([Comparator]).
type Expr struct {
	Source string

	program    cel.Program
	comparator bool
}

// Filter compiles a CEL boolean expression over the variables value and key.
//
//	e, err := predicate.Filter(`value.age >= 18 && value.name.startsWith("A")`)
//	ok, err := e.Match(entry, 1)
func Filter(source string) (*Expr, error) {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.Variable("key", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("predicate: creating CEL environment: %w", err)
	}
	prg, err := compile(env, source, cel.BoolType)
	if err != nil {
		return nil, err
	}
	return &Expr{Source: source, program: prg}, nil
}

// Comparator compiles a CEL expression over the variables a and b. The
// expression yields either a bool ("a sorts before b") or an int (negative,
// zero or positive, like a three-way compare).
//
//	e, _ := predicate.Comparator(`a.price < b.price`)
//	e, _ := predicate.Comparator(`a.name < b.name ? -1 : a.name > b.name ? 1 : 0`)
func Comparator(source string) (*Expr, error) {
	env, err := cel.NewEnv(
		cel.Variable("a", cel.DynType),
		cel.Variable("b", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("predicate: creating CEL environment: %w", err)
	}
	prg, err := compile(env, source, cel.BoolType, cel.IntType)
	if err != nil {
		return nil, err
	}
	return &Expr{Source: source, program: prg, comparator: true}, nil
}

func compile(env *cel.Env, source string, want ...*cel.Type) (cel.Program, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrArgument)
	}
	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: compiling %q: %v", ErrArgument, source, issues.Err())
	}
	out := ast.OutputType()
	accepted := out.IsExactType(cel.DynType)
	for _, t := range want {
		accepted = accepted || out.IsExactType(t)
	}
	if !accepted {
		return nil, fmt.Errorf("%w: %q yields %s", ErrArgument, source, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: building program for %q: %v", ErrArgument, source, err)
	}
	return prg, nil
}

// Match evaluates a filter expression against one entry. It satisfies the
// [Predicate] signature.
func (e *Expr) Match(value, key any) (bool, error) {
	if e.comparator {
		return false, fmt.Errorf("%w: %q is a comparator, not a filter", ErrArgument, e.Source)
	}
	out, _, err := e.program.Eval(map[string]any{"value": value, "key": key})
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrExpr, e.Source, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T, want bool", ErrExpr, e.Source, out.Value())
	}
	return b, nil
}

// Less evaluates a comparator expression and reports whether a sorts
// before b.
func (e *Expr) Less(a, b any) (bool, error) {
	if !e.comparator {
		return false, fmt.Errorf("%w: %q is a filter, not a comparator", ErrArgument, e.Source)
	}
	out, _, err := e.program.Eval(map[string]any{"a": a, "b": b})
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrExpr, e.Source, err)
	}
	switch v := out.Value().(type) {
	case bool:
		return v, nil
	case int64:
		return v < 0, nil
	}
	return false, fmt.Errorf("%w: %q returned %T, want bool or int", ErrExpr, e.Source, out.Value())
}
