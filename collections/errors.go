package collections

import (
	"errors"
	"fmt"

	"github.com/hasbyte1/go-fluent/arr"
	"github.com/hasbyte1/go-fluent/predicate"
)

// Sentinel errors returned by Container operations. Match them with
// errors.Is; every failure reaching the caller is wrapped in an [*OpError].
var (
	// ErrShape is returned when a Sequence-only operation (sort, slice,
	// chunk, positional access, ...) is invoked on a Mapping.
	ErrShape = errors.New("collections: operation requires a sequence")

	// ErrUnknownOperation is returned by [Container.Call] when a name is
	// neither a built-in operation nor registered in the Registry.
	ErrUnknownOperation = errors.New("collections: unknown operation")

	// ErrEmptyCollection is returned when an operation requires at least one
	// element but the container is empty.
	ErrEmptyCollection = errors.New("collections: operation on empty collection")

	// ErrIndexOutOfRange is returned when a position is outside 1..Len().
	ErrIndexOutOfRange = errors.New("collections: index out of range")

	// ErrNoMatchingItems is returned by FirstOrFail when no entry satisfies
	// the predicate.
	ErrNoMatchingItems = errors.New("collections: no items match the given condition")
)

// Errors shared with the packages the container is built on.
var (
	// ErrTypeMismatch: ordering or arithmetic over incomparable values.
	ErrTypeMismatch = predicate.ErrTypeMismatch
	// ErrArgument: structurally invalid arguments.
	ErrArgument = predicate.ErrArgument
	// ErrPath: malformed path in strict mode.
	ErrPath = arr.ErrMalformedPath
)

// OpError records the operation that failed and why.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, err error) error {
	var oe *OpError
	if errors.As(err, &oe) && oe.Op == op {
		return err
	}
	return &OpError{Op: op, Err: err}
}

func argError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrArgument}, args...)...)
}
