package predicate

import "fmt"

// Operator is a canonical comparison operator.
type Operator string

// Canonical operators. Aliases are folded onto these by [ParseOperator].
const (
	OpEq Operator = "=="
	OpNe Operator = "!="
	OpGe Operator = ">="
	OpLe Operator = "<="
	OpLt Operator = "<"
	OpGt Operator = ">"
)

var operatorTokens = map[string]Operator{
	"=":  OpEq,
	"==": OpEq,
	"~=": OpNe,
	"!=": OpNe,
	"<>": OpNe,
	">=": OpGe,
	"<=": OpLe,
	"<":  OpLt,
	">":  OpGt,
}

// ParseOperator folds an operator token onto its canonical [Operator].
func ParseOperator(tok string) (Operator, error) {
	op, ok := operatorTokens[tok]
	if !ok {
		return "", fmt.Errorf("%w: unknown operator %q", ErrArgument, tok)
	}
	return op, nil
}

// IsOperator reports whether tok is one of the recognised operator tokens.
func IsOperator(tok string) bool {
	_, ok := operatorTokens[tok]
	return ok
}

// IsOrdering reports whether op requires mutually ordered operands.
func (op Operator) IsOrdering() bool {
	switch op {
	case OpGe, OpLe, OpLt, OpGt:
		return true
	}
	return false
}
