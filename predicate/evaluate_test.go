package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		op          Operator
		left, right any
		want        bool
		wantErr     error
	}{
		{"int equals int64", OpEq, 2, int64(2), true, nil},
		{"int equals float", OpEq, 2, 2.0, true, nil},
		{"uint equals int", OpEq, uint8(7), 7, true, nil},
		{"strings", OpEq, "a", "a", true, nil},
		{"string kinds", OpEq, label("a"), "a", true, nil},
		{"number vs string", OpEq, 1, "1", false, nil},
		{"nil equals nil", OpEq, nil, nil, true, nil},
		{"nil map equals nil", OpEq, map[string]any(nil), nil, true, nil},
		{"nil vs zero", OpEq, nil, 0, false, nil},
		{"slice equals position map", OpEq, []any{"x"}, map[any]any{1: "x"}, true, nil},
		{"nested numeric maps", OpEq, map[string]any{"a": []any{1}}, map[string]any{"a": []int{1}}, true, nil},
		{"container vs scalar", OpEq, []any{1}, 1, false, nil},
		{"different lengths", OpEq, []any{1}, []any{1, 2}, false, nil},
		{"NaN is never equal", OpEq, math.NaN(), math.NaN(), false, nil},
		{"NaN not equal", OpNe, math.NaN(), math.NaN(), true, nil},
		{"not equal", OpNe, "a", "b", true, nil},
		{"greater strings", OpGt, "b", "a", true, nil},
		{"less mixed numbers", OpLt, 1, 2.5, true, nil},
		{"greater or equal", OpGe, 3, int32(3), true, nil},
		{"less or equal", OpLe, 4, 3, false, nil},
		{"large uint", OpGt, uint64(math.MaxUint64), int64(math.MaxInt64), true, nil},
		{"exact int64 ordering", OpLt, int64(math.MaxInt64 - 1), int64(math.MaxInt64), true, nil},
		{"number vs string order", OpGt, 1, "x", false, ErrTypeMismatch},
		{"nil order", OpLt, nil, 1, false, ErrTypeMismatch},
		{"container order", OpGe, []any{1}, []any{1}, false, ErrTypeMismatch},
		{"bool order", OpGt, true, false, false, ErrTypeMismatch},
		{"unknown operator", Operator("=~"), 1, 1, false, ErrArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.op, tt.left, tt.right)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	c, err := Compare("abc", "abd")
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = Compare(2.0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Compare(float32(3.5), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = Compare(struct{}{}, 1)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "struct {} and int")
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey(1), NormalizeKey(int64(1)))
	assert.Equal(t, NormalizeKey(1), NormalizeKey(1.0))
	assert.Equal(t, "a", NormalizeKey(label("a")))
	assert.Equal(t, true, NormalizeKey(true))
	assert.Equal(t, "[]interface {}:[x]", NormalizeKey([]any{"x"}))
	assert.Equal(t, 1.5, NormalizeKey(float32(1.5)))

	assert.NotEqual(t, NormalizeKey(int64(1<<53)), NormalizeKey(int64(1<<53+1)))
	assert.NotEqual(t, NormalizeKey(uint64(math.MaxUint64)), NormalizeKey(uint64(math.MaxUint64-1)))
	assert.Equal(t, NormalizeKey(uint(7)), NormalizeKey(int8(7)))
}

func TestNumber(t *testing.T) {
	f, ok := Number(uint16(9))
	assert.True(t, ok)
	assert.Equal(t, 9.0, f)

	_, ok = Number("9")
	assert.False(t, ok)
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		tok  string
		want Operator
	}{
		{"=", OpEq}, {"==", OpEq},
		{"~=", OpNe}, {"!=", OpNe}, {"<>", OpNe},
		{">=", OpGe}, {"<=", OpLe}, {"<", OpLt}, {">", OpGt},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got, err := ParseOperator(tt.tok)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsOperator(tt.tok))
		})
	}

	for _, tok := range []string{"gte", "===", "", "eq"} {
		_, err := ParseOperator(tok)
		assert.ErrorIs(t, err, ErrArgument, tok)
		assert.False(t, IsOperator(tok), tok)
	}

	assert.True(t, OpLt.IsOrdering())
	assert.False(t, OpNe.IsOrdering())
}
