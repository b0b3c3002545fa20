package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperator_Apply(t *testing.T) {
	tests := []struct {
		op      Operator
		a, b    float64
		want    float64
		wantErr bool
	}{
		{OpAdd, 2, 3, 5, false},
		{OpSubtract, 2, 3, -1, false},
		{OpMultiply, 2.5, 4, 10, false},
		{OpDivide, 9, 3, 3, false},
		{OpDivide, 1, 0, 0, true},
		{OpDivide, 0, 0, 0, true},
		{OpMultiply, math.MaxFloat64, 2, 0, true},
		{OpAdd, math.MaxFloat64, math.MaxFloat64, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			got, err := tt.op.Apply(tt.a, tt.b)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidResult)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperator_ApplyRejectsNone(t *testing.T) {
	_, err := OpNone.Apply(1, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidResult)
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"+":        OpAdd,
		"add":      OpAdd,
		"-":        OpSubtract,
		"−":        OpSubtract,
		"*":        OpMultiply,
		"x":        OpMultiply,
		"×":        OpMultiply,
		"Multiply": OpMultiply,
		"/":        OpDivide,
		"÷":        OpDivide,
	}

	for in, want := range tests {
		got, err := ParseOperator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOperator("^")
	assert.Error(t, err)
}

func TestOperator_Strings(t *testing.T) {
	assert.Equal(t, "+", OpAdd.String())
	assert.Equal(t, "divide", OpDivide.Name())
	assert.Equal(t, "", OpNone.String())
	assert.False(t, OpNone.Valid())
	assert.True(t, OpSubtract.Valid())
}
