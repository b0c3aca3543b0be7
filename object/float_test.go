package object

import (
	"testing"

	"github.com/bpl-lang/bpl/op"
	"github.com/stretchr/testify/require"
)

func TestFloatBasics(t *testing.T) {
	value := NewFloat(-3.5)
	require.Equal(t, FLOAT, value.Type())
	require.Equal(t, -3.5, value.Value())
	require.Equal(t, "-3.5", value.String())
	require.Equal(t, -3.5, value.Interface())
	require.True(t, value.IsTruthy())
	require.False(t, NewFloat(0.0).IsTruthy())
}

func TestFloatInspect(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2.0, "2.0"},
		{2.5, "2.5"},
		{100.0, "100.0"},
		{0.0, "0.0"},
		{1e20, "1e+20"},
		{0.0000001, "1e-07"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.expected, NewFloat(tc.value).Inspect(), "%v", tc.value)
	}
}

func TestFloatArithmetic(t *testing.T) {
	tests := []struct {
		left     float64
		opType   op.BinaryOpType
		right    float64
		expected float64
	}{
		{2.5, op.Add, 0.5, 3.0},
		{2.5, op.Subtract, 0.5, 2.0},
		{2.5, op.Multiply, 2.0, 5.0},
		{7.0, op.Divide, 2.0, 3.5},
		// Floored modulo: result sign follows the divisor
		{7.5, op.Modulo, 2.0, 1.5},
		{-7.5, op.Modulo, 2.0, 0.5},
		{7.5, op.Modulo, -2.0, -0.5},
	}
	for _, tc := range tests {
		result, err := NewFloat(tc.left).RunOperation(tc.opType, NewFloat(tc.right))
		require.Nil(t, err)
		flt, ok := result.(*Float)
		require.True(t, ok)
		require.Equal(t, tc.expected, flt.Value(),
			"%v %v %v", tc.left, tc.opType, tc.right)
	}
}

func TestFloatDivisionByZero(t *testing.T) {
	_, err := NewFloat(1.5).RunOperation(op.Divide, NewFloat(0.0))
	require.NotNil(t, err)
	require.Equal(t, "float division by zero", err.Error())

	_, err = NewFloat(1.5).RunOperation(op.Modulo, NewInt(0))
	require.NotNil(t, err)
	require.Equal(t, "float modulo", err.Error())
}

func TestFloatTypeErrors(t *testing.T) {
	_, err := NewFloat(2.0).RunOperation(op.Add, NewString("x"))
	require.NotNil(t, err)
	require.Equal(t, "unsupported operation for float: + on type string", err.Error())

	_, err = NewFloat(2.0).RunOperation(op.Multiply, Nil)
	require.NotNil(t, err)
	require.Equal(t, "unsupported operation for float: * on type nil", err.Error())
}

func TestFloatCompare(t *testing.T) {
	half := NewFloat(0.5)
	one := NewInt(1)
	two := NewFloat(2.0)

	tests := []struct {
		first    Comparable
		second   Object
		expected int
	}{
		{half, one, -1},
		{two, one, 1},
		{two, two, 0},
		{two, NewInt(2), 0},
	}
	for _, tc := range tests {
		result, err := tc.first.Compare(tc.second)
		require.Nil(t, err)
		require.Equal(t, tc.expected, result,
			"first: %v, second: %v", tc.first, tc.second)
	}

	_, err := half.Compare(True)
	require.NotNil(t, err)
	require.Equal(t, "unable to compare float and bool", err.Error())
}

func TestFloatEquals(t *testing.T) {
	require.True(t, NewFloat(2.0).Equals(NewInt(2)))
	require.True(t, NewFloat(2.5).Equals(NewFloat(2.5)))
	require.False(t, NewFloat(2.5).Equals(NewInt(2)))
	require.False(t, NewFloat(0.0).Equals(NewString("0")))
}
