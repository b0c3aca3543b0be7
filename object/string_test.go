package object

import (
	"testing"

	"github.com/bpl-lang/bpl/op"
	"github.com/stretchr/testify/require"
)

func TestStringBasics(t *testing.T) {
	value := NewString("হ্যালো")
	require.Equal(t, STRING, value.Type())
	require.Equal(t, "হ্যালো", value.Value())
	require.Equal(t, "হ্যালো", value.String())
	require.Equal(t, `"হ্যালো"`, value.Inspect())
	require.Equal(t, "হ্যালো", value.Interface())
	require.True(t, value.IsTruthy())
	require.False(t, NewString("").IsTruthy())
}

func TestStringInspectEscapes(t *testing.T) {
	require.Equal(t, `"a\nb"`, NewString("a\nb").Inspect())
	require.Equal(t, `"সে বলল \"না\""`, NewString(`সে বলল "না"`).Inspect())
}

func TestStringConcat(t *testing.T) {
	result, err := NewString("হ্যা").RunOperation(op.Add, NewString("লো"))
	require.Nil(t, err)
	require.Equal(t, NewString("হ্যালো"), result)
}

func TestStringOperationErrors(t *testing.T) {
	_, err := NewString("ক").RunOperation(op.Subtract, NewString("খ"))
	require.NotNil(t, err)
	require.Equal(t, "unsupported operation for string: -", err.Error())

	_, err = NewString("ক").RunOperation(op.Add, NewInt(1))
	require.NotNil(t, err)
	require.Equal(t, "unsupported operation for string: + on type int", err.Error())
}

func TestStringCompare(t *testing.T) {
	tests := []struct {
		first    string
		second   string
		expected int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"ক", "খ", -1},
		{"খখ", "খ", 1},
	}
	for _, tc := range tests {
		result, err := NewString(tc.first).Compare(NewString(tc.second))
		require.Nil(t, err)
		require.Equal(t, tc.expected, result, "%q vs %q", tc.first, tc.second)
	}

	_, err := NewString("1").Compare(NewInt(1))
	require.NotNil(t, err)
	require.Equal(t, "unable to compare string and int", err.Error())
}

func TestStringEquals(t *testing.T) {
	require.True(t, NewString("ক").Equals(NewString("ক")))
	require.False(t, NewString("ক").Equals(NewString("খ")))
	require.False(t, NewString("1").Equals(NewInt(1)))
}
