package bangla

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWordDeterministic(t *testing.T) {
	words := []string{"ফাংশন", "মিথ্যা", "দেখাও", "x", "_tmp", ""}
	for _, w := range words {
		first := NormalizeWord(w)
		second := NormalizeWord(w)
		require.Equal(t, first, second)
		// Normalizing an already-normalized word is a no-op
		require.Equal(t, first, NormalizeWord(first))
	}
}

func TestNormalizeWordStripsCombiningMarks(t *testing.T) {
	// The hasanta and vowel signs are combining marks, so the variant
	// spelling without them normalizes to the same form
	require.Equal(t, NormalizeWord("মিথ্যা"), NormalizeWord("মিথা"))
	require.Equal(t, NormalizeWord("ফাংশন"), NormalizeWord("ফংশন"))
}

func TestCanonicalKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ফাংশন", "ফাংশন"},
		{"ফংশন", "ফাংশন"},
		{"ফাংশণ", "ফাংশন"},
		{"নইলে", "নইলে"},
		{"অন্যথায়", "নইলে"},
		{"নইতো", "নইলে"},
		{"যখন", "যখন"},
		{"যতক্ষণ", "যখন"},
		{"ফলাফল", "ফলাফল"},
		{"ফেরত", "ফলাফল"},
		{"রিটার্ন", "ফলাফল"},
		{"সত্য", "সত্য"},
		{"ঠিক", "সত্য"},
		{"মিথ্যা", "মিথ্যা"},
		{"ভুল", "মিথ্যা"},
		{"নিল", "নিল"},
		{"শূন্য", "নিল"},
		{"কোনো", "নিল"},
		{"দেখাও", "দেখাও"},
		{"মুদ্রণ", "দেখাও"},
		{"প্রিন্ট", "দেখাও"},
		{"ছাপো", "দেখাও"},
		{"যদি", "যদি"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalKeyword(tt.input), "input: %s", tt.input)
		require.True(t, IsKeywordVariant(tt.input), "input: %s", tt.input)
	}
}

func TestCanonicalKeywordUnknownWordUnchanged(t *testing.T) {
	require.Equal(t, "নাম", CanonicalKeyword("নাম"))
	require.Equal(t, "hello", CanonicalKeyword("hello"))
	require.False(t, IsKeywordVariant("নাম"))
	require.False(t, IsKeywordVariant("hello"))
}

func TestCanonicalLogicalOp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"এবং", "এবং"},
		{"এবাং", "এবং"},
		{"ও", "এবং"},
		{"বা", "বা"},
		{"অথবা", "বা"},
		{"অথবো", "বা"},
		{"না", "না"},
		{"নয়", "না"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalLogicalOp(tt.input), "input: %s", tt.input)
		require.True(t, IsLogicalOpVariant(tt.input), "input: %s", tt.input)
	}
	require.Equal(t, "যোগ", CanonicalLogicalOp("যোগ"))
	require.False(t, IsLogicalOpVariant("যোগ"))
}

func TestDigitValue(t *testing.T) {
	require.Equal(t, 0, DigitValue('0'))
	require.Equal(t, 9, DigitValue('9'))
	require.Equal(t, 0, DigitValue('০'))
	require.Equal(t, 5, DigitValue('৫'))
	require.Equal(t, 9, DigitValue('৯'))
	require.Equal(t, -1, DigitValue('a'))
	require.Equal(t, -1, DigitValue('ক'))
	require.Equal(t, -1, DigitValue('.'))
}

func TestFoldDigits(t *testing.T) {
	require.Equal(t, "123", FoldDigits("১২৩"))
	require.Equal(t, "1.5", FoldDigits("১.৫"))
	require.Equal(t, "42", FoldDigits("42"))
	require.Equal(t, "x1", FoldDigits("x১"))
	require.Equal(t, "", FoldDigits(""))
}

func TestIsDigit(t *testing.T) {
	require.True(t, IsDigit('7'))
	require.True(t, IsDigit('৭'))
	require.False(t, IsDigit('ক'))
	require.False(t, IsDigit('.'))
	require.False(t, IsDigit(' '))
}

func TestIdentifierPredicates(t *testing.T) {
	require.True(t, IsIdentifierStart('ক'))
	require.True(t, IsIdentifierStart('x'))
	require.True(t, IsIdentifierStart('_'))
	require.False(t, IsIdentifierStart('৫'))
	require.False(t, IsIdentifierStart('('))

	require.True(t, IsIdentifierPart('ক'))
	require.True(t, IsIdentifierPart('৫'))
	require.True(t, IsIdentifierPart('5'))
	require.True(t, IsIdentifierPart('_'))
	// Vowel sign (Mc) and hasanta (Mn) continue an identifier
	require.True(t, IsIdentifierPart('ি'))
	require.True(t, IsIdentifierPart('্'))
	require.False(t, IsIdentifierPart('('))
	require.False(t, IsIdentifierPart(' '))
}
