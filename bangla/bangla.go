// Package bangla provides Unicode normalization and keyword canonicalization
// for Bangla source text.
//
// Bangla words may be spelled differently across keyboard layouts (Probhat,
// Avro, NumPad) and Unicode normalization forms. This package maps all known
// variant spellings of each keyword and logical operator to one canonical
// form, so that for example ফাংশন and ফংশন both mean the function keyword.
package bangla

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonical keyword spellings.
const (
	KeywordIf       = "যদি"
	KeywordElse     = "নইলে"
	KeywordWhile    = "যখন"
	KeywordFunction = "ফাংশন"
	KeywordReturn   = "ফলাফল"
	KeywordTrue     = "সত্য"
	KeywordFalse    = "মিথ্যা"
	KeywordNil      = "নিল"
	KeywordPrint    = "দেখাও"
)

// Canonical logical operator spellings.
const (
	OperatorAnd = "এবং"
	OperatorOr  = "বা"
	OperatorNot = "না"
)

// keywordVariants maps every accepted spelling of a keyword to its canonical
// form. Keys are normalized with NormalizeWord before lookup, so entries here
// may be written in any Unicode form.
var keywordVariants = map[string]string{
	// if
	"যদি": KeywordIf,
	// else
	"নইলে":     KeywordElse,
	"অন্যথায়": KeywordElse,
	"নইতো":     KeywordElse,
	// while
	"যখন":     KeywordWhile,
	"যতক্ষণ": KeywordWhile,
	// function
	"ফাংশন": KeywordFunction,
	"ফংশন":  KeywordFunction,
	"ফাংশণ": KeywordFunction,
	// return
	"ফলাফল":   KeywordReturn,
	"ফেরত":    KeywordReturn,
	"রিটার্ন": KeywordReturn,
	// true
	"সত্য": KeywordTrue,
	"সঁচা": KeywordTrue,
	"ঠিক":  KeywordTrue,
	// false
	"মিথ্যা": KeywordFalse,
	"মিথা":   KeywordFalse,
	"ভুল":    KeywordFalse,
	// nil
	"নিল":    KeywordNil,
	"শূন্য": KeywordNil,
	"কোনো":   KeywordNil,
	// print
	"দেখাও":   KeywordPrint,
	"মুদ্রণ": KeywordPrint,
	"প্রিন্ট": KeywordPrint,
	"ছাপো":    KeywordPrint,
}

// logicalOpVariants maps every accepted spelling of a logical operator to its
// canonical form.
var logicalOpVariants = map[string]string{
	// and
	"এবং":  OperatorAnd,
	"এবাং": OperatorAnd,
	"ও":    OperatorAnd,
	// or
	"বা":    OperatorOr,
	"অথবা": OperatorOr,
	"অথবো": OperatorOr,
	// not
	"না": OperatorNot,
	"নয়": OperatorNot,
}

var (
	normKeywordVariants   map[string]string
	normLogicalOpVariants map[string]string
)

func init() {
	normKeywordVariants = normalizeKeys(keywordVariants)
	normLogicalOpVariants = normalizeKeys(logicalOpVariants)
}

func normalizeKeys(variants map[string]string) map[string]string {
	normalized := make(map[string]string, len(variants))
	for variant, canonical := range variants {
		normalized[NormalizeWord(variant)] = canonical
	}
	return normalized
}

// Normalize converts source text to Unicode composed form (NFC) so that
// tokenization is consistent regardless of how the input was encoded.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// NormalizeWord produces a normalization-insensitive canonical form of a word
// by decomposing it (NFD), stripping all combining marks, and recomposing
// (NFC). Two spellings that differ only in vowel signs or other combining
// marks normalize to the same string.
func NormalizeWord(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// CanonicalKeyword returns the canonical keyword spelling if word is any
// registered keyword variant, and otherwise returns word unchanged.
func CanonicalKeyword(word string) string {
	if canonical, ok := normKeywordVariants[NormalizeWord(word)]; ok {
		return canonical
	}
	return word
}

// CanonicalLogicalOp returns the canonical logical operator spelling if word
// is any registered operator variant, and otherwise returns word unchanged.
func CanonicalLogicalOp(word string) string {
	if canonical, ok := normLogicalOpVariants[NormalizeWord(word)]; ok {
		return canonical
	}
	return word
}

// IsKeywordVariant returns true if word is any registered spelling of a
// keyword.
func IsKeywordVariant(word string) bool {
	_, ok := normKeywordVariants[NormalizeWord(word)]
	return ok
}

// IsLogicalOpVariant returns true if word is any registered spelling of a
// logical operator.
func IsLogicalOpVariant(word string) bool {
	_, ok := normLogicalOpVariants[NormalizeWord(word)]
	return ok
}

// IsDigit returns true if r is a Unicode decimal digit (category Nd), which
// includes both ASCII digits and Bangla digits ০ through ৯.
func IsDigit(r rune) bool {
	return unicode.Is(unicode.Nd, r)
}

// DigitValue returns the numeric value 0 through 9 of a Unicode decimal
// digit, or -1 if r is not a decimal digit. Decimal digit blocks are encoded
// as contiguous runs starting at each script's zero, so the value is the
// offset within the run modulo ten.
func DigitValue(r rune) int {
	if '0' <= r && r <= '9' {
		return int(r - '0')
	}
	if r <= unicode.MaxLatin1 {
		return -1
	}
	for _, r16 := range unicode.Nd.R16 {
		if r > rune(r16.Hi) {
			continue
		}
		if r < rune(r16.Lo) {
			return -1
		}
		if r16.Stride != 1 {
			return -1
		}
		return int(r-rune(r16.Lo)) % 10
	}
	for _, r32 := range unicode.Nd.R32 {
		if r > rune(r32.Hi) {
			continue
		}
		if r < rune(r32.Lo) {
			return -1
		}
		if r32.Stride != 1 {
			return -1
		}
		return int(r-rune(r32.Lo)) % 10
	}
	return -1
}

// FoldDigits rewrites every Unicode decimal digit in s to its ASCII
// equivalent, leaving all other characters unchanged. Bangla numeric
// literals such as ১.৫ become parseable as 1.5.
func FoldDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if v := DigitValue(r); v >= 0 {
			b.WriteRune(rune('0' + v))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsIdentifierStart returns true if r can begin an identifier. Bangla
// letters qualify because they are Unicode letters.
func IsIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentifierPart returns true if r can appear after the first character of
// an identifier. Combining marks are included so that Bangla vowel signs and
// the hasanta stay attached to the word.
func IsIdentifierPart(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc)
}
