// Package lexer tokenizes source text for the parser.
//
// The lexer normalizes Unicode input, canonicalizes keyword variants, and
// produces INDENT and DEDENT tokens from a Python-like indentation model.
// It processes input one physical line at a time; the only multi-line
// construct is block structure via indentation.
package lexer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/bpl-lang/bpl/bangla"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/token"
)

// tabWidth is the number of columns a tab advances to when measuring
// indentation.
const tabWidth = 4

// operators in match order. Two-character operators come first so that
// matching is longest-first.
var operators = []string{
	"==", "!=", "<=", ">=",
	"+", "-", "*", "/", "%", "<", ">", "=",
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name used in positions and error messages.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// Lexer tokenizes one input string.
type Lexer struct {
	source   string
	filename string
}

// New returns a Lexer for the given source text. The text is normalized to
// Unicode composed form before any other processing.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{source: bangla.Normalize(source)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lex tokenizes source in one call.
func Lex(source string) ([]token.Token, error) {
	return New(source).Tokenize(context.Background())
}

// SourceLines returns the normalized, tab-expanded lines of the input.
// Token columns index into these lines, so they are the right text to show
// when reporting an error with a caret.
func (l *Lexer) SourceLines() []string {
	lines := splitLines(l.source)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = string(expandTabs(strings.TrimRight(line, "\r")))
	}
	return out
}

// Tokenize scans the entire input and returns the token stream, ending with
// exactly one EOF token. The first lexical error aborts scanning.
func (l *Lexer) Tokenize(ctx context.Context) ([]token.Token, error) {
	var tokens []token.Token
	indentStack := []int{0}
	lines := splitLines(l.source)

	for lineIdx, rawLine := range lines {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := strings.TrimRight(rawLine, "\r")

		// Blank lines emit a NEWLINE and do not affect indentation
		if strings.TrimSpace(line) == "" {
			tokens = append(tokens, l.simpleToken(token.NEWLINE, "\n", lineIdx, 0))
			continue
		}

		expanded := expandTabs(line)
		indent := measureIndent(expanded)

		if indent > indentStack[len(indentStack)-1] {
			indentStack = append(indentStack, indent)
			tokens = append(tokens, l.simpleToken(token.INDENT, strconv.Itoa(indent), lineIdx, 0))
		}
		for indent < indentStack[len(indentStack)-1] {
			indentStack = indentStack[:len(indentStack)-1]
			tokens = append(tokens, l.simpleToken(token.DEDENT, strconv.Itoa(indent), lineIdx, 0))
		}

		text := expanded[indent:]
		lineTokens, err := l.tokenizeLine(text, lineIdx, indent, string(expanded))
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, lineTokens...)
		tokens = append(tokens, l.simpleToken(token.NEWLINE, "\n", lineIdx, indent+len(text)))
	}

	// Unwind any open indentation levels at the last line
	lastLine := len(lines) - 1
	if lastLine < 0 {
		lastLine = 0
	}
	for len(indentStack) > 1 {
		indentStack = indentStack[:len(indentStack)-1]
		tokens = append(tokens, l.simpleToken(token.DEDENT, "0", lastLine, 0))
	}

	tokens = append(tokens, l.simpleToken(token.EOF, "", len(lines), 0))
	return tokens, nil
}

// tokenizeLine scans the content of one line after its indentation.
func (l *Lexer) tokenizeLine(text []rune, lineIdx, indent int, sourceLine string) ([]token.Token, error) {
	var tokens []token.Token
	i := 0
	for i < len(text) {
		ch := text[i]
		startCol := indent + i

		// Whitespace between tokens
		if unicode.IsSpace(ch) {
			i++
			continue
		}

		// Comment runs to end of line
		if ch == '#' {
			break
		}

		// String literal
		if ch == '"' || ch == '\'' {
			tok, next, err := l.lexString(text, i, lineIdx, startCol, sourceLine)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
			continue
		}

		// Number literal
		if bangla.IsDigit(ch) {
			tok, next, err := l.lexNumber(text, i, lineIdx, startCol, sourceLine)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
			continue
		}

		// Identifier or keyword (Bangla or Latin)
		if bangla.IsIdentifierStart(ch) {
			start := i
			for i < len(text) && bangla.IsIdentifierPart(text[i]) {
				i++
			}
			word := string(text[start:i])
			tokens = append(tokens, l.wordToken(word, lineIdx, startCol, i-start))
			continue
		}

		// Operators, longest-first
		if op := matchOperator(text, i); op != "" {
			tokens = append(tokens, l.spanToken(token.OP, op, lineIdx, startCol, len(op)))
			i += len(op)
			continue
		}

		// Delimiters
		switch ch {
		case '(', ')', ':', ',':
			tokens = append(tokens, l.spanToken(token.DELIM, string(ch), lineIdx, startCol, 1))
			i++
			continue
		}

		return nil, &Error{
			errType:    "অবৈধ চিহ্ন",
			message:    fmt.Sprintf("'%c' লাইন %d", ch, lineIdx+1),
			code:       errors.E1003,
			file:       l.filename,
			position:   token.Position{Line: lineIdx, Column: startCol, File: l.filename},
			sourceLine: sourceLine,
		}
	}
	return tokens, nil
}

// lexString scans a quoted string starting at the opening quote. It returns
// the token and the index just past the closing quote. The token span runs
// from the opening quote through the closing quote.
func (l *Lexer) lexString(text []rune, i, lineIdx, startCol int, sourceLine string) (token.Token, int, error) {
	startIdx := i
	quote := text[i]
	i++
	var val strings.Builder
	escaped := false
	for i < len(text) {
		c := text[i]
		if escaped {
			switch c {
			case 'n':
				val.WriteRune('\n')
			case 't':
				val.WriteRune('\t')
			case '\\':
				val.WriteRune('\\')
			case quote:
				val.WriteRune(quote)
			default:
				// Unknown escapes keep the character, dropping the backslash
				val.WriteRune(c)
			}
			escaped = false
			i++
			continue
		}
		if c == '\\' {
			escaped = true
			i++
			continue
		}
		if c == quote {
			i++
			return l.spanToken(token.STRING, val.String(), lineIdx, startCol, i-startIdx), i, nil
		}
		val.WriteRune(c)
		i++
	}
	return token.Token{}, 0, &Error{
		errType:    "সিনট্যাক্স ত্রুটি",
		message:    fmt.Sprintf("স্ট্রিং সম্পূর্ণ হয়নি লাইন %d", lineIdx+1),
		code:       errors.E1002,
		file:       l.filename,
		position:   token.Position{Line: lineIdx, Column: startCol, File: l.filename},
		sourceLine: sourceLine,
	}
}

// lexNumber scans an integer or floating point literal. The token keeps the
// raw text; numeric conversion happens in the parser.
func (l *Lexer) lexNumber(text []rune, i, lineIdx, startCol int, sourceLine string) (token.Token, int, error) {
	start := i
	for i < len(text) && bangla.IsDigit(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '.' {
		i++
		if i >= len(text) || !bangla.IsDigit(text[i]) {
			return token.Token{}, 0, &Error{
				errType:    "সিনট্যাক্স ত্রুটি",
				message:    fmt.Sprintf("অবৈধ সংখ্যা লাইন %d", lineIdx+1),
				code:       errors.E1004,
				file:       l.filename,
				position:   token.Position{Line: lineIdx, Column: startCol, File: l.filename},
				sourceLine: sourceLine,
			}
		}
		for i < len(text) && bangla.IsDigit(text[i]) {
			i++
		}
	}
	return l.spanToken(token.NUMBER, string(text[start:i]), lineIdx, startCol, i-start), i, nil
}

// wordToken classifies a scanned word as a boolean, nil, keyword, logical
// operator keyword, or identifier. Keyword and operator variants are
// canonicalized; identifiers keep their original spelling.
func (l *Lexer) wordToken(word string, lineIdx, startCol, width int) token.Token {
	if bangla.IsKeywordVariant(word) {
		canonical := bangla.CanonicalKeyword(word)
		switch canonical {
		case bangla.KeywordTrue, bangla.KeywordFalse:
			return l.spanToken(token.BOOL, canonical, lineIdx, startCol, width)
		case bangla.KeywordNil:
			return l.spanToken(token.NIL, canonical, lineIdx, startCol, width)
		}
		return l.spanToken(token.KEYWORD, canonical, lineIdx, startCol, width)
	}
	if bangla.IsLogicalOpVariant(word) {
		return l.spanToken(token.KEYWORD, bangla.CanonicalLogicalOp(word), lineIdx, startCol, width)
	}
	return l.spanToken(token.IDENT, word, lineIdx, startCol, width)
}

// simpleToken builds a token whose span is a single point.
func (l *Lexer) simpleToken(typ token.Type, literal string, lineIdx, col int) token.Token {
	pos := token.Position{Line: lineIdx, Column: col, File: l.filename}
	return token.Token{Type: typ, Literal: literal, StartPosition: pos, EndPosition: pos}
}

// spanToken builds a token spanning width runes starting at startCol.
func (l *Lexer) spanToken(typ token.Type, literal string, lineIdx, startCol, width int) token.Token {
	end := startCol
	if width > 0 {
		end = startCol + width - 1
	}
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: token.Position{Line: lineIdx, Column: startCol, File: l.filename},
		EndPosition:   token.Position{Line: lineIdx, Column: end, File: l.filename},
	}
}

// matchOperator returns the longest operator starting at index i, or "".
func matchOperator(text []rune, i int) string {
	for _, op := range operators {
		if len(op) == 2 {
			if i+1 < len(text) && text[i] == rune(op[0]) && text[i+1] == rune(op[1]) {
				return op
			}
			continue
		}
		if text[i] == rune(op[0]) {
			return op
		}
	}
	return ""
}

// splitLines splits source into physical lines, like the line-by-line
// reading the indentation model requires. A trailing newline does not
// produce a final empty line.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// expandTabs replaces tabs with spaces, advancing to the next multiple of
// tabWidth, and returns the line as runes.
func expandTabs(line string) []rune {
	if !strings.ContainsRune(line, '\t') {
		return []rune(line)
	}
	var out []rune
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			for k := 0; k < spaces; k++ {
				out = append(out, ' ')
				col++
			}
			continue
		}
		out = append(out, r)
		col++
	}
	return out
}

// measureIndent counts leading space characters.
func measureIndent(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r != ' ' {
			break
		}
		n++
	}
	return n
}
