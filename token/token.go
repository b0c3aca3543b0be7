// Package token defines the token types produced when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Line   int
	Column int
	File   string
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n columns.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Line:   p.Line,
		Column: p.Column + n,
		File:   p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	INDENT  Type = "INDENT"
	DEDENT  Type = "DEDENT"
	NEWLINE Type = "NEWLINE"
	EOF     Type = "EOF"
	IDENT   Type = "IDENT"
	NUMBER  Type = "NUMBER"
	STRING  Type = "STRING"
	KEYWORD Type = "KEYWORD"
	BOOL    Type = "BOOL"
	NIL     Type = "NIL"
	OP      Type = "OP"
	DELIM   Type = "DELIM"
)

// Operator literals
const (
	ASSIGN    = "="
	EQ        = "=="
	NOT_EQ    = "!="
	LT        = "<"
	GT        = ">"
	LT_EQUALS = "<="
	GT_EQUALS = ">="
	PLUS      = "+"
	MINUS     = "-"
	ASTERISK  = "*"
	SLASH     = "/"
	MOD       = "%"
)

// Delimiter literals
const (
	LPAREN = "("
	RPAREN = ")"
	COLON  = ":"
	COMMA  = ","
)
