package ast

import (
	"fmt"

	"github.com/bpl-lang/bpl/token"
)

// Int is an expression node that holds an integer literal. The literal text
// is kept as written, so it may use Bangla digits (e.g., "৪২").
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "৪২")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(runeLen(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "1.5", "১.৫")
	Value    float64        // the parsed value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(runeLen(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// Nil is an expression node that holds a nil literal. The source may spell
// the literal with any recognized variant, so the end position is recorded
// from the token rather than derived from the canonical text.
type Nil struct {
	NilPos token.Position // position of the first character of the literal
	NilEnd token.Position // position of the last character of the literal
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Position { return x.NilPos }
func (x *Nil) End() token.Position { return x.NilEnd.Advance(1) }

func (x *Nil) String() string { return "নিল" }

// Bool is an expression node that holds a boolean literal. Literal carries
// the canonical spelling, which may differ from the source variant.
type Bool struct {
	ValuePos token.Position // position of the first character of the literal
	ValueEnd token.Position // position of the last character of the literal
	Literal  string         // the canonical literal text ("সত্য" or "মিথ্যা")
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValueEnd.Advance(1) }

func (x *Bool) String() string { return x.Literal }

// String is an expression node that holds a string literal. Value is the
// unquoted text with escape sequences already applied, so the source span
// is recorded from the token rather than derived from the text length.
type String struct {
	ValuePos token.Position // position of the opening quote
	ValueEnd token.Position // position of the closing quote
	Value    string         // the unquoted string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValueEnd.Advance(1) }

func (x *String) String() string { return fmt.Sprintf("%q", x.Value) }
