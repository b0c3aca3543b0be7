package ast

import (
	"bytes"
	"strings"

	"github.com/bpl-lang/bpl/token"
)

// Assign is a statement node that binds the value of an expression to a
// name. Assignment both declares and updates a variable.
type Assign struct {
	Name  *Ident         // assignment target
	OpPos token.Position // position of "="
	Value Expr           // assigned expression
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Name.Pos() }
func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string {
	var out bytes.Buffer
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	return out.String()
}

// Block is a sequence of statements introduced by a colon and holding one
// indentation level. Blocks appear as function, conditional, and loop bodies.
type Block struct {
	Colon token.Position // position of ":" that opens the block
	Stmts []Node         // statements in the block
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Colon }

func (s *Block) End() token.Position {
	if len(s.Stmts) > 0 {
		return s.Stmts[len(s.Stmts)-1].End()
	}
	return s.Colon.Advance(1)
}

func (s *Block) String() string {
	stmts := make([]string, 0, len(s.Stmts))
	for _, stmt := range s.Stmts {
		stmts = append(stmts, stmt.String())
	}
	return strings.Join(stmts, "\n")
}

// Func is a statement node that defines a named function.
type Func struct {
	FuncPos token.Position // position of the "ফাংশন" keyword
	Name    *Ident         // function name
	Params  []*Ident       // parameter names
	Body    *Block         // function body
}

func (s *Func) stmtNode() {}

func (s *Func) Pos() token.Position { return s.FuncPos }
func (s *Func) End() token.Position { return s.Body.End() }

func (s *Func) String() string {
	params := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.String())
	}
	var out bytes.Buffer
	out.WriteString("ফাংশন ")
	out.WriteString(s.Name.String())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString("): ")
	out.WriteString(s.Body.String())
	return out.String()
}

// If is a statement node that runs one of two blocks based on a condition.
type If struct {
	IfPos token.Position // position of the "যদি" keyword
	Cond  Expr           // condition expression
	Body  *Block         // statements run when the condition is truthy
	Else  *Block         // statements run otherwise, or nil
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }

func (s *If) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Body.End()
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("যদি ")
	out.WriteString(s.Cond.String())
	out.WriteString(": ")
	out.WriteString(s.Body.String())
	if s.Else != nil {
		out.WriteString(" নইলে: ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// While is a statement node that repeats a block while a condition holds.
type While struct {
	WhilePos token.Position // position of the "যখন" keyword
	Cond     Expr           // loop condition
	Body     *Block         // loop body
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.WhilePos }
func (s *While) End() token.Position { return s.Body.End() }

func (s *While) String() string {
	var out bytes.Buffer
	out.WriteString("যখন ")
	out.WriteString(s.Cond.String())
	out.WriteString(": ")
	out.WriteString(s.Body.String())
	return out.String()
}

// Return is a statement node that exits the enclosing function. A bare
// return with no expression yields nil.
type Return struct {
	ReturnPos token.Position // position of the first character of the keyword
	ReturnEnd token.Position // position of the last character of the keyword
	Value     Expr           // result expression, or nil
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.ReturnPos }

func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.ReturnEnd.Advance(1)
}

func (s *Return) String() string {
	if s.Value == nil {
		return "ফলাফল"
	}
	return "ফলাফল " + s.Value.String()
}
