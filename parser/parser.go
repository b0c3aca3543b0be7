// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a token stream as input. The parser
// should then be used only once, by calling parser.Parse() to produce the AST.
package parser

import (
	"context"
	"fmt"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/lexer"
	"github.com/bpl-lang/bpl/token"
)

// Parse the provided input as source code and return the AST. This is a
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Extract the filename from options before creating the lexer, so that
	// lexical errors in the first tokens have proper location context.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}

	var lexerOpts []lexer.Option
	if probe.filename != "" {
		lexerOpts = append(lexerOpts, lexer.WithFilename(probe.filename))
	}
	l := lexer.New(input, lexerOpts...)
	tokens, err := l.Tokenize(ctx)
	if err != nil {
		return nil, err
	}

	options = append(options, WithSourceLines(l.SourceLines()))
	p := New(tokens, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in error messages.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithSourceLines supplies the source text lines used for error context.
// Token columns must index into these lines.
func WithSourceLines(lines []string) Option {
	return func(p *Parser) {
		p.lines = lines
	}
}

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// tokens is the input token stream
	tokens []token.Token

	// pos is the index of the current token
	pos int

	// The filename of the input
	filename string

	// Source text lines for error context
	lines []string
}

// New returns a Parser for the given token stream.
func New(tokens []token.Token, options ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// tokenUnderflow is panicked when the cursor moves past the end of the token
// stream, which can happen only for streams lacking an EOF terminator.
type tokenUnderflow struct{}

// Parse runs the parser and returns the resulting program. The first error
// stops parsing; there is no error recovery.
func (p *Parser) Parse(ctx context.Context) (program *ast.Program, err error) {
	p.ctx = ctx
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(tokenUnderflow); !ok {
				panic(r)
			}
			program = nil
			err = NewSyntaxError(ErrorOpts{
				Message: "অপ্রত্যাশিত EOF",
				Code:    errors.E1006,
				File:    p.filename,
			})
		}
	}()
	return p.parse()
}

func (p *Parser) parse() (*ast.Program, error) {
	var stmts []ast.Node
	for p.peek().Type != token.EOF {
		select {
		case <-p.ctx.Done():
			return nil, p.ctx.Err()
		default:
		}
		if p.peek().Type == token.NEWLINE {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Program{Stmts: stmts}, nil
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		panic(tokenUnderflow{})
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	p.pos++
	return tok
}

// expect consumes and returns the current token if it has the given type.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		return token.Token{}, p.syntaxError(tok, errors.E1001,
			fmt.Sprintf("প্রত্যাশিত %s কিন্তু পাওয়া যায় %s লাইন %d",
				typ, tok.Type, tok.StartPosition.LineNumber()))
	}
	return p.advance(), nil
}

// expectLiteral consumes and returns the current token if it has the given
// type and literal text. The type is checked first.
func (p *Parser) expectLiteral(typ token.Type, literal string) (token.Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		return token.Token{}, p.syntaxError(tok, errors.E1001,
			fmt.Sprintf("প্রত্যাশিত %s কিন্তু পাওয়া যায় %s লাইন %d",
				typ, tok.Type, tok.StartPosition.LineNumber()))
	}
	if tok.Literal != literal {
		return token.Token{}, p.syntaxError(tok, errors.E1001,
			fmt.Sprintf("প্রত্যাশিত '%s' কিন্তু পাওয়া যায় '%s' লাইন %d",
				literal, tok.Literal, tok.StartPosition.LineNumber()))
	}
	return p.advance(), nil
}

func (p *Parser) peekMatches(typ token.Type, literals ...string) bool {
	tok := p.peek()
	if tok.Type != typ {
		return false
	}
	for _, literal := range literals {
		if tok.Literal == literal {
			return true
		}
	}
	return false
}

func (p *Parser) syntaxError(tok token.Token, code errors.ErrorCode, message string) error {
	return NewSyntaxError(ErrorOpts{
		Message:       message,
		Code:          code,
		File:          p.filename,
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.lineText(tok.StartPosition.Line),
	})
}

func (p *Parser) lineText(line int) string {
	if line >= 0 && line < len(p.lines) {
		return p.lines[line]
	}
	return ""
}
