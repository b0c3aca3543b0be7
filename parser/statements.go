package parser

import (
	"fmt"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/bangla"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse statement constructs:
// - Function definitions (ফাংশন)
// - Conditionals (যদি / নইলে)
// - Loops (যখন)
// - Returns (ফলাফল)
// - Assignments and expression statements

func (p *Parser) parseStatement() (ast.Node, error) {
	tok := p.peek()
	if tok.Type == token.KEYWORD {
		switch tok.Literal {
		case bangla.KeywordFunction:
			return p.parseFunc()
		case bangla.KeywordIf:
			return p.parseIf()
		case bangla.KeywordWhile:
			return p.parseWhile()
		case bangla.KeywordReturn:
			return p.parseReturn()
		}
	}
	node, err := p.parseSimpleStatement()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == token.NEWLINE {
		p.advance()
	}
	return node, nil
}

// parseSimpleStatement parses an expression statement or, when the parsed
// expression is a bare identifier followed by "=", an assignment.
func (p *Parser) parseSimpleStatement() (ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peekMatches(token.OP, token.ASSIGN) {
		ident, ok := expr.(*ast.Ident)
		if !ok {
			tok := p.peek()
			return nil, p.syntaxError(tok, errors.E1005,
				fmt.Sprintf("বাম পাশে একটি নাম থাকতে হবে লাইন %d",
					tok.StartPosition.LineNumber()))
		}
		opTok := p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: ident, OpPos: opTok.StartPosition, Value: value}, nil
	}
	return expr, nil
}

func (p *Parser) parseFunc() (ast.Node, error) {
	kw, err := p.expect(token.KEYWORD)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectLiteral(token.DELIM, token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Ident
	if !p.peekMatches(token.DELIM, token.RPAREN) {
		for {
			paramTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Ident{
				NamePos: paramTok.StartPosition,
				Name:    paramTok.Literal,
			})
			if p.peekMatches(token.DELIM, token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectLiteral(token.DELIM, token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Func{
		FuncPos: kw.StartPosition,
		Name:    &ast.Ident{NamePos: nameTok.StartPosition, Name: nameTok.Literal},
		Params:  params,
		Body:    body,
	}, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	kw, err := p.expect(token.KEYWORD)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{IfPos: kw.StartPosition, Cond: cond, Body: body}
	if p.peekMatches(token.KEYWORD, bangla.KeywordElse) {
		p.advance()
		alt, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = alt
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	kw, err := p.expect(token.KEYWORD)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{WhilePos: kw.StartPosition, Cond: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	kw, err := p.expect(token.KEYWORD)
	if err != nil {
		return nil, err
	}
	stmt := &ast.Return{ReturnPos: kw.StartPosition, ReturnEnd: kw.EndPosition}
	if p.peek().Type == token.NEWLINE {
		p.advance()
		return stmt, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// parseBlock parses ":" NEWLINE INDENT statements DEDENT. Blank lines inside
// the block are skipped.
func (p *Parser) parseBlock() (*ast.Block, error) {
	colon, err := p.expectLiteral(token.DELIM, token.COLON)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for p.peek().Type != token.DEDENT {
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
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return &ast.Block{Colon: colon.StartPosition, Stmts: stmts}, nil
}
