package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/bangla"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/token"
)

// Expression parsing methods for the Parser.
// Precedence from lowest to highest: বা, এবং, equality, comparison,
// additive, multiplicative, unary না, primary. All binary levels are
// left-associative.

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseLogicalOr()
}

// parseInfixLevel parses one left-associative binary precedence level. The
// operator tokens for the level are given by typ and literals.
func (p *Parser) parseInfixLevel(next func() (ast.Expr, error), typ token.Type, literals ...string) (ast.Expr, error) {
	node, err := next()
	if err != nil {
		return nil, err
	}
	for p.peekMatches(typ, literals...) {
		opTok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		node = &ast.Infix{X: node, OpPos: opTok.StartPosition, Op: opTok.Literal, Y: right}
	}
	return node, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseLogicalAnd, token.KEYWORD, bangla.OperatorOr)
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseEquality, token.KEYWORD, bangla.OperatorAnd)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseComparison, token.OP, token.EQ, token.NOT_EQ)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseTerm, token.OP, token.LT, token.GT, token.LT_EQUALS, token.GT_EQUALS)
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseFactor, token.OP, token.PLUS, token.MINUS)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseInfixLevel(p.parseUnary, token.OP, token.ASTERISK, token.SLASH, token.MOD)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.peekMatches(token.KEYWORD, bangla.OperatorNot) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Prefix{OpPos: opTok.StartPosition, Op: opTok.Literal, X: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return p.numberLiteral(tok)
	case token.STRING:
		p.advance()
		return &ast.String{
			ValuePos: tok.StartPosition,
			ValueEnd: tok.EndPosition,
			Value:    tok.Literal,
		}, nil
	case token.BOOL:
		p.advance()
		return &ast.Bool{
			ValuePos: tok.StartPosition,
			ValueEnd: tok.EndPosition,
			Literal:  tok.Literal,
			Value:    tok.Literal == bangla.KeywordTrue,
		}, nil
	case token.NIL:
		p.advance()
		return &ast.Nil{NilPos: tok.StartPosition, NilEnd: tok.EndPosition}, nil
	}

	// A call target may be an identifier or the builtin print keyword
	if tok.Type == token.IDENT || (tok.Type == token.KEYWORD && tok.Literal == bangla.KeywordPrint) {
		p.advance()
		ident := &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
		if p.peekMatches(token.DELIM, token.LPAREN) {
			return p.parseCall(ident)
		}
		return ident, nil
	}

	if p.peekMatches(token.DELIM, token.LPAREN) {
		p.advance()
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectLiteral(token.DELIM, token.RPAREN); err != nil {
			return nil, err
		}
		return node, nil
	}

	return nil, p.syntaxError(tok, errors.E1001,
		fmt.Sprintf("অপ্রত্যাশিত token '%s' লাইন %d", tok.Type, tok.StartPosition.LineNumber()))
}

func (p *Parser) parseCall(fun *ast.Ident) (ast.Expr, error) {
	lparen := p.advance()
	var args []ast.Expr
	if !p.peekMatches(token.DELIM, token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peekMatches(token.DELIM, token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	rparen, err := p.expectLiteral(token.DELIM, token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.Call{
		Fun:    fun,
		Lparen: lparen.StartPosition,
		Args:   args,
		Rparen: rparen.StartPosition,
	}, nil
}

// numberLiteral converts a NUMBER token into an Int or Float node. Digits
// may be Bangla, so the text is folded to ASCII digits before conversion.
// The node keeps the literal as written.
func (p *Parser) numberLiteral(tok token.Token) (ast.Expr, error) {
	folded := bangla.FoldDigits(tok.Literal)
	if strings.Contains(folded, ".") {
		value, err := strconv.ParseFloat(folded, 64)
		if err != nil {
			return nil, p.syntaxError(tok, errors.E1004,
				fmt.Sprintf("অবৈধ সংখ্যা লাইন %d", tok.StartPosition.LineNumber()))
		}
		return &ast.Float{
			ValuePos: tok.StartPosition,
			Literal:  tok.Literal,
			Value:    value,
		}, nil
	}
	value, err := strconv.ParseInt(folded, 10, 64)
	if err != nil {
		return nil, p.syntaxError(tok, errors.E1004,
			fmt.Sprintf("অবৈধ সংখ্যা লাইন %d", tok.StartPosition.LineNumber()))
	}
	return &ast.Int{
		ValuePos: tok.StartPosition,
		Literal:  tok.Literal,
		Value:    value,
	}, nil
}
