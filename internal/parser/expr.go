package parser

import (
	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// parseExpr: term (('+'|'-') term)*
func (p *Parser) parseExpr() (ast.Expr, []ParseError, bool) {
	lhs, errs, eof := p.parseTerm()
	if lhs == nil || eof {
		return lhs, errs, eof
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		default:
			return lhs, errs, false
		}
		opTok := p.advance()
		rhs, rerrs, reof := p.parseTerm()
		errs = append(errs, rerrs...)
		if rhs == nil {
			return lhs, errs, reof
		}
		lhs = p.binary(op, opTok, lhs, rhs)
		if reof {
			return lhs, errs, true
		}
	}
}

// parseTerm: factor (('*'|'/') factor)*
func (p *Parser) parseTerm() (ast.Expr, []ParseError, bool) {
	lhs, errs, eof := p.parseFactor()
	if lhs == nil || eof {
		return lhs, errs, eof
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.Percent:
			opTok := p.advance()
			errs = append(errs, ParseError{
				Code: diag.SynUnsupported,
				Loc:  p.loc(opTok.Span),
				Msg:  "operator '%' is not supported",
			})
			_, rerrs, reof := p.parseFactor()
			errs = append(errs, rerrs...)
			if reof {
				return lhs, errs, true
			}
			continue
		default:
			return lhs, errs, false
		}
		opTok := p.advance()
		rhs, rerrs, reof := p.parseFactor()
		errs = append(errs, rerrs...)
		if rhs == nil {
			return lhs, errs, reof
		}
		lhs = p.binary(op, opTok, lhs, rhs)
		if reof {
			return lhs, errs, true
		}
	}
}

// parseFactor: primary ('^' factor)?, правоассоциативно
func (p *Parser) parseFactor() (ast.Expr, []ParseError, bool) {
	lhs, errs, eof := p.parsePrimary()
	if lhs == nil || eof || !p.at(token.Caret) {
		return lhs, errs, eof
	}
	opTok := p.advance()
	rhs, rerrs, reof := p.parseFactor()
	errs = append(errs, rerrs...)
	if rhs == nil {
		return lhs, errs, reof
	}
	return p.binary(ast.OpPow, opTok, lhs, rhs), errs, reof
}

func (p *Parser) binary(op ast.BinaryOp, opTok token.Token, lhs, rhs ast.Expr) ast.Expr {
	return &ast.Binary{
		Op:       op,
		X:        lhs,
		Y:        rhs,
		OpLoc:    p.loc(opTok.Span),
		Location: lhs.Loc().Cover(rhs.Loc()),
	}
}

// parsePrimary: literal | name | call | '(' expr ')' | '-' factor | fn literal
func (p *Parser) parsePrimary() (ast.Expr, []ParseError, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Text: tok.Text, Location: p.loc(tok.Span)}, nil, p.eof()

	case token.FloatLit:
		p.advance()
		return &ast.FloatLit{Text: tok.Text, Location: p.loc(tok.Span)}, nil, p.eof()

	case token.StringLit:
		p.advance()
		raw := tok.Text[1 : len(tok.Text)-1]
		return &ast.StringLit{Raw: raw, Location: p.loc(tok.Span)}, nil, p.eof()

	case token.Ident:
		name, errs, eof := p.parseName()
		if eof || !p.at(token.LParen) {
			return &ast.Ident{Name: name}, errs, eof
		}
		call, cerrs, ceof := p.parseCallArgs(name)
		return call, append(errs, cerrs...), ceof

	case token.LParen:
		p.advance()
		inner, errs, eof := p.parseExpr()
		if inner == nil || hasAbandon(errs) {
			return inner, errs, eof
		}
		closeTok, cerrs, ceof := p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		errs = append(errs, cerrs...)
		loc := p.loc(tok.Span.Cover(closeTok.Span))
		if closeTok.Kind != token.RParen {
			loc = p.loc(tok.Span).Cover(inner.Loc())
		}
		return &ast.Paren{X: inner, Location: loc}, errs, ceof

	case token.Minus:
		p.advance()
		inner, errs, eof := p.parseFactor()
		if inner == nil {
			return nil, errs, eof
		}
		return &ast.Neg{X: inner, Location: p.loc(tok.Span).Cover(inner.Loc())}, errs, eof

	case token.KwFn:
		fn, errs, eof := p.parseFuncLit()
		if fn == nil {
			return nil, errs, eof
		}
		return &ast.FuncLit{Fn: fn}, errs, eof

	default:
		err := p.unexpected(tok, diag.SynExpectExpression, "expression")
		if !err.Abandon {
			p.advance()
		}
		return nil, []ParseError{err}, p.eof()
	}
}

// parseCallArgs parses '(' expr, ... ')' after a call head.
func (p *Parser) parseCallArgs(callee ast.Name) (ast.Expr, []ParseError, bool) {
	p.advance() // '('
	var (
		args []ast.Expr
		errs []ParseError
	)
	for !p.at(token.RParen) && !p.eof() {
		arg, aerrs, aeof := p.parseExpr()
		errs = append(errs, aerrs...)
		if arg != nil {
			args = append(args, arg)
		}
		if aeof || (hasAbandon(aerrs) && !p.at(token.Comma)) {
			break
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	closeTok, cerrs, eof := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close call")
	errs = append(errs, cerrs...)
	loc := callee.Loc
	if closeTok.Kind == token.RParen {
		loc = p.loc(callee.Loc.Span.Cover(closeTok.Span))
	}
	return &ast.Call{Callee: callee, Args: args, Location: loc}, errs, eof
}
