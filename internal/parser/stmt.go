package parser

import (
	"strings"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/token"
	"ghostc/internal/types"
)

// parseStmt parses one statement inside a function body.
func (p *Parser) parseStmt() (ast.Stmt, []ParseError, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.DocComment:
		p.advance()
		return p.docComment(tok), nil, p.eof()

	case token.KwIf, token.KwMatch, token.KwStruct, token.KwEnum, token.KwImport:
		errs := p.skipUnsupported()
		return nil, errs, p.eof()

	case token.Ident:
		switch p.peekN(p.nameLen()).Kind {
		case token.ColonAssign, token.Colon, token.Assign:
			return p.parseVar()
		}
	}

	x, errs, eof := p.parseExpr()
	if x == nil {
		return nil, errs, eof
	}
	return &ast.ExprStmt{X: x}, errs, eof
}

// parseVar:
//
//	x := expr
//	x : T
//	x : T = expr
//	x = expr
func (p *Parser) parseVar() (*ast.Var, []ParseError, bool) {
	name, errs, eof := p.parseName()
	if eof || hasAbandon(errs) {
		return nil, errs, eof
	}
	v := &ast.Var{Name: name, Location: name.Loc}

	switch p.peek().Kind {
	case token.ColonAssign:
		p.advance()
		v.IsDecl = true
	case token.Colon:
		p.advance()
		v.IsDecl = true
		t, sp, terrs, teof := p.parseType()
		errs = append(errs, terrs...)
		v.Type = &t
		v.TypeLoc = p.loc(sp)
		v.Location = name.Loc.Cover(v.TypeLoc)
		if teof || hasAbandon(terrs) || !p.at(token.Assign) {
			return v, errs, teof
		}
		p.advance()
	case token.Assign:
		p.advance()
	default:
		err := p.unexpected(p.peek(), diag.SynUnexpectedToken, "':=', ':' or '='")
		return nil, append(errs, err), p.eof()
	}

	value, verrs, veof := p.parseExpr()
	errs = append(errs, verrs...)
	if value == nil {
		return nil, errs, veof
	}
	v.Value = value
	v.Location = name.Loc.Cover(value.Loc())
	return v, errs, veof
}

// parseFuncLit parses `fn(a, b) { stmts }`.
// Errors raised inside are also attached to the FuncNode so the checker can
// skip a broken body.
func (p *Parser) parseFuncLit() (*ast.FuncNode, []ParseError, bool) {
	fnTok := p.advance()
	_, errs, eof := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after 'fn'")
	if eof || hasAbandon(errs) {
		return nil, errs, eof
	}

	fn := &ast.FuncNode{}
	for !p.at(token.RParen) && !p.eof() {
		nameTok, nerrs, neof := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		errs = append(errs, nerrs...)
		if neof || hasAbandon(nerrs) {
			break
		}
		fn.Params = append(fn.Params, ast.NewName(p.loc(nameTok.Span), nameTok.Text))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	_, cerrs, eof := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close parameters")
	errs = append(errs, cerrs...)
	if eof {
		return nil, errs, eof
	}
	_, berrs, eof := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' to open function body")
	errs = append(errs, berrs...)
	if eof || hasAbandon(berrs) {
		return nil, errs, eof
	}

	for !p.at(token.RBrace) && !p.eof() {
		before := p.pos
		stmt, serrs, _ := p.parseStmt()
		errs = append(errs, serrs...)
		if stmt != nil {
			fn.Body = append(fn.Body, stmt)
		}
		if p.pos == before {
			// ничего не съели: пропускаем токен, иначе зациклимся
			p.advance()
		}
	}
	closeTok, cerrs2, eof := p.expect(token.RBrace, diag.SynUnclosedBrace, "'}' to close function body")
	errs = append(errs, cerrs2...)

	fn.Location = p.loc(fnTok.Span.Cover(closeTok.Span))
	if closeTok.Kind != token.RBrace {
		fn.Location = p.loc(fnTok.Span).Cover(p.prevEnd())
	}
	for _, e := range errs {
		if !e.Warning {
			fn.Errors = append(fn.Errors, e.Diagnostic())
		}
	}
	// the function literal itself is complete; inner abandon flags stay inside
	for i := range errs {
		errs[i].Abandon = false
	}
	return fn, errs, eof
}

// skipUnsupported drops an if/match/struct/enum construct: the keyword, the
// tokens up to its '{' and the balanced block.
func (p *Parser) skipUnsupported() []ParseError {
	kw := p.advance()
	err := ParseError{
		Code: diag.SynUnsupported,
		Loc:  p.loc(kw.Span),
		Msg:  "'" + kw.Text + "' is not supported yet",
	}
	if kw.Kind == token.KwImport {
		err.Code = diag.SynImportNotFirst
		err.Msg = "imports are only allowed at the top of a file"
	}
	depth := 0
	for !p.eof() {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return []ParseError{err}
			}
			depth--
			if depth == 0 {
				p.advance()
				return []ParseError{err}
			}
		}
		p.advance()
	}
	return []ParseError{err}
}

func (p *Parser) docComment(tok token.Token) *ast.DocComment {
	text := strings.TrimSuffix(strings.TrimPrefix(tok.Text, ";"), ";")
	return &ast.DocComment{Text: strings.TrimSpace(text), Location: p.loc(tok.Span)}
}

// funcType returns the declared type of a top-level var if it is a function type.
func funcType(v *ast.Var) (types.Type, bool) {
	if v.Type == nil {
		return types.Undefined, false
	}
	switch v.Type.Kind {
	case types.KindFunc, types.KindExFunc:
		return *v.Type, true
	}
	return types.Undefined, false
}
