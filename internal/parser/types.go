package parser

import (
	"ghostc/internal/diag"
	"ghostc/internal/source"
	"ghostc/internal/token"
	"ghostc/internal/types"
)

// parseType распознаёт:
//
//	i32 | string | Custom        // builtin или пользовательское имя
//	*T                           // указатель
//	[T]                          // массив
//	fn(T, ...) R                 // функция
//	extern fn(name: T, ...) R    // внешняя функция (имена обязательны для ExFunc)
func (p *Parser) parseType() (types.Type, source.Span, []ParseError, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		if t, ok := types.Builtin(tok.Text); ok {
			return t, tok.Span, nil, false
		}
		return types.Custom(tok.Text), tok.Span, nil, false

	case token.Star:
		p.advance()
		elem, sp, errs, eof := p.parseType()
		return types.PtrTo(elem), tok.Span.Cover(sp), errs, eof

	case token.LBracket:
		p.advance()
		elem, _, errs, eof := p.parseType()
		if hasAbandon(errs) {
			return types.ArrayOf(elem), tok.Span, errs, eof
		}
		closeTok, cerrs, eof := p.expect(token.RBracket, diag.SynUnclosedBracket, "']'")
		return types.ArrayOf(elem), tok.Span.Cover(closeTok.Span), append(errs, cerrs...), eof

	case token.KwFn:
		return p.parseFnType(false)

	case token.KwExtern:
		p.advance()
		if !p.at(token.KwFn) {
			err := p.unexpected(p.peek(), diag.SynExpectType, "'fn' after 'extern'")
			return types.Undefined, tok.Span, []ParseError{err}, p.eof()
		}
		t, sp, errs, eof := p.parseFnType(true)
		return t, tok.Span.Cover(sp), errs, eof

	default:
		err := p.unexpected(tok, diag.SynExpectType, "type")
		if !err.Abandon {
			p.advance()
		}
		return types.Undefined, tok.Span, []ParseError{err}, p.eof()
	}
}

// parseFnType parses `fn(...) R`; the cursor is on 'fn'.
func (p *Parser) parseFnType(extern bool) (types.Type, source.Span, []ParseError, bool) {
	fnTok := p.advance()
	_, errs, eof := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after 'fn'")
	if eof || hasAbandon(errs) {
		return types.Undefined, fnTok.Span, errs, eof
	}

	var (
		plain []types.Type
		named []types.Param
	)
	for !p.at(token.RParen) && !p.eof() {
		if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
			nameTok := p.advance()
			p.advance() // ':'
			t, _, terrs, teof := p.parseType()
			errs = append(errs, terrs...)
			if hasAbandon(terrs) {
				return types.Undefined, fnTok.Span, errs, teof
			}
			if !extern {
				errs = append(errs, ParseError{
					Code: diag.SynUnexpectedToken,
					Loc:  p.loc(nameTok.Span),
					Msg:  "parameter names are only allowed in extern signatures",
				})
			}
			named = append(named, types.Param{Name: nameTok.Text, Type: t})
		} else {
			t, _, terrs, teof := p.parseType()
			errs = append(errs, terrs...)
			if hasAbandon(terrs) {
				return types.Undefined, fnTok.Span, errs, teof
			}
			plain = append(plain, t)
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	_, cerrs, eof := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close parameter list")
	errs = append(errs, cerrs...)
	if eof || hasAbandon(cerrs) {
		return types.Undefined, fnTok.Span, errs, eof
	}

	if p.at(token.Arrow) {
		p.advance()
	}
	ret, retSpan, rerrs, eof := p.parseType()
	errs = append(errs, rerrs...)
	sp := fnTok.Span.Cover(retSpan)

	if len(named) > 0 && len(plain) > 0 {
		errs = append(errs, ParseError{
			Code: diag.SynUnexpectedToken,
			Loc:  p.loc(sp),
			Msg:  "cannot mix named and unnamed parameters",
		})
		return types.Undefined, sp, errs, eof
	}
	if extern && len(named) > 0 {
		return types.ExFunc(named, ret), sp, errs, eof
	}
	if len(named) > 0 {
		plain = make([]types.Type, len(named))
		for i, n := range named {
			plain[i] = n.Type
		}
	}
	return types.Func(plain, ret, extern), sp, errs, eof
}
