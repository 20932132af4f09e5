package parser

import (
	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// parseName reads Ident ('.' Ident)*.
func (p *Parser) parseName() (ast.Name, []ParseError, bool) {
	first, errs, eof := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if first.Kind != token.Ident {
		return ast.Name{}, errs, eof
	}
	segs := []string{first.Text}
	sp := first.Span
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		segs = append(segs, seg.Text)
		sp = sp.Cover(seg.Span)
	}
	if p.at(token.Dot) {
		// `a.` без продолжения
		p.advance()
		e := p.unexpected(p.peek(), diag.SynExpectIdentifier, "identifier after '.'")
		errs = append(errs, e)
	}
	return ast.NewName(p.loc(sp), segs...), errs, p.eof()
}

// nameLen counts the tokens of a dotted name starting at the cursor, 0 if
// the cursor is not on an identifier.
func (p *Parser) nameLen() int {
	if p.peek().Kind != token.Ident {
		return 0
	}
	n := 1
	for p.peekN(n).Kind == token.Dot && p.peekN(n+1).Kind == token.Ident {
		n += 2
	}
	return n
}
