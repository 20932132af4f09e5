package lexer

import (
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// Supported forms: 123, 1_000, 1.5, 1.5e-3, 2e10.
// A '.' belongs to the number only when a digit follows, so `a.b` dotted
// names stay intact.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.digits()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.digits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
		}
		lx.digits()
	}

	// 12abc: suffixes are not part of the language
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+lx.text(start))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
	}

	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
