package lexer

import (
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// scanString reads "..." keeping escapes verbatim in Text; decoding happens
// when the literal is lowered.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
}

// scanDocComment reads a ;doc comment; which may span several lines.
func (lx *Lexer) scanDocComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening ';'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == ';' {
			return token.Token{Kind: token.DocComment, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedDoc, sp, "unterminated doc comment")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
}
