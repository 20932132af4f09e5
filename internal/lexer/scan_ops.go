package lexer

import (
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// Двухсимвольные операторы пробуем первыми.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.text(start)}
	}

	switch {
	case lx.try2(':', '='):
		return emit(token.ColonAssign)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	}

	switch lx.cursor.Bump() {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '^':
		return emit(token.Caret)
	case '%':
		return emit(token.Percent)
	case '!':
		return emit(token.Bang)
	case '=':
		return emit(token.Assign)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '@':
		return emit(token.At)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(start))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(start)}
	}
}
