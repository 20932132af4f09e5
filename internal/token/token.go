package token

import (
	"ghostc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwExtern, KwImport, KwStruct, KwEnum, KwIf, KwMatch:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsStatement reports whether the token can begin a new statement.
// The parser abandons a broken construct when it runs into such a token
// instead of swallowing it.
func (t Token) StartsStatement() bool {
	return t.IsKeyword() || t.Kind == Ident || t.Kind == DocComment
}
