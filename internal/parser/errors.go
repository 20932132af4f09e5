package parser

import (
	"fmt"

	"ghostc/internal/diag"
	"ghostc/internal/source"
	"ghostc/internal/token"
)

// ParseError is a syntax error.
// Abandon is set when the offending token looks like the start of a new
// statement (or closes the enclosing block): the caller must drop the partial
// construct instead of consuming more tokens.
type ParseError struct {
	Code    diag.Code
	Loc     source.Location
	Msg     string
	Abandon bool
	Warning bool
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e ParseError) severity() diag.Severity {
	if e.Warning {
		return diag.SevWarning
	}
	return diag.SevError
}

// Diagnostic converts the error for attaching to AST nodes.
func (e ParseError) Diagnostic() diag.Diagnostic {
	return diag.New(e.severity(), e.Code, e.Loc, e.Msg)
}

func abandons(tok token.Token) bool {
	switch tok.Kind {
	case token.EOF, token.RBrace, token.RParen, token.RBracket:
		return true
	}
	return tok.StartsStatement()
}

// unexpected builds the error for tok without consuming it.
func (p *Parser) unexpected(tok token.Token, code diag.Code, want string) ParseError {
	loc := p.loc(tok.Span)
	got := "'" + tok.Text + "'"
	if tok.Kind == token.EOF {
		loc = p.prevEnd()
		got = "end of file"
		code = diag.SynUnexpectedEOF
	}
	return ParseError{
		Code:    code,
		Loc:     loc,
		Msg:     fmt.Sprintf("expected %s, found %s", want, got),
		Abandon: abandons(tok),
	}
}

// expect consumes a token of kind k.
// On mismatch a statement-level token is left in place (Abandon); anything
// else is consumed and k is tried once more.
func (p *Parser) expect(k token.Kind, code diag.Code, want string) (token.Token, []ParseError, bool) {
	if p.at(k) {
		return p.advance(), nil, false
	}
	tok := p.peek()
	err := p.unexpected(tok, code, want)
	if tok.Kind == token.EOF {
		return tok, []ParseError{err}, true
	}
	if err.Abandon {
		return tok, []ParseError{err}, false
	}
	p.advance()
	if p.at(k) {
		return p.advance(), []ParseError{err}, false
	}
	err.Abandon = abandons(p.peek())
	return tok, []ParseError{err}, p.eof()
}

func hasAbandon(errs []ParseError) bool {
	for _, e := range errs {
		if e.Abandon {
			return true
		}
	}
	return false
}

func hasErrors(errs []ParseError) bool {
	for _, e := range errs {
		if !e.Warning {
			return true
		}
	}
	return false
}
