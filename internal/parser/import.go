package parser

import (
	"fmt"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/token"
)

// parseImports parses `import { a.b.c, d }` and hands every name to the
// ImportSink. The cursor is on 'import'.
func (p *Parser) parseImports(mod *ast.Module) []ParseError {
	kw := p.advance()
	_, errs, eof := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' after 'import'")
	if eof || hasAbandon(errs) {
		return errs
	}

	count := 0
	for !p.at(token.RBrace) && !p.eof() {
		name, nerrs, _ := p.parseName()
		errs = append(errs, nerrs...)
		if len(name.Segments) > 0 {
			count++
			if err := p.requestImport(mod, name); err != nil {
				errs = append(errs, *err)
			}
		}
		if hasAbandon(nerrs) && !p.at(token.Comma) {
			break
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RBrace) {
			// `import { a b }`
			errs = append(errs, p.unexpected(p.peek(), diag.SynUnexpectedToken, "',' or '}'"))
			if p.at(token.Ident) {
				continue
			}
			if abandons(p.peek()) {
				break
			}
			p.advance()
		}
	}
	closeTok, cerrs, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "'}' to close import block")
	errs = append(errs, cerrs...)

	if count == 0 {
		sp := kw.Span
		if closeTok.Kind == token.RBrace {
			sp = sp.Cover(closeTok.Span)
		}
		errs = append(errs, ParseError{
			Code:    diag.SynEmptyImportGroup,
			Loc:     p.loc(sp),
			Msg:     "empty import block",
			Warning: true,
		})
	}
	return errs
}

func (p *Parser) requestImport(mod *ast.Module, name ast.Name) *ParseError {
	if p.opts.Imports == nil {
		key := ast.ModuleKey(name.String())
		mod.Imports[key] = ""
		mod.ImportLocs[key] = name.Loc
		return nil
	}
	key, path, err := p.opts.Imports.RequestImport(name)
	if err != nil {
		// keep the keys so calls through the broken import are not
		// mistaken for unknown targets later
		mod.Imports[ast.ModuleKey(name.String())] = ""
		if !name.IsSimple() {
			mod.Imports[ast.SymbolKey(name.Last())] = ""
		}
		return &ParseError{
			Code: diag.SynImportNotFound,
			Loc:  name.Loc,
			Msg:  fmt.Sprintf("cannot resolve import `%s`: %v", name, err),
		}
	}
	mod.Imports[key] = path
	mod.ImportLocs[key] = name.Loc
	return nil
}
