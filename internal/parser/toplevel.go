package parser

import (
	"fmt"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/source"
	"ghostc/internal/token"
	"ghostc/internal/types"
)

// parseModule parses the whole file: the import block, then function
// declarations, externs and definitions with their doc comments.
func (p *Parser) parseModule(path string) (*ast.Module, []ParseError) {
	mod := ast.NewModule(path, p.file.ID)
	var (
		errs    []ParseError
		docs    []string
		sawItem bool
	)

	for !p.eof() {
		before := p.pos
		tok := p.peek()
		switch tok.Kind {
		case token.KwImport:
			ierrs := p.parseImports(mod)
			if sawItem {
				ierrs = append(ierrs, ParseError{
					Code:    diag.SynImportNotFirst,
					Loc:     p.loc(tok.Span),
					Msg:     "imports should come before any declaration",
					Warning: true,
				})
			}
			errs = append(errs, ierrs...)

		case token.DocComment:
			p.advance()
			docs = append(docs, p.docComment(tok).Text)

		case token.Ident:
			sawItem = true
			v, verrs, _ := p.parseVar()
			errs = append(errs, verrs...)
			if v != nil {
				errs = append(errs, p.declare(mod, v, docs)...)
			}
			docs = nil

		case token.KwIf, token.KwMatch, token.KwStruct, token.KwEnum:
			sawItem = true
			errs = append(errs, p.skipUnsupported()...)
			docs = nil

		default:
			sawItem = true
			errs = append(errs, ParseError{
				Code: diag.SynUnexpectedTopLevel,
				Loc:  p.loc(tok.Span),
				Msg:  fmt.Sprintf("unexpected '%s' at top level", tok.Text),
			})
			p.advance()
			p.syncTopLevel()
		}
		if p.pos == before {
			p.advance()
		}
	}

	p.report(errs)
	return mod, errs
}

// syncTopLevel skips tokens until something that can start a top-level item.
func (p *Parser) syncTopLevel() {
	for !p.eof() {
		switch p.peek().Kind {
		case token.Ident, token.DocComment, token.KwImport, token.KwStruct, token.KwEnum:
			return
		}
		p.advance()
	}
}

// declare classifies a top-level var into a declaration, an extern or a
// definition (a typed var with a function literal is both).
func (p *Parser) declare(mod *ast.Module, v *ast.Var, docs []string) []ParseError {
	var errs []ParseError
	if !v.Name.IsSimple() {
		return []ParseError{{
			Code: diag.SynUnexpectedTopLevel,
			Loc:  v.Name.Loc,
			Msg:  fmt.Sprintf("top-level name `%s` must not be dotted", v.Name),
		}}
	}
	name := v.Name.Last()

	fnType, typed := funcType(v)
	if v.Type != nil && !typed {
		return []ParseError{{
			Code: diag.SynUnexpectedTopLevel,
			Loc:  v.Location,
			Msg:  fmt.Sprintf("only functions can be declared at top level, `%s` has type %s", name, *v.Type),
		}}
	}

	var lit *ast.FuncLit
	if v.Value != nil {
		var ok bool
		if lit, ok = v.Value.(*ast.FuncLit); !ok {
			return []ParseError{{
				Code: diag.SynUnexpectedTopLevel,
				Loc:  v.Value.Loc(),
				Msg:  fmt.Sprintf("`%s` must be defined as a function literal", name),
			}}
		}
	}

	if typed {
		if _, dup := mod.FnDecls[name]; dup {
			errs = append(errs, duplicate(name, v.Location))
		} else if _, dup := mod.Externs[name]; dup {
			errs = append(errs, duplicate(name, v.Location))
		} else if isExtern(fnType) {
			if lit != nil {
				errs = append(errs, ParseError{
					Code: diag.SynUnexpectedToken,
					Loc:  lit.Loc(),
					Msg:  fmt.Sprintf("extern `%s` cannot have a body", name),
				})
				return errs
			}
			mod.Externs[name] = externOf(v, fnType, docs)
			return errs
		} else {
			mod.FnDecls[name] = ast.FnDecl{Name: v.Name, Type: fnType, Loc: v.Location, Docs: docs}
			docs = nil
		}
	}

	if lit != nil {
		_, defined := mod.FnDefns[name]
		_, external := mod.Externs[name]
		if defined || external {
			errs = append(errs, duplicate(name, v.Location))
		} else {
			mod.FnDefns[name] = ast.FnDefn{Name: v.Name, Fn: lit.Fn, Loc: v.Location, Docs: docs}
		}
	}
	return errs
}

func duplicate(name string, loc source.Location) ParseError {
	return ParseError{
		Code: diag.SemaDuplicateFunc,
		Loc:  loc,
		Msg:  fmt.Sprintf("`%s` is declared more than once", name),
	}
}

func isExtern(t types.Type) bool {
	return t.Kind == types.KindExFunc || (t.Kind == types.KindFunc && t.Extern)
}

func externOf(v *ast.Var, t types.Type, docs []string) ast.Extern {
	ext := ast.Extern{Name: v.Name, Ret: t.Result(), Loc: v.Location, Docs: docs}
	if t.Kind == types.KindExFunc {
		ext.Params = t.Named
		return ext
	}
	for i, pt := range t.Params {
		ext.Params = append(ext.Params, types.Param{Name: fmt.Sprintf("arg%d", i), Type: pt})
	}
	return ext
}
