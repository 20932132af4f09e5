// Package parser turns one ghost source file into an ast.Module.
//
// The grammar is a plain recursive descent with one layer per precedence
// level (expr → term → factor → primary). Every production returns a triple
// (product, errors, reachedEOF): a production may succeed cleanly, succeed
// with recoverable errors, or stop because the token stream ran out, and
// callers check the last two independently.
//
// Imports are not parsed recursively. For each imported name the parser asks
// the ImportSink to resolve and schedule it, records the returned key and path
// in Module.Imports and keeps going.
package parser

import (
	"context"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/lexer"
	"ghostc/internal/source"
	"ghostc/internal/token"
	"ghostc/internal/trace"
)

// ImportSink resolves an imported name and schedules its parse.
// Implementations must not block on the imported module being parsed.
type ImportSink interface {
	RequestImport(name ast.Name) (ast.ImportKey, string, error)
}

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
	// Imports may be nil: keys are then recorded as whole-module imports
	// with an empty path.
	Imports ImportSink
	// Path keys the resulting module; defaults to the file path.
	Path string
}

type Result struct {
	Module *ast.Module
	Errors []ParseError
}

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	reported uint
}

// ParseFile lexes and parses the file id of fs.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "parse "+file.Path, trace.CurrentSpan(ctx).SpanID)

	raw := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	toks := raw[:0:0]
	for _, tk := range raw {
		// лексер уже сообщил об ошибке
		if tk.Kind != token.Invalid {
			toks = append(toks, tk)
		}
	}

	p := &Parser{file: file, toks: toks, opts: opts}
	path := opts.Path
	if path == "" {
		path = file.Path
	}
	mod, errs := p.parseModule(path)
	span.End("")
	return Result{Module: mod, Errors: errs}
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1] // EOF
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) eof() bool {
	return p.at(token.EOF)
}

// advance съедает текущий токен (EOF не съедается).
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) loc(sp source.Span) source.Location {
	return p.file.Locate(sp)
}

// prevEnd is the location right after the last consumed token.
func (p *Parser) prevEnd() source.Location {
	if p.pos == 0 {
		return p.loc(source.Span{File: p.file.ID})
	}
	end := p.toks[p.pos-1].Span.End
	return p.loc(source.Span{File: p.file.ID, Start: end, End: end})
}

// report pushes errs to the reporter, honoring MaxErrors.
func (p *Parser) report(errs []ParseError) {
	if p.opts.Reporter == nil {
		return
	}
	for _, e := range errs {
		if p.opts.MaxErrors != 0 && p.reported >= p.opts.MaxErrors {
			return
		}
		p.reported++
		p.opts.Reporter.Report(e.Code, e.severity(), e.Loc, e.Msg, nil)
	}
}
