package lexer

import (
	"ghostc/internal/diag"
	"ghostc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки игнорируем, но продолжаем лексить
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, lx.file.Locate(sp), msg, nil)
}
