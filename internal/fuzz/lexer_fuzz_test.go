package fuzztests

import (
	"testing"

	"ghostc/internal/diag"
	"ghostc/internal/lexer"
	"ghostc/internal/source"
	"ghostc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.gh", input))

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF: %d tokens", len(toks))
		}
		end := uint32(len(file.Content))
		for _, tok := range toks {
			if tok.Span.Start > tok.Span.End || tok.Span.End > end {
				t.Fatalf("span %v out of bounds (len %d)", tok.Span, end)
			}
		}
	})
}
