package fuzztests

import (
	"context"
	"testing"
	"time"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/parser"
	"ghostc/internal/sema"
	"ghostc/internal/source"
	"ghostc/internal/testkit"
)

// parseTimeout bounds a single input; exceeding it means the parser loops.
const parseTimeout = 5 * time.Second

func parse(ctx context.Context, input []byte) (*ast.Module, *source.File, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("fuzz.gh", input)
	bag := diag.NewBag(128)
	res := parser.ParseFile(ctx, fs, id, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: 128,
	})
	return res.Module, fs.Get(id), bag
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("f : fn() void\nf = fn() { { { { } } } }\n"))
	f.Add([]byte("f = fn() { ((((( }\n"))
	f.Add([]byte("import { a b c\nf : fn() void\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parse(ctx, input)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang after %v on %q", parseTimeout, truncateForLog(input, 200))
		}
	})
}

// FuzzCheckModule runs the checker over whatever the parser produced.
// Errors are fine; panics are not. Clean parses must keep span invariants.
func FuzzCheckModule(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		mod, file, bag := parse(context.Background(), clamp(input))
		if mod == nil {
			return
		}
		if !bag.HasErrors() {
			if err := testkit.CheckSpanInvariants(mod, file); err != nil {
				t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
			}
		}
		_, _, _ = sema.Check(context.Background(), mod, sema.Modules{mod.Path: mod})
	})
}

func truncateForLog(data []byte, n int) []byte {
	if len(data) <= n {
		return data
	}
	return data[:n]
}
