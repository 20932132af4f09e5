package docgen

import (
	"bytes"
	"context"
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/parser"
	"ghostc/internal/source"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.gh", []byte(src))
	bag := diag.NewBag(10)
	res := parser.ParseFile(context.Background(), fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 || res.Module == nil {
		t.Fatalf("parse failed: %d diagnostics", bag.Len())
	}
	return res.Module
}

const lib = `;adds two numbers;
add : fn(i32, i32) i32
;keeps the sign;
add = fn(a, b) {
	a + b
}

;writes a line;
puts : extern fn(s: string) i32

zero : fn() void
zero = fn() { 0 }
`

func TestEntries(t *testing.T) {
	entries := Entries(parse(t, lib))
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	tests := []struct {
		name, sig string
		extern    bool
		docs      int
	}{
		{"add", "add(a: i32, b: i32) i32", false, 2},
		{"puts", "puts(s: string) i32", true, 1},
		{"zero", "zero() void", false, 0},
	}
	for i, tt := range tests {
		e := entries[i]
		if e.Name != tt.name || e.Signature != tt.sig || e.Extern != tt.extern || len(e.Docs) != tt.docs {
			t.Errorf("entry %d = %+v", i, e)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []Module{{Name: "lib", AST: parse(t, lib)}}); err != nil {
		t.Fatal(err)
	}
	want := "# lib\n" +
		"\n## `add(a: i32, b: i32) i32`\n\nadds two numbers\nkeeps the sign\n" +
		"\n## extern `puts(s: string) i32`\n\nwrites a line\n" +
		"\n## `zero() void`\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
