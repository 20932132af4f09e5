package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ghostc/internal/source"
	"ghostc/internal/token"
)

func sampleTokens() (*source.FileSet, []token.Token) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.gh", []byte("x := 1"))
	sp := func(a, b uint32) source.Span { return source.Span{File: id, Start: a, End: b} }
	return fs, []token.Token{
		{Kind: token.Ident, Span: sp(0, 1), Text: "x"},
		{Kind: token.ColonAssign, Span: sp(2, 4), Text: ":="},
		{Kind: token.IntLit, Span: sp(5, 6), Text: "1"},
		{Kind: token.EOF, Span: sp(6, 6)},
		{Kind: token.Ident, Span: sp(6, 6), Text: "after-eof"},
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != `   1: identifier     "x" at 1:1-1:2` {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], `"1" at 1:6-1:7`) {
		t.Errorf("line 3 = %q", lines[2])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []tokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 {
		t.Fatalf("want 4 tokens, got %d", len(out))
	}
	if out[1].Kind != ":=" || out[1].Start != 2 || out[1].Col != 3 {
		t.Errorf("token 2 = %+v", out[1])
	}
}
