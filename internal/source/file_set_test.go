package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.gh", []byte("hello world"), 0)
	id2 := fs.Add("main.gh", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.Lookup("./main.gh")
	if !ok || latest != id2 {
		t.Fatalf("Lookup = %d,%v, want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version content = %q", got)
	}
}

func TestLocateRows(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("rows.gh", []byte("a := 1\nb := a +\n  2\n"))
	f := fs.Get(id)

	tests := []struct {
		name string
		span Span
		want Rows
	}{
		{"first line", Span{File: id, Start: 0, End: 1}, Rows{1, 1}},
		{"second line", Span{File: id, Start: 7, End: 8}, Rows{2, 2}},
		{"multi line", Span{File: id, Start: 7, End: 20}, Rows{2, 3}},
		{"empty span", Span{File: id, Start: 9, End: 9}, Rows{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := f.Locate(tt.span)
			if loc.Rows != tt.want {
				t.Errorf("rows = %+v, want %+v", loc.Rows, tt.want)
			}
			if loc.Span != tt.span {
				t.Errorf("span = %v, want %v", loc.Span, tt.span)
			}
		})
	}
}

func TestResolveAndLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.gh", []byte("one\ntwo\nthree"))
	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 4}) {
		t.Fatalf("Resolve = %+v %+v", start, end)
	}
	f := fs.Get(id)
	for i, want := range []string{"one", "two", "three", "", ""} {
		if got := f.Line(uint32(i + 1)); got != want {
			t.Errorf("Line(%d) = %q, want %q", i+1, got, want)
		}
	}
	if got := f.LineStart(3); got != 8 {
		t.Errorf("LineStart(3) = %d, want 8", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.gh")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Errorf("content = %q", f.Content)
	}
	if !f.Flags.Has(FileHadBOM | FileNormalizedCRLF) {
		t.Errorf("flags = %b", f.Flags)
	}
}

func TestFileSetConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs.AddVirtual("x.gh", []byte("x"))
		}()
	}
	wg.Wait()
	if fs.Len() != 32 {
		t.Fatalf("Len = %d, want 32", fs.Len())
	}
}

func TestLocationCover(t *testing.T) {
	a := Location{Span: Span{File: 1, Start: 4, End: 6}, Rows: Rows{2, 2}}
	b := Location{Span: Span{File: 1, Start: 10, End: 12}, Rows: Rows{3, 3}}
	got := a.Cover(b)
	want := Location{Span: Span{File: 1, Start: 4, End: 12}, Rows: Rows{2, 3}}
	if got != want {
		t.Fatalf("Cover = %v, want %v", got, want)
	}
}
