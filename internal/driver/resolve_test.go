package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/source"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func diagText(bag *diag.Bag) string {
	out := ""
	for _, d := range bag.Items() {
		out += d.Code.ID() + " " + d.Message + "\n"
	}
	return out
}

var chain = map[string]string{
	"main.gh": "import { a }\nmain : fn() void\nmain = fn() { a.f() }\n",
	"a.gh":    "import { b }\nf : fn() void\nf = fn() { b.g() }\n",
	"b.gh":    "g : fn() void\ng = fn() { 1 }\n",
}

func TestResolveImportClosure(t *testing.T) {
	dir := writeTree(t, chain)
	for i := 0; i < 20; i++ {
		prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{Jobs: 4})
		if err != nil {
			t.Fatal(err)
		}
		if prog.Bag.Len() != 0 {
			t.Fatalf("diagnostics:\n%s", diagText(prog.Bag))
		}
		if len(prog.Modules) != 3 {
			t.Fatalf("run %d: got %d modules, want 3: %v", i, len(prog.Modules), prog.Paths())
		}
		if prog.Outstanding != 0 || prog.Unresolved != 0 {
			t.Fatalf("counters = %d/%d, want 0/0", prog.Outstanding, prog.Unresolved)
		}
	}
}

func TestResolveRecordsImportPaths(t *testing.T) {
	dir := writeTree(t, chain)
	prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	mainMod, ok := prog.Module(prog.Entry)
	if !ok {
		t.Fatal("entry module missing")
	}
	path := mainMod.Imports[ast.ModuleKey("a")]
	if path != filepath.Join(dir, "a.gh") {
		t.Errorf("a resolved to %q", path)
	}
	if got := prog.ModuleName(path); got != "a" {
		t.Errorf("module name = %q", got)
	}
}

func TestResolveCyclesAndDiamonds(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.gh": "import { a, b }\nmain : fn() void\nmain = fn() { a.f() }\n",
		"a.gh":    "import { b, c }\nf : fn() void\nf = fn() { 1 }\n",
		"b.gh":    "import { a, c }\ng : fn() void\ng = fn() { 1 }\n",
		"c.gh":    "import { main }\nh : fn() void\nh = fn() { 1 }\n",
	})
	prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Modules) != 4 {
		t.Fatalf("got %d modules: %v", len(prog.Modules), prog.Paths())
	}
	if prog.Outstanding != 0 || prog.Unresolved != 0 {
		t.Fatalf("counters = %d/%d", prog.Outstanding, prog.Unresolved)
	}
}

func TestSeek(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"math.gh":   "",
		"std/io.gh": "",
		"std/fs.gh": "",
		"util/x.gh": "",
		"util.gh":   "",
	})
	tests := []struct {
		name    []string
		key     ast.ImportKey
		path    string
		wantErr bool
	}{
		{[]string{"math"}, ast.ModuleKey("math"), "math.gh", false},
		{[]string{"math", "sqrt"}, ast.SymbolKey("sqrt"), "math.gh", false},
		{[]string{"std", "io"}, ast.ModuleKey("std.io"), "std/io.gh", false},
		{[]string{"std", "io", "print"}, ast.SymbolKey("print"), "std/io.gh", false},
		{[]string{"util", "x"}, ast.SymbolKey("x"), "util.gh", false},
		{[]string{"nothing"}, ast.ImportKey{}, "", true},
		{[]string{"std"}, ast.ImportKey{}, "", true},
	}
	for _, tt := range tests {
		name := ast.NewName(source.Location{}, tt.name...)
		key, path, err := Seek(dir, name)
		if tt.wantErr {
			if !errors.Is(err, ErrImportNotFound) {
				t.Errorf("%s: err = %v, want ErrImportNotFound", name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if key != tt.key || path != filepath.Join(dir, filepath.FromSlash(tt.path)) {
			t.Errorf("%s: got %v %s, want %v %s", name, key, path, tt.key, tt.path)
		}
	}
}

func TestResolveMissingImport(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.gh": "import { gone }\nmain : fn() void\nmain = fn() { 1 }\n",
	})
	prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	items := prog.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynImportNotFound {
		t.Fatalf("got:\n%s", diagText(prog.Bag))
	}
	if len(prog.Modules) != 1 {
		t.Errorf("got %d modules", len(prog.Modules))
	}
}

func TestResolveMissingEntry(t *testing.T) {
	dir := t.TempDir()
	prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !prog.Bag.HasErrors() || prog.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("got:\n%s", diagText(prog.Bag))
	}
	if prog.Unresolved != 0 {
		t.Errorf("unresolved = %d", prog.Unresolved)
	}
}
