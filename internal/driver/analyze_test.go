package driver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"ghostc/internal/diag"
	"ghostc/internal/sema"
)

func resolveTree(t *testing.T, files map[string]string) *Program {
	t.Helper()
	dir := writeTree(t, files)
	prog, err := Resolve(context.Background(), filepath.Join(dir, "main.gh"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if prog.Bag.HasErrors() {
		t.Fatalf("resolve diagnostics:\n%s", diagText(prog.Bag))
	}
	return prog
}

func TestAnalyzeAllModules(t *testing.T) {
	prog := resolveTree(t, chain)
	an, err := Analyze(context.Background(), prog, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if an.HasErrors {
		bag := diag.NewBag(0)
		an.Diagnostics(bag)
		t.Fatalf("unexpected diagnostics:\n%s", diagText(bag))
	}
	if len(an.Results) != 3 {
		t.Fatalf("got %d results", len(an.Results))
	}
	entry := an.Results[prog.Entry].MIR
	if _, ok := entry.Imported["a.f"]; !ok {
		t.Errorf("entry should import f: %v", entry.ImportedNames())
	}
}

func TestAnalyzeIsolatesModuleErrors(t *testing.T) {
	prog := resolveTree(t, map[string]string{
		"main.gh": "import { a }\nmain : fn() void\nmain = fn() { a.f() + \"s\" }\n",
		"a.gh":    "f : fn() i32\nf = fn() { 1 }\n",
	})
	an, err := Analyze(context.Background(), prog, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !an.HasErrors {
		t.Fatal("expected errors")
	}
	for path, r := range an.Results {
		bad := strings.HasSuffix(path, "main.gh")
		if bad != (len(r.Diagnostics) > 0) {
			t.Errorf("%s: %d diagnostics", path, len(r.Diagnostics))
		}
	}
}

func TestAnalyzeInternalErrorIsPerModule(t *testing.T) {
	prog := resolveTree(t, map[string]string{
		"main.gh": "import { a }\nmain : fn() void\nmain = fn() { ghost() }\n",
		"a.gh":    "f : fn() i32\nf = fn() { 1 }\n",
	})
	an, err := Analyze(context.Background(), prog, Options{})
	if !errors.Is(err, sema.ErrUnresolvedCall) {
		t.Fatalf("err = %v", err)
	}
	if an == nil || len(an.Results) != 2 {
		t.Fatal("the other module must still be checked")
	}
	for path, r := range an.Results {
		if strings.HasSuffix(path, "a.gh") && (r.Err != nil || r.MIR.Functions["f"] == nil) {
			t.Errorf("a.gh was not checked cleanly: %v", r.Err)
		}
	}
}

func TestGenerateModules(t *testing.T) {
	prog := resolveTree(t, chain)
	an, err := Analyze(context.Background(), prog, Options{})
	if err != nil || an.HasErrors {
		t.Fatalf("analyze: %v", err)
	}
	out, err := Generate(context.Background(), an.MIR(), Options{Jobs: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d listings", len(out))
	}
	entry := out[prog.Entry]
	for _, want := range []string{"declare void @a.f()", "define void @main()", "call void @a.f()"} {
		if !strings.Contains(entry, want) {
			t.Errorf("entry listing lacks %q:\n%s", want, entry)
		}
	}
}

func TestGenerateQualifiesSymbols(t *testing.T) {
	prog := resolveTree(t, map[string]string{
		"main.gh": "import { m }\nf : fn() i32\nf = fn() { 1 }\nmain : fn() i32\nmain = fn() { m.f() + f() }\n",
		"m.gh":    "f : fn() i32\nf = fn() { 2 }\n",
	})
	an, err := Analyze(context.Background(), prog, Options{})
	if err != nil || an.HasErrors {
		t.Fatalf("analyze: %v", err)
	}
	out, err := Generate(context.Background(), an.MIR(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	entry := out[prog.Entry]
	for _, want := range []string{
		"declare i32 @m.f()",
		"define i32 @main.f()",
		"define i32 @main()",
		"%t0 = call i32 @m.f()",
		"%t1 = call i32 @main.f()",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("entry listing lacks %q:\n%s", want, entry)
		}
	}
	if strings.Contains(entry, "@f(") {
		t.Errorf("bare symbol in entry listing:\n%s", entry)
	}
	for path, text := range out {
		if filepath.Base(path) == "m.gh" && !strings.Contains(text, "define i32 @m.f()") {
			t.Errorf("m listing:\n%s", text)
		}
	}

	for path, text := range out {
		declared := map[string]bool{}
		for _, line := range strings.Split(text, "\n") {
			if name, ok := symbolOf(line, "declare "); ok {
				declared[name] = true
			}
		}
		for _, line := range strings.Split(text, "\n") {
			if name, ok := symbolOf(line, "define "); ok && declared[name] {
				t.Errorf("%s: %s is both declared and defined", path, name)
			}
		}
	}
}

// symbolOf extracts the global name of a declare/define line.
func symbolOf(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	at := strings.IndexByte(line, '@')
	if at < 0 {
		return "", false
	}
	paren := strings.IndexByte(line[at+1:], '(')
	if paren < 0 {
		return "", false
	}
	return line[at+1 : at+1+paren], true
}
