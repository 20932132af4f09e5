package sema

import (
	"context"
	"strings"
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/parser"
	"ghostc/internal/source"
)

func parseModule(t *testing.T, fs *source.FileSet, path, src string) *ast.Module {
	t.Helper()
	id := fs.AddVirtual(path, []byte(src))
	bag := diag.NewBag(0)
	res := parser.ParseFile(context.Background(), fs, id, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		var msgs []string
		for _, d := range bag.Items() {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("parse %s:\n%s", path, strings.Join(msgs, "\n"))
	}
	return res.Module
}

func checkSource(t *testing.T, src string) (*mir.Module, []diag.Diagnostic, error) {
	t.Helper()
	mod := parseModule(t, source.NewFileSet(), "main.gh", src)
	return Check(context.Background(), mod, nil)
}

func messages(ds []diag.Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.Code.ID())
		b.WriteString(" ")
		b.WriteString(d.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func mustCheck(t *testing.T, src string) *mir.Module {
	t.Helper()
	m, ds, err := checkSource(t, src)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(ds) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", messages(ds))
	}
	return m
}
