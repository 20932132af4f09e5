package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.gh", []byte(src))
	bag := diag.NewBag(100)
	res := ParseFile(context.Background(), fs, id, Options{Reporter: diag.BagReporter{Bag: bag}})
	if res.Module == nil {
		t.Fatalf("nil module for %q", src)
	}
	return res.Module, bag
}

// parseBody parses src as the body of `main : fn() void = fn() { ... }`.
func parseBody(t *testing.T, src string) ([]ast.Stmt, *diag.Bag) {
	t.Helper()
	mod, bag := parseSource(t, "main : fn() void\nmain = fn() {\n"+src+"\n}\n")
	defn, ok := mod.FnDefns["main"]
	if !ok {
		t.Fatalf("main was not defined; diagnostics:\n%s", diagnosticsSummary(bag))
	}
	return defn.Fn.Body, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	var b strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&b, "%s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
	}
	return b.String()
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// exprString prints an expression fully parenthesized.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Text
	case *ast.FloatLit:
		return e.Text
	case *ast.StringLit:
		return `"` + e.Raw + `"`
	case *ast.Ident:
		return e.Name.String()
	case *ast.Binary:
		return "(" + exprString(e.X) + " " + e.Op.String() + " " + exprString(e.Y) + ")"
	case *ast.Neg:
		return "(-" + exprString(e.X) + ")"
	case *ast.Paren:
		return "[" + exprString(e.X) + "]"
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprString(a)
		}
		return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
	case *ast.FuncLit:
		return "fn"
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%T", e)
}
