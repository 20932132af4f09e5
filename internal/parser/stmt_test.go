package parser

import (
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/types"
)

func TestVarForms(t *testing.T) {
	tests := []struct {
		src       string
		isDecl    bool
		typ       string
		hasValue  bool
		valueText string
	}{
		{"x := 1 + 2", true, "", true, "(1 + 2)"},
		{"x : i64", true, "i64", false, ""},
		{"x : string = \"a\"", true, "string", true, `"a"`},
		{"x = y", false, "", true, "y"},
		{"x : *u8", true, "*u8", false, ""},
		{"x : [f64]", true, "[f64]", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			body, bag := parseBody(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
			}
			v, ok := body[0].(*ast.Var)
			if !ok {
				t.Fatalf("want *ast.Var, got %T", body[0])
			}
			if v.Name.String() != "x" {
				t.Errorf("name = %s", v.Name)
			}
			if v.IsDecl != tt.isDecl {
				t.Errorf("IsDecl = %v, want %v", v.IsDecl, tt.isDecl)
			}
			gotType := ""
			if v.Type != nil {
				gotType = v.Type.String()
			}
			if gotType != tt.typ {
				t.Errorf("type = %q, want %q", gotType, tt.typ)
			}
			if (v.Value != nil) != tt.hasValue {
				t.Fatalf("value presence = %v, want %v", v.Value != nil, tt.hasValue)
			}
			if tt.hasValue && exprString(v.Value) != tt.valueText {
				t.Errorf("value = %s, want %s", exprString(v.Value), tt.valueText)
			}
		})
	}
}

func TestStatementSequence(t *testing.T) {
	body, bag := parseBody(t, "a := 1\nb := a * 2\n;note;\nb + a")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
	}
	if len(body) != 4 {
		t.Fatalf("want 4 statements, got %d", len(body))
	}
	if doc, ok := body[2].(*ast.DocComment); !ok || doc.Text != "note" {
		t.Errorf("statement 2 = %#v, want doc comment", body[2])
	}
	if _, ok := body[3].(*ast.ExprStmt); !ok {
		t.Errorf("last statement is %T", body[3])
	}
}

func TestUnsupportedConstructsAreSkipped(t *testing.T) {
	body, bag := parseBody(t, "if a { b := 1 }\nc := 2")
	got := codes(bag)
	if len(got) != 1 || got[0] != diag.SynUnsupported {
		t.Fatalf("want one %s, got:\n%s", diag.SynUnsupported.ID(), diagnosticsSummary(bag))
	}
	if len(body) != 1 {
		t.Fatalf("want the statement after the block, got %d statements", len(body))
	}
	if v := body[0].(*ast.Var); v.Name.String() != "c" {
		t.Errorf("got var %s", v.Name)
	}
}

func TestRecoveryContinuesAfterBadStatement(t *testing.T) {
	body, bag := parseBody(t, "x := * 2\ny := 3")
	if !bag.HasErrors() {
		t.Fatal("expected an error")
	}
	var names []string
	for _, s := range body {
		if v, ok := s.(*ast.Var); ok {
			names = append(names, v.Name.String())
		}
	}
	if len(names) == 0 || names[len(names)-1] != "y" {
		t.Errorf("statement after the error was lost: %v", names)
	}
}

func TestFuncLitParams(t *testing.T) {
	mod, bag := parseSource(t, "add : fn(i32, i32) i32\nadd = fn(a, b) { a + b }\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
	}
	fn := mod.FnDefns["add"].Fn
	if len(fn.Params) != 2 || fn.Params[0].String() != "a" || fn.Params[1].String() != "b" {
		t.Fatalf("params = %v", fn.Params)
	}
	if !mod.FnDecls["add"].Type.Equal(types.Func([]types.Type{types.I32, types.I32}, types.I32, false)) {
		t.Errorf("decl type = %s", mod.FnDecls["add"].Type)
	}
}
