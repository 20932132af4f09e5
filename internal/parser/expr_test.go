package parser

import (
	"testing"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
)

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"1.5", "1.5"},
		{`"hi\n"`, `"hi\n"`},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b / c", "((a / b) / c)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"a * b ^ c", "(a * (b ^ c))"},
		{"(a + b) * c", "([(a + b)] * c)"},
		{"-x ^ 2", "(-(x ^ 2))"},
		{"-a + b", "((-a) + b)"},
		{"f()", "f()"},
		{"f(1, g(x), y + 1)", "f(1, g(x), (y + 1))"},
		{`io.print("hi")`, `io.print("hi")`},
		{"a.b.c", "a.b.c"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			body, bag := parseBody(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
			}
			if len(body) != 1 {
				t.Fatalf("want 1 statement, got %d", len(body))
			}
			es, ok := body[0].(*ast.ExprStmt)
			if !ok {
				t.Fatalf("want *ast.ExprStmt, got %T", body[0])
			}
			if got := exprString(es.X); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBinaryOperatorLocation(t *testing.T) {
	body, _ := parseBody(t, "a + b")
	bin := body[0].(*ast.ExprStmt).X.(*ast.Binary)
	if bin.OpLoc.Span.Len() != 1 {
		t.Fatalf("operator span len = %d, want 1", bin.OpLoc.Span.Len())
	}
	if bin.Location.Span.Start != bin.X.Loc().Span.Start || bin.Location.Span.End != bin.Y.Loc().Span.End {
		t.Errorf("binary span %v does not cover operands", bin.Location.Span)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"unclosed call", "f(1, 2\n", diag.SynUnclosedParen},
		{"unclosed paren", "(a + b\n", diag.SynUnclosedParen},
		{"missing operand", "x := \n", diag.SynExpectExpression},
		{"modulo", "a % b", diag.SynUnsupported},
		{"trailing dot", "a. + 1", diag.SynExpectIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseBody(t, tt.src)
			got := codes(bag)
			if len(got) == 0 || got[0] != tt.want {
				t.Fatalf("want first code %s, got:\n%s", tt.want.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestErrorsAttachToFunction(t *testing.T) {
	mod, bag := parseSource(t, "main : fn() void\nmain = fn() {\n  f(1\n}\n")
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	defn, ok := mod.FnDefns["main"]
	if !ok {
		t.Fatal("main should still be defined")
	}
	if len(defn.Fn.Errors) == 0 {
		t.Fatal("function node should carry its parse errors")
	}
}
