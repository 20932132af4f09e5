package mir

import (
	"strings"
	"testing"

	"ghostc/internal/types"
)

func id(name string) Expression { return Lit(IdentLit(name, types.I32, false)) }

func names(s Stream) string {
	out := ""
	for i, e := range s {
		if i > 0 {
			out += " "
		}
		if e.Kind == ExprLiteral {
			out += e.Lit.Value
		} else {
			out += e.Kind.String()
		}
	}
	return out
}

func TestShuntingYard(t *testing.T) {
	a, b, c, d := id("a"), id("b"), id("c"), id("d")
	tests := []struct {
		name  string
		infix Stream
		want  string
	}{
		{"single", Stream{a}, "a"},
		{"a + b * c", Stream{a, Op(ExprAdd), b, Op(ExprMul), c}, "a b c * +"},
		{"(a + b) * c", Stream{Op(ExprLParen), a, Op(ExprAdd), b, Op(ExprRParen), Op(ExprMul), c}, "a b + c *"},
		{"a - b - c", Stream{a, Op(ExprMin), b, Op(ExprMin), c}, "a b - c -"},
		{"a * b + c", Stream{a, Op(ExprMul), b, Op(ExprAdd), c}, "a b * c +"},
		{"a ^ (b ^ c)", Stream{a, Op(ExprPow), Op(ExprLParen), b, Op(ExprPow), c, Op(ExprRParen)}, "a b c ^ ^"},
		{"a / (b - c) + d", Stream{a, Op(ExprDiv), Op(ExprLParen), b, Op(ExprMin), c, Op(ExprRParen), Op(ExprAdd), d}, "a b c - / d +"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShuntingYard(tt.infix)
			if names(got) != tt.want {
				t.Errorf("got %q, want %q", names(got), tt.want)
			}
			if !got.Valid() {
				t.Errorf("%q is not a valid postfix stream", names(got))
			}
		})
	}
}

func TestStreamValid(t *testing.T) {
	a := id("a")
	tests := []struct {
		s    Stream
		want bool
	}{
		{Stream{}, true},
		{Stream{a}, true},
		{Stream{a, a, Op(ExprAdd)}, true},
		{Stream{a, Op(ExprAdd)}, false},
		{Stream{a, a}, false},
		{Stream{Op(ExprLParen), a}, false},
	}
	for i, tt := range tests {
		if got := tt.s.Valid(); got != tt.want {
			t.Errorf("case %d: Valid() = %v, want %v", i, got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	m := NewModule("main.gh")
	m.Externs = []ExternFunction{{Name: "puts", Params: []types.Param{{Name: "s", Type: types.String}}, Ret: types.I32}}
	m.Imported["sq"] = types.Func([]types.Type{types.I32}, types.I32, false)
	m.Functions["main"] = &Function{
		Name: "main",
		Ret:  types.Void,
		Block: []Statement{
			{Kind: StmtVar, Name: "x", Type: types.I32, Value: Stream{Lit(IntLit(types.I32, "2")), Lit(IntLit(types.I32, "3")), Op(ExprMul)}},
			{Kind: StmtDecl, Name: "y", Type: types.I64},
			{Kind: StmtExpr, Type: types.I32, Value: Stream{Lit(CallLit(&Call{
				Name: "puts", Target: CallExtern, Ret: types.I32,
				Args: []Arg{{Value: Stream{Lit(StringLit("hi"))}, Type: types.String}},
			}))}},
		},
	}
	m.Functions["sqr"] = &Function{
		Name:   "sqr",
		Params: []Param{{Name: "n", Type: types.I32}},
		Ret:    types.I32,
		Block: []Statement{
			{Kind: StmtExpr, Type: types.I32, Value: Stream{Lit(IdentLit("n", types.I32, true)), Lit(IdentLit("n", types.I32, true)), Op(ExprMul)}},
		},
	}

	var b strings.Builder
	if err := Dump(&b, m); err != nil {
		t.Fatal(err)
	}
	want := `module main.gh
extern puts(s: string) i32
import sq fn(i32) i32

fn main() void:
  var x i32 = 2:i32 3:i32 *
  decl y i64
  expr i32: puts("hi"):i32

fn sqr(n: i32) i32:
  expr i32: %n:i32 %n:i32 *
`
	if b.String() != want {
		t.Errorf("dump mismatch:\n--- got ---\n%s\n--- want ---\n%s", b.String(), want)
	}
}
