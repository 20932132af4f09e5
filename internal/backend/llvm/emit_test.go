package llvm

import (
	"errors"
	"strings"
	"testing"

	"ghostc/internal/mir"
	"ghostc/internal/types"
)

func stream(xs ...mir.Expression) mir.Stream { return mir.Stream(xs) }

func i32(text string) mir.Expression { return mir.Lit(mir.IntLit(types.I32, text)) }

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		name string
		mod  func() *mir.Module
		want string
	}{
		{
			name: "extern call with string",
			mod: func() *mir.Module {
				m := mir.NewModule("main")
				m.Externs = []mir.ExternFunction{{
					Name:   "puts",
					Params: []types.Param{{Name: "s", Type: types.String}},
					Ret:    types.I32,
				}}
				puts := &mir.Call{
					Name:   "puts",
					Target: mir.CallExtern,
					Args:   []mir.Arg{{Value: stream(mir.Lit(mir.StringLit("hi"))), Type: types.String}},
					Ret:    types.I32,
				}
				m.Functions["main"] = &mir.Function{
					Name: "main",
					Ret:  types.Void,
					Block: []mir.Statement{
						{Kind: mir.StmtVar, Name: "x", Type: types.I32, Value: stream(i32("40"), i32("2"), mir.Op(mir.ExprAdd))},
						{Kind: mir.StmtExpr, Type: types.I32, Value: stream(mir.Lit(mir.CallLit(puts)))},
					},
				}
				return m
			},
			want: `; ModuleID = 'main'

declare ptr @GC_malloc(i64)
declare i32 @puts(ptr)

@.str.0 = private unnamed_addr constant [3 x i8] c"hi\00"

define void @main() {
entry:
  %t0 = add i32 40, 2
  %x.0 = alloca ptr
  %t1 = call ptr @GC_malloc(i64 4)
  store i32 %t0, ptr %t1
  store ptr %t1, ptr %x.0
  %t2 = call i32 @puts(ptr @.str.0)
  ret void
}
`,
		},
		{
			name: "returned string is a module constant",
			mod: func() *mir.Module {
				m := mir.NewModule("lib")
				m.Functions["s"] = &mir.Function{
					Name:   "s",
					Symbol: "lib.s",
					Ret:    types.String,
					Block: []mir.Statement{
						{Kind: mir.StmtExpr, Type: types.String, Value: stream(mir.Lit(mir.StringLit("hi")))},
					},
				}
				m.Functions["t"] = &mir.Function{
					Name:   "t",
					Symbol: "lib.t",
					Ret:    types.String,
					Block: []mir.Statement{
						{Kind: mir.StmtExpr, Type: types.String, Value: stream(mir.Lit(mir.StringLit("bye")))},
						{Kind: mir.StmtExpr, Type: types.String, Value: stream(mir.Lit(mir.StringLit("hi")))},
					},
				}
				return m
			},
			want: `; ModuleID = 'lib'

declare ptr @GC_malloc(i64)

@.str.0 = private unnamed_addr constant [3 x i8] c"hi\00"
@.str.1 = private unnamed_addr constant [4 x i8] c"bye\00"

define ptr @lib.s() {
entry:
  ret ptr @.str.0
}

define ptr @lib.t() {
entry:
  ret ptr @.str.0
}
`,
		},
		{
			name: "local call copies by-value argument",
			mod: func() *mir.Module {
				m := mir.NewModule("calc")
				m.Functions["add"] = &mir.Function{
					Name:   "add",
					Params: []mir.Param{{Name: "a", Type: types.I32}, {Name: "b", Type: types.I32}},
					Ret:    types.I32,
					Block: []mir.Statement{{
						Kind: mir.StmtExpr,
						Type: types.I32,
						Value: stream(
							mir.Lit(mir.IdentLit("a", types.I32, true)),
							mir.Lit(mir.IdentLit("b", types.I32, true)),
							mir.Op(mir.ExprAdd),
						),
					}},
				}
				add := &mir.Call{
					Name:   "add",
					Target: mir.CallLocal,
					Args: []mir.Arg{
						{Value: stream(mir.Lit(mir.IdentLit("x", types.I32, false))), Type: types.I32},
						{Value: stream(i32("2")), Type: types.I32},
					},
					Ret: types.I32,
				}
				m.Functions["main"] = &mir.Function{
					Name: "main",
					Ret:  types.I32,
					Block: []mir.Statement{
						{Kind: mir.StmtVar, Name: "x", Type: types.I32, Value: stream(i32("3"))},
						{Kind: mir.StmtExpr, Type: types.I32, Value: stream(mir.Lit(mir.CallLit(add)))},
					},
				}
				return m
			},
			want: `; ModuleID = 'calc'

declare ptr @GC_malloc(i64)
declare void @llvm.memcpy.p0.p0.i64(ptr, ptr, i64, i1)

define i32 @add(i32 %p.a, i32 %p.b) {
entry:
  %t0 = add i32 %p.a, %p.b
  ret i32 %t0
}

define i32 @main() {
entry:
  %x.0 = alloca ptr
  %t0 = call ptr @GC_malloc(i64 4)
  store i32 3, ptr %t0
  store ptr %t0, ptr %x.0
  %t1 = load ptr, ptr %x.0
  %t2 = alloca i32
  call void @llvm.memcpy.p0.p0.i64(ptr %t2, ptr %t1, i64 4, i1 false)
  %t3 = load i32, ptr %t2
  %t4 = call i32 @add(i32 %t3, i32 2)
  ret i32 %t4
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.mod())
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got != tt.want {
				t.Fatalf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, tt.want)
			}
		})
	}
}

func TestGenerateInstructions(t *testing.T) {
	tests := []struct {
		name  string
		ret   types.Type
		block []mir.Statement
		want  []string
	}{
		{
			name: "integer pow goes through double",
			ret:  types.I64,
			block: []mir.Statement{{Kind: mir.StmtExpr, Type: types.I64, Value: stream(
				mir.Lit(mir.IntLit(types.I64, "2")),
				mir.Lit(mir.IntLit(types.I64, "10")),
				mir.Op(mir.ExprPow),
			)}},
			want: []string{
				"declare double @llvm.pow.f64(double, double)",
				"%t0 = sitofp i64 2 to double",
				"%t1 = sitofp i64 10 to double",
				"%t2 = call double @llvm.pow.f64(double %t0, double %t1)",
				"%t3 = fptosi double %t2 to i64",
				"ret i64 %t3",
			},
		},
		{
			name: "unsigned division",
			ret:  types.U8,
			block: []mir.Statement{{Kind: mir.StmtExpr, Type: types.U8, Value: stream(
				mir.Lit(mir.IntLit(types.U8, "9")),
				mir.Lit(mir.IntLit(types.U8, "3")),
				mir.Op(mir.ExprDiv),
			)}},
			want: []string{"%t0 = udiv i8 9, 3"},
		},
		{
			name: "float arithmetic",
			ret:  types.F64,
			block: []mir.Statement{{Kind: mir.StmtExpr, Type: types.F64, Value: stream(
				mir.Lit(mir.FloatLit(types.F64, "1.5")),
				mir.Lit(mir.FloatLit(types.F64, "2.5")),
				mir.Op(mir.ExprMul),
			)}},
			want: []string{"%t0 = fmul double ", "ret double %t0"},
		},
		{
			name: "decl then assign",
			ret:  types.Void,
			block: []mir.Statement{
				{Kind: mir.StmtDecl, Name: "y", Type: types.I16},
				{Kind: mir.StmtAssign, Name: "y", Type: types.I16, Value: stream(mir.Lit(mir.IntLit(types.I16, "7")))},
			},
			want: []string{
				"%y.0 = alloca ptr",
				"%t0 = call ptr @GC_malloc(i64 2)",
				"store ptr %t0, ptr %y.0",
				"%t1 = load ptr, ptr %y.0",
				"store i16 7, ptr %t1",
				"ret void",
			},
		},
		{
			name: "string variable loads through the cell",
			ret:  types.Void,
			block: []mir.Statement{
				{Kind: mir.StmtVar, Name: "s", Type: types.String, Value: stream(mir.Lit(mir.StringLit("a")))},
				{Kind: mir.StmtExpr, Type: types.String, Value: stream(mir.Lit(mir.IdentLit("s", types.String, false)))},
			},
			want: []string{
				"%t0 = call ptr @GC_malloc(i64 8)",
				"store ptr @.str.0, ptr %t0",
				"%t1 = load ptr, ptr %s.0",
				"%t2 = load ptr, ptr %t1",
				"%t3 = getelementptr inbounds i8, ptr %t2, i64 0",
			},
		},
		{
			name: "redeclared variable gets a new cell",
			ret:  types.I32,
			block: []mir.Statement{
				{Kind: mir.StmtVar, Name: "x", Type: types.I32, Value: stream(i32("1"))},
				{Kind: mir.StmtVar, Name: "x", Type: types.I32, Value: stream(i32("2"))},
				{Kind: mir.StmtExpr, Type: types.I32, Value: stream(mir.Lit(mir.IdentLit("x", types.I32, false)))},
			},
			want: []string{"%x.0 = alloca ptr", "%x.1 = alloca ptr", "load ptr, ptr %x.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mir.NewModule("m")
			m.Functions["f"] = &mir.Function{Name: "f", Ret: tt.ret, Block: tt.block}
			got, err := Generate(m)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in\n%s", want, got)
				}
			}
		})
	}
}

func TestGenerateDeclarationOrder(t *testing.T) {
	m := mir.NewModule("main")
	m.Externs = []mir.ExternFunction{
		{Name: "zeta", Ret: types.Void},
		{Name: "alpha", Params: []types.Param{{Name: "arg0", Type: types.F32}}, Ret: types.Bool},
	}
	m.Imported["sqrt"] = types.Func([]types.Type{types.F64}, types.F64, false)
	m.Imported["helper"] = types.Func(nil, types.Void, false)
	m.Functions["main"] = &mir.Function{Name: "main", Ret: types.Void}

	got, err := Generate(m)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{
		"declare ptr @GC_malloc(i64)",
		"declare i1 @alpha(float)",
		"declare void @zeta()",
		"declare void @helper()",
		"declare double @sqrt(double)",
		"define void @main()",
	}
	last := -1
	for _, w := range want {
		idx := strings.Index(got, w)
		if idx < 0 {
			t.Fatalf("missing %q in\n%s", w, got)
		}
		if idx < last {
			t.Fatalf("%q out of order in\n%s", w, got)
		}
		last = idx
	}

	again, err := Generate(m)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if again != got {
		t.Fatalf("output is not deterministic")
	}
}

func TestGenerateVoidCallHasNoResult(t *testing.T) {
	m := mir.NewModule("main")
	m.Imported["f"] = types.Func(nil, types.Void, false)
	call := &mir.Call{Name: "f", Target: mir.CallImported, Ret: types.Void}
	m.Functions["main"] = &mir.Function{
		Name:  "main",
		Ret:   types.Void,
		Block: []mir.Statement{{Kind: mir.StmtExpr, Type: types.Void, Value: stream(mir.Lit(mir.CallLit(call)))}},
	}
	got, err := Generate(m)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(got, "  call void @f()\n  ret void\n") {
		t.Fatalf("unexpected body:\n%s", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		fn        *mir.Function
		undefined bool
	}{
		{
			name: "undefined type",
			fn: &mir.Function{Name: "f", Ret: types.Void, Block: []mir.Statement{
				{Kind: mir.StmtExpr, Type: types.Undefined, Value: stream(mir.Lit(mir.IdentLit("x", types.Undefined, false)))},
			}},
			undefined: true,
		},
		{
			name: "missing result",
			fn:   &mir.Function{Name: "f", Ret: types.I32},
		},
		{
			name: "empty stream",
			fn: &mir.Function{Name: "f", Ret: types.Void, Block: []mir.Statement{
				{Kind: mir.StmtExpr, Type: types.Void},
			}},
		},
		{
			name: "unknown variable",
			fn: &mir.Function{Name: "f", Ret: types.I32, Block: []mir.Statement{
				{Kind: mir.StmtExpr, Type: types.I32, Value: stream(mir.Lit(mir.IdentLit("nope", types.I32, false)))},
			}},
		},
		{
			name: "dangling operator",
			fn: &mir.Function{Name: "f", Ret: types.I32, Block: []mir.Statement{
				{Kind: mir.StmtExpr, Type: types.I32, Value: stream(i32("1"), mir.Op(mir.ExprAdd))},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mir.NewModule("m")
			m.Functions["f"] = tt.fn
			_, err := Generate(m)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.undefined && !errors.Is(err, ErrUndefinedType) {
				t.Fatalf("expected ErrUndefinedType, got %v", err)
			}
		})
	}
}
