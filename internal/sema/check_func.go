package sema

import (
	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/types"
)

func (tc *typeChecker) checkFunction(name string, decl ast.FnDecl, defn ast.FnDefn) *mir.Function {
	fn := &mir.Function{Name: name, Symbol: tc.symbol(tc.mod.Path, name), Ret: types.Void, Loc: defn.Loc}
	if decl.Type.Kind != types.KindFunc {
		tc.errorf(diag.SemaDeclNotFunc, decl.Loc, "Declaration of `%s` is not a function type.", name)
		return fn
	}
	fn.Ret = decl.Type.Result()
	// тело с синтаксическими ошибками не проверяем
	if len(defn.Fn.Errors) > 0 {
		return fn
	}

	paramTypes := decl.Type.ParamTypes()
	if len(paramTypes) != len(defn.Fn.Params) {
		tc.errorf(diag.SemaArityMismatch, defn.Loc,
			"Function `%s` is declared with %d parameters but defined with %d.",
			name, len(paramTypes), len(defn.Fn.Params))
	}
	valid := tc.validateType(fn.Ret, decl.Loc)

	tc.fnName = name
	tc.scopes.push()
	defer tc.scopes.pop()

	for i, p := range defn.Fn.Params {
		if i >= len(paramTypes) {
			break
		}
		pt := paramTypes[i]
		if !tc.validateType(pt, decl.Loc) {
			valid = false
		}
		fn.Params = append(fn.Params, mir.Param{Name: p.Last(), Type: pt})
		tc.scopes.declare(p.Last(), binding{typ: pt, isParam: true})
	}

	last := lastCodeStmt(defn.Fn.Body)
	for i, stmt := range defn.Fn.Body {
		var want *types.Type
		if i == last && !fn.Ret.IsVoid() {
			want = &fn.Ret
		}
		if st, ok := tc.checkStmt(stmt, want); ok {
			fn.Block = append(fn.Block, st)
		}
		if tc.fatal != nil {
			return fn
		}
	}

	if valid && !fn.Ret.IsVoid() {
		tc.checkResult(fn, defn, last)
	}
	return fn
}

// checkResult makes sure a non-void function ends with an expression of its
// return type.
func (tc *typeChecker) checkResult(fn *mir.Function, defn ast.FnDefn, last int) {
	if last < 0 {
		tc.errorf(diag.SemaReturnMismatch, defn.Loc,
			"Function `%s` must end with an expression of type `%s`, but its body is empty.", fn.Name, fn.Ret)
		return
	}
	if _, ok := defn.Fn.Body[last].(*ast.ExprStmt); !ok {
		tc.errorf(diag.SemaReturnMismatch, defn.Fn.Body[last].Loc(),
			"Function `%s` must end with an expression of type `%s`.", fn.Name, fn.Ret)
		return
	}
	if len(fn.Block) == 0 {
		return
	}
	st := fn.Block[len(fn.Block)-1]
	if st.Kind != mir.StmtExpr || st.Value == nil {
		// выражение уже дало ошибку
		return
	}
	if !types.Equal(st.Type, fn.Ret) {
		tc.errorf(diag.SemaReturnMismatch, defn.Fn.Body[last].Loc(),
			"Function `%s` returns `%s`, but its last expression has type `%s`.", fn.Name, fn.Ret, st.Type)
	}
}

func lastCodeStmt(body []ast.Stmt) int {
	for i := len(body) - 1; i >= 0; i-- {
		if _, doc := body[i].(*ast.DocComment); !doc {
			return i
		}
	}
	return -1
}

// checkStmt lowers one statement; ok is false when nothing is emitted.
func (tc *typeChecker) checkStmt(stmt ast.Stmt, want *types.Type) (mir.Statement, bool) {
	switch s := stmt.(type) {
	case *ast.DocComment:
		return mir.Statement{}, false

	case *ast.ExprStmt:
		stream, t := tc.exprTy(s.X, want)
		st := mir.Statement{Kind: mir.StmtExpr, Type: t, Loc: s.Loc()}
		if stream != nil {
			st.Value = mir.ShuntingYard(stream)
		} else {
			st.Type = types.Undefined
		}
		return st, true

	case *ast.Var:
		return tc.checkVar(s)
	}
	tc.errorf(diag.SemaUnsupportedExpr, stmt.Loc(), "Unsupported statement.")
	return mir.Statement{}, false
}

func (tc *typeChecker) checkVar(v *ast.Var) (mir.Statement, bool) {
	if !v.Name.IsSimple() {
		tc.errorf(diag.SemaUnsupportedExpr, v.Name.Loc, "Cannot bind the dotted name `%s`.", v.Name)
		return mir.Statement{}, false
	}
	name := v.Name.Last()

	switch {
	case v.IsDecl && v.Value == nil:
		t := *v.Type
		tc.validateType(t, v.TypeLoc)
		tc.scopes.declare(name, binding{typ: t})
		return mir.Statement{Kind: mir.StmtDecl, Name: name, Type: t, Loc: v.Location}, true

	case v.IsDecl:
		stream, t := tc.exprTy(v.Value, v.Type)
		if v.Type != nil {
			tc.validateType(*v.Type, v.TypeLoc)
			if stream != nil && !types.Equal(t, *v.Type) {
				tc.errorf(diag.SemaTypeMismatch, v.Value.Loc(),
					"Cannot initialize `%s` of type `%s` with a value of type `%s`.", name, *v.Type, t)
				stream = nil
			}
			t = *v.Type
		} else if stream != nil && t.IsVoid() {
			tc.errorf(diag.SemaTypeMismatch, v.Value.Loc(), "Cannot bind `%s` to a value of type `void`.", name)
			stream = nil
		}
		tc.scopes.declare(name, binding{typ: t})
		if stream == nil {
			return mir.Statement{}, false
		}
		return mir.Statement{Kind: mir.StmtVar, Name: name, Type: t, Value: mir.ShuntingYard(stream), Loc: v.Location}, true

	default:
		b, ok := tc.scopes.lookup(name)
		if !ok {
			tc.errorf(diag.SemaAssignUndeclared, v.Name.Loc, "Attempted to assign to `%s`, but it was never declared.", name)
			return mir.Statement{}, false
		}
		if b.isParam {
			tc.errorf(diag.SemaAssignParam, v.Name.Loc, "Cannot assign to parameter `%s`.", name)
			return mir.Statement{}, false
		}
		stream, t := tc.exprTy(v.Value, &b.typ)
		if stream == nil {
			return mir.Statement{}, false
		}
		if !types.Equal(t, b.typ) {
			tc.errorf(diag.SemaTypeMismatch, v.Value.Loc(),
				"Cannot assign a value of type `%s` to `%s` of type `%s`.", t, name, b.typ)
			return mir.Statement{}, false
		}
		return mir.Statement{Kind: mir.StmtAssign, Name: name, Type: b.typ, Value: mir.ShuntingYard(stream), Loc: v.Location}, true
	}
}
