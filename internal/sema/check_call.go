package sema

import (
	"fmt"
	"strings"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/types"
)

// callee is a resolved call target.
type callee struct {
	name   string
	symbol string
	target mir.CallTarget
	params []types.Param
	ret    types.Type
}

func (tc *typeChecker) call(e *ast.Call) (mir.Stream, types.Type) {
	fn, ok := tc.resolveCall(e.Callee)
	if !ok {
		return nil, types.Undefined
	}

	if len(e.Args) != len(fn.params) {
		tc.errorf(diag.SemaArityMismatch, e.Loc(),
			"Function `%s` expects %d arguments but got %d.", e.Callee, len(fn.params), len(e.Args))
		return nil, fn.ret
	}

	call := &mir.Call{Name: fn.name, Symbol: fn.symbol, Target: fn.target, Ret: fn.ret}
	failed := false
	for i, arg := range e.Args {
		p := fn.params[i]
		stream, t := tc.exprTy(arg, &p.Type)
		if stream == nil {
			failed = true
			continue
		}
		if !types.Equal(t, p.Type) {
			tc.errorf(diag.SemaArgTypeMismatch, arg.Loc(),
				"Argument `%s` in call to `%s` is incorrect, expected `%s` but found `%s`.",
				p.Name, e.Callee, p.Type, t)
			failed = true
			continue
		}
		call.Args = append(call.Args, mir.Arg{Value: mir.ShuntingYard(stream), Type: p.Type})
	}
	if failed {
		return nil, fn.ret
	}
	return mir.Stream{mir.Lit(mir.CallLit(call))}, fn.ret
}

// resolveCall looks a call target up: local functions first, then externs,
// then imports. A dotted callee `m.f` only goes through the import of m.
func (tc *typeChecker) resolveCall(name ast.Name) (callee, bool) {
	if name.IsSimple() {
		fn := name.Last()
		if c, found, ok := tc.localCallee(tc.mod, fn, mir.CallLocal); found {
			return c, ok
		}
		if ext, found := tc.mod.Externs[fn]; found {
			return callee{name: fn, symbol: fn, target: mir.CallExtern, params: ext.Params, ret: ext.Ret}, true
		}
		if path, found := tc.mod.Imports[ast.SymbolKey(fn)]; found {
			return tc.importedCallee(name, path, fn)
		}
	} else {
		head := strings.Join(name.Segments[:len(name.Segments)-1], ".")
		if path, found := tc.mod.Imports[ast.ModuleKey(head)]; found {
			return tc.importedCallee(name, path, name.Last())
		}
	}
	tc.internal(fmt.Errorf("%w: `%s` in %s", ErrUnresolvedCall, name, tc.mod.Path))
	return callee{}, false
}

// localCallee resolves fn among the functions of mod. found reports whether
// mod knows the name at all; ok is false if it does but has no usable
// signature (already reported at the definition).
func (tc *typeChecker) localCallee(mod *ast.Module, fn string, target mir.CallTarget) (c callee, found, ok bool) {
	decl, hasDecl := mod.FnDecls[fn]
	defn, hasDefn := mod.FnDefns[fn]
	if !hasDecl {
		return callee{}, hasDefn, false
	}
	if decl.Type.Kind != types.KindFunc {
		return callee{}, true, false
	}
	pts := decl.Type.ParamTypes()
	c = callee{
		name:   fn,
		symbol: tc.symbol(mod.Path, fn),
		target: target,
		ret:    decl.Type.Result(),
		params: make([]types.Param, len(pts)),
	}
	for i, pt := range pts {
		pname := fmt.Sprintf("arg%d", i)
		if hasDefn && i < len(defn.Fn.Params) {
			pname = defn.Fn.Params[i].Last()
		}
		c.params[i] = types.Param{Name: pname, Type: pt}
	}
	return c, true, true
}

func (tc *typeChecker) importedCallee(name ast.Name, path, fn string) (callee, bool) {
	other, ok := tc.prog.Module(path)
	if !ok {
		// the import itself failed to resolve and was reported by the parser
		return callee{}, false
	}
	c, found, ok := tc.localCallee(other, fn, mir.CallImported)
	if !found {
		tc.errorf(diag.SemaImportedNotFound, name.Loc, "Module `%s` does not define `%s`.", path, fn)
		return callee{}, false
	}
	if ok {
		tc.out.Imported[c.symbol] = funcType(c)
	}
	return c, ok
}

func funcType(c callee) types.Type {
	ps := make([]types.Type, len(c.params))
	for i, p := range c.params {
		ps[i] = p.Type
	}
	return types.Func(ps, c.ret, false)
}
